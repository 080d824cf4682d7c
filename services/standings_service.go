package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

// StandingRow — строка турнирной таблицы.
type StandingRow struct {
	Position int              `json:"position"`
	Team     *models.Team     `json:"team"`
	Stats    models.TeamStats `json:"stats"`
}

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID int) ([]*StandingRow, error)
	GetTeamStats(ctx context.Context, teamID int) (*models.TeamStats, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
	}
}

// computeTeamStats сворачивает завершённые матчи команды в статистику.
// Победа 3 очка, ничья 1, поражение 0.
func computeTeamStats(teamID int, matches []*models.Match) models.TeamStats {
	var stats models.TeamStats
	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}

		var goalsFor, goalsAgainst int
		switch teamID {
		case m.HomeTeamID:
			goalsFor, goalsAgainst = m.HomeScore, m.AwayScore
		case m.AwayTeamID:
			goalsFor, goalsAgainst = m.AwayScore, m.HomeScore
		default:
			continue
		}

		stats.Played++
		stats.GoalsFor += goalsFor
		stats.GoalsAgainst += goalsAgainst
		switch {
		case goalsFor > goalsAgainst:
			stats.Won++
			stats.Points += 3
		case goalsFor == goalsAgainst:
			stats.Drawn++
			stats.Points++
		default:
			stats.Lost++
		}
	}
	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	return stats
}

func (s *standingsService) GetTeamStats(ctx context.Context, teamID int) (*models.TeamStats, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	completed := models.MatchStatusCompleted
	matches, err := s.matchRepo.ListByTeam(ctx, teamID, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for team %d: %w", teamID, err)
	}

	stats := computeTeamStats(teamID, matches)
	return &stats, nil
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID int) ([]*StandingRow, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}

	rows := make([]*StandingRow, len(teams))
	g, gCtx := errgroup.WithContext(ctx)
	completed := models.MatchStatusCompleted
	for i, team := range teams {
		g.Go(func() error {
			matches, err := s.matchRepo.ListByTeam(gCtx, team.ID, &completed)
			if err != nil {
				return fmt.Errorf("failed to list matches for team %d: %w", team.ID, err)
			}
			rows[i] = &StandingRow{
				Team:  team,
				Stats: computeTeamStats(team.ID, matches),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Очки, затем разница мячей, затем забитые; при полном равенстве —
	// по имени команды для стабильного порядка.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Stats, rows[j].Stats
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return rows[i].Team.Name < rows[j].Team.Name
	})

	for i, row := range rows {
		row.Position = i + 1
	}
	return rows, nil
}
