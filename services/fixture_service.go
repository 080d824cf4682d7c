package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Erkhan01/football-league/fixtures"
	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

type FixtureService interface {
	// GenerateFixtures строит круговое расписание турнира. Существующие
	// матчи удаляются, турнир переводится в статус active. Всё в одной
	// транзакции.
	GenerateFixtures(ctx context.Context, tournamentID int) ([]*models.Match, error)
}

type fixtureService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      fixtures.Generator
	txRunner       repositories.TxRunner
	logger         *slog.Logger
}

func NewFixtureService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	generator fixtures.Generator,
	txRunner repositories.TxRunner,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		txRunner:       txRunner,
		logger:         logger,
	}
}

func (s *fixtureService) GenerateFixtures(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	// Проверяем до любых удалений: при нехватке команд старое
	// расписание остаётся нетронутым.
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	generated, err := s.generator.GenerateFixtures(ctx, fixtures.GenerateParams{
		Tournament: tournament,
		Teams:      teams,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate fixtures for tournament %d: %w", tournamentID, err)
	}

	teamsByID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	matches := make([]*models.Match, 0, len(generated))
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteByTournament(ctx, exec, tournamentID); err != nil {
			return fmt.Errorf("failed to clear existing fixtures: %w", err)
		}

		for _, f := range generated {
			match := &models.Match{
				TournamentID: tournamentID,
				HomeTeamID:   f.HomeTeamID,
				AwayTeamID:   f.AwayTeamID,
				MatchDate:    f.KickoffTime,
				RoundNumber:  f.RoundNumber,
				Status:       models.MatchStatusScheduled,
			}
			if home, ok := teamsByID[f.HomeTeamID]; ok && home.City != "" {
				venue := fmt.Sprintf("%s Stadium", home.City)
				match.Venue = &venue
			}
			if err := s.matchRepo.Create(ctx, exec, match); err != nil {
				return fmt.Errorf("failed to create fixture %d vs %d: %w", f.HomeTeamID, f.AwayTeamID, err)
			}
			matches = append(matches, match)
		}

		if tournament.Status != models.StatusActive {
			if err := s.tournamentRepo.UpdateStatus(ctx, exec, tournamentID, models.StatusActive); err != nil {
				return fmt.Errorf("failed to activate tournament: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)))
	return matches, nil
}
