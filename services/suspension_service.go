package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

// Пороги накопленных карточек, после которых игрок дисквалифицируется.
const (
	yellowCardSuspensionThreshold = 2
	redCardSuspensionThreshold    = 1
)

// SuspensionService применяет дисциплинарные правила при завершении
// матча: снимает истёкшие дисквалификации и накладывает новые по
// накопленным карточкам. Вызывается внутри транзакции завершения матча.
type SuspensionService interface {
	ProcessMatchCompletion(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error
}

type suspensionService struct {
	playerRepo      repositories.PlayerRepository
	playerStatsRepo repositories.PlayerStatsRepository
	performanceRepo repositories.PerformanceRepository
	matchRepo       repositories.MatchRepository
	logger          *slog.Logger
}

func NewSuspensionService(
	playerRepo repositories.PlayerRepository,
	playerStatsRepo repositories.PlayerStatsRepository,
	performanceRepo repositories.PerformanceRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) SuspensionService {
	return &suspensionService{
		playerRepo:      playerRepo,
		playerStatsRepo: playerStatsRepo,
		performanceRepo: performanceRepo,
		matchRepo:       matchRepo,
		logger:          logger,
	}
}

func (s *suspensionService) ProcessMatchCompletion(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	// Сначала снимаем дисквалификации, истёкшие с этим матчем, затем
	// накладываем новые по итогам выступлений. Порядок важен: игрок,
	// отбывший дисквалификацию, в этом матче не играл и новых карточек
	// получить не мог.
	if err := s.liftExpiredSuspensions(ctx, exec, match); err != nil {
		return err
	}
	return s.applyAccruedSuspensions(ctx, exec, match)
}

func (s *suspensionService) liftExpiredSuspensions(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	for _, teamID := range []int{match.HomeTeamID, match.AwayTeamID} {
		players, err := s.playerRepo.ListByTeam(ctx, exec, teamID)
		if err != nil {
			return fmt.Errorf("failed to list players for team %d: %w", teamID, err)
		}
		for _, p := range players {
			if !p.IsSuspended || p.SuspendedUntilMatchID == nil || *p.SuspendedUntilMatchID != match.ID {
				continue
			}
			if err := s.playerRepo.UpdateSuspension(ctx, exec, p.ID, false, nil); err != nil {
				return fmt.Errorf("failed to lift suspension for player %d: %w", p.ID, err)
			}
			s.logger.InfoContext(ctx, "suspension lifted",
				slog.Int("player_id", p.ID), slog.Int("match_id", match.ID))
		}
	}
	return nil
}

func (s *suspensionService) applyAccruedSuspensions(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	performances, err := s.performanceRepo.ListByMatch(ctx, exec, match.ID)
	if err != nil {
		return fmt.Errorf("failed to list performances for match %d: %w", match.ID, err)
	}

	for _, perf := range performances {
		stats, err := s.playerStatsRepo.GetOrCreate(ctx, exec, perf.PlayerID)
		if err != nil {
			return fmt.Errorf("failed to get stats for player %d: %w", perf.PlayerID, err)
		}

		stats.MatchesPlayed++
		stats.MinutesPlayed += perf.MinutesPlayed
		stats.Goals += perf.Goals
		stats.Assists += perf.Assists
		stats.YellowCards += perf.YellowCards
		stats.RedCards += perf.RedCards

		if err := s.playerStatsRepo.Update(ctx, exec, stats); err != nil {
			return fmt.Errorf("failed to update stats for player %d: %w", perf.PlayerID, err)
		}

		if stats.YellowCards < yellowCardSuspensionThreshold && stats.RedCards < redCardSuspensionThreshold {
			continue
		}

		player, err := s.playerRepo.GetByID(ctx, exec, perf.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				continue
			}
			return fmt.Errorf("failed to get player %d: %w", perf.PlayerID, err)
		}
		if player.IsSuspended {
			continue
		}

		// Дисквалификация до следующего запланированного матча команды.
		// Если его нет, дисквалификация бессрочная до ручного
		// вмешательства.
		var untilMatchID *int
		next, err := s.matchRepo.FindNextScheduledForTeam(ctx, exec, match.TournamentID, player.TeamID, match.MatchDate)
		if err != nil && !errors.Is(err, repositories.ErrMatchNotFound) {
			return fmt.Errorf("failed to find next match for team %d: %w", player.TeamID, err)
		}
		if next != nil {
			untilMatchID = &next.ID
		}

		if err := s.playerRepo.UpdateSuspension(ctx, exec, player.ID, true, untilMatchID); err != nil {
			return fmt.Errorf("failed to suspend player %d: %w", player.ID, err)
		}
		s.logger.InfoContext(ctx, "player suspended",
			slog.Int("player_id", player.ID),
			slog.Int("yellow_cards", stats.YellowCards),
			slog.Int("red_cards", stats.RedCards),
			slog.Any("until_match_id", untilMatchID))
	}
	return nil
}
