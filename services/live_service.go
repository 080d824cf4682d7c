package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Erkhan01/football-league/live"
	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

// Количество последних событий в снимке живых данных.
const recentUpdatesLimit = 10

// Broadcaster рассылает события матча подписчикам комнаты.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// LiveMatchData — снимок живого состояния матча для опроса клиентами.
type LiveMatchData struct {
	MatchID      int                   `json:"match_id"`
	Status       models.MatchStatus    `json:"status"`
	HomeScore    int                   `json:"home_score"`
	AwayScore    int                   `json:"away_score"`
	Updates      []*models.MatchUpdate `json:"updates"`
	TotalUpdates int                   `json:"total_updates"`
	Stats        *models.MatchStats    `json:"stats,omitempty"`
}

// GoalResult — полное состояние матча после гола: счёт, статистика,
// само событие. Клиент обновляет табло одним ответом, без доп. запросов.
type GoalResult struct {
	Match *models.Match       `json:"match"`
	Stats *models.MatchStats  `json:"stats"`
	Event *models.MatchUpdate `json:"event"`
}

// EndMatchResult отличает фактическое завершение от повторного запроса.
type EndMatchResult struct {
	Match            *models.Match
	AlreadyCompleted bool
}

type LiveMatchService interface {
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	GetLiveData(ctx context.Context, matchID int) (*LiveMatchData, error)
	StartMatch(ctx context.Context, matchID int) (*models.Match, error)
	RecordGoal(ctx context.Context, matchID int, side string) (*GoalResult, error)
	RecordCard(ctx context.Context, matchID, playerID int, cardType models.CardType) (*models.MatchUpdate, error)
	EndMatch(ctx context.Context, matchID int) (*EndMatchResult, error)
}

type liveMatchService struct {
	matchRepo       repositories.MatchRepository
	matchStatsRepo  repositories.MatchStatsRepository
	updateRepo      repositories.MatchUpdateRepository
	teamRepo        repositories.TeamRepository
	playerRepo      repositories.PlayerRepository
	performanceRepo repositories.PerformanceRepository
	suspensions     SuspensionService
	txRunner        repositories.TxRunner
	broadcaster     Broadcaster
	rng             Rand
	logger          *slog.Logger
}

func NewLiveMatchService(
	matchRepo repositories.MatchRepository,
	matchStatsRepo repositories.MatchStatsRepository,
	updateRepo repositories.MatchUpdateRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	performanceRepo repositories.PerformanceRepository,
	suspensions SuspensionService,
	txRunner repositories.TxRunner,
	broadcaster Broadcaster,
	rng Rand,
	logger *slog.Logger,
) LiveMatchService {
	return &liveMatchService{
		matchRepo:       matchRepo,
		matchStatsRepo:  matchStatsRepo,
		updateRepo:      updateRepo,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		performanceRepo: performanceRepo,
		suspensions:     suspensions,
		txRunner:        txRunner,
		broadcaster:     broadcaster,
		rng:             rng,
		logger:          logger,
	}
}

func (s *liveMatchService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *liveMatchService) broadcast(matchID int, eventType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	roomID := live.MatchRoomID(matchID)
	s.broadcaster.BroadcastToRoom(roomID, live.WebSocketMessage{
		Type:    eventType,
		Payload: payload,
		RoomID:  roomID,
	})
}

func (s *liveMatchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return s.getMatch(ctx, matchID)
}

func (s *liveMatchService) GetLiveData(ctx context.Context, matchID int) (*LiveMatchData, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	var (
		updates []*models.MatchUpdate
		total   int
		stats   *models.MatchStats
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		updates, err = s.updateRepo.ListRecentByMatch(gCtx, matchID, recentUpdatesLimit)
		if err != nil {
			return fmt.Errorf("failed to list updates for match %d: %w", matchID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.updateRepo.CountByMatch(gCtx, matchID)
		if err != nil {
			return fmt.Errorf("failed to count updates for match %d: %w", matchID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = s.matchStatsRepo.GetByMatch(gCtx, nil, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchStatsNotFound) {
				stats = nil
				return nil
			}
			return fmt.Errorf("failed to get stats for match %d: %w", matchID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LiveMatchData{
		MatchID:      match.ID,
		Status:       match.Status,
		HomeScore:    match.HomeScore,
		AwayScore:    match.AwayScore,
		Updates:      updates,
		TotalUpdates: total,
		Stats:        stats,
	}, nil
}

func (s *liveMatchService) StartMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, ErrMatchNotScheduled
	}

	var kickoff *models.MatchUpdate
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.UpdateStatus(ctx, exec, matchID, models.MatchStatusInProgress); err != nil {
			return fmt.Errorf("failed to start match %d: %w", matchID, err)
		}
		kickoff = &models.MatchUpdate{
			MatchID:     matchID,
			Minute:      0,
			UpdateType:  models.UpdateKickoff,
			Description: "🟢 Le match commence !",
		}
		if err := s.updateRepo.Create(ctx, exec, kickoff); err != nil {
			return fmt.Errorf("failed to record kickoff for match %d: %w", matchID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	match.Status = models.MatchStatusInProgress
	s.broadcast(matchID, "match_started", kickoff)
	s.logger.InfoContext(ctx, "match started", slog.Int("match_id", matchID))
	return match, nil
}

func (s *liveMatchService) RecordGoal(ctx context.Context, matchID int, side string) (*GoalResult, error) {
	if side != "home" && side != "away" {
		return nil, ErrInvalidTeamSide
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	scoringTeamID := match.HomeTeamID
	if side == "away" {
		scoringTeamID = match.AwayTeamID
	}
	scoringTeam, err := s.teamRepo.GetByID(ctx, scoringTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", scoringTeamID, err)
	}

	var (
		goalEvent *models.MatchUpdate
		stats     *models.MatchStats
	)
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if side == "home" {
			match.HomeScore++
		} else {
			match.AwayScore++
		}
		if err := s.matchRepo.UpdateScore(ctx, exec, matchID, match.HomeScore, match.AwayScore); err != nil {
			return fmt.Errorf("failed to update score for match %d: %w", matchID, err)
		}

		stats, err = s.matchStatsRepo.GetOrCreate(ctx, exec, matchID)
		if err != nil {
			return fmt.Errorf("failed to get stats for match %d: %w", matchID, err)
		}
		shots := randBetween(s.rng, 1, 3)
		if side == "home" {
			stats.HomeShots += shots
			stats.HomeShotsOnTarget++
		} else {
			stats.AwayShots += shots
			stats.AwayShotsOnTarget++
		}
		// Владение дрейфует на ±5 за гол; сумма всегда остаётся 100.
		shift := randBetween(s.rng, -5, 5)
		possession := stats.HomePossession
		if side == "away" {
			possession = stats.AwayPossession
		}
		possession += shift
		if possession < 0 {
			possession = 0
		}
		if possession > 100 {
			possession = 100
		}
		if side == "home" {
			stats.HomePossession = possession
			stats.AwayPossession = 100 - possession
		} else {
			stats.AwayPossession = possession
			stats.HomePossession = 100 - possession
		}
		if err := s.matchStatsRepo.Update(ctx, exec, stats); err != nil {
			return fmt.Errorf("failed to update stats for match %d: %w", matchID, err)
		}

		goalEvent = &models.MatchUpdate{
			MatchID:     matchID,
			Minute:      randBetween(s.rng, 1, 90),
			UpdateType:  models.UpdateGoal,
			TeamID:      &scoringTeamID,
			Description: fmt.Sprintf("⚽ BUT ! %s marque !", scoringTeam.Name),
		}
		if err := s.updateRepo.Create(ctx, exec, goalEvent); err != nil {
			return fmt.Errorf("failed to record goal event for match %d: %w", matchID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(matchID, "goal", map[string]interface{}{
		"event":      goalEvent,
		"home_score": match.HomeScore,
		"away_score": match.AwayScore,
	})
	return &GoalResult{Match: match, Stats: stats, Event: goalEvent}, nil
}

func (s *liveMatchService) RecordCard(ctx context.Context, matchID, playerID int, cardType models.CardType) (*models.MatchUpdate, error) {
	if cardType != models.CardYellow && cardType != models.CardRed {
		return nil, ErrInvalidCardType
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}
	// Вся проверка до транзакции: для чужого игрока ничего не пишем.
	if player.TeamID != match.HomeTeamID && player.TeamID != match.AwayTeamID {
		return nil, ErrPlayerNotInMatch
	}

	team, err := s.teamRepo.GetByID(ctx, player.TeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", player.TeamID, err)
	}

	var cardEvent *models.MatchUpdate
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		perf, err := s.performanceRepo.GetByPlayerAndMatch(ctx, exec, playerID, matchID)
		if err != nil {
			if !errors.Is(err, repositories.ErrPerformanceNotFound) {
				return fmt.Errorf("failed to get performance for player %d: %w", playerID, err)
			}
			perf = &models.PlayerMatchPerformance{
				PlayerID:   playerID,
				MatchID:    matchID,
				IsSelected: false,
				IsPlaying:  true,
			}
			if err := s.performanceRepo.Create(ctx, exec, perf); err != nil {
				return fmt.Errorf("failed to create performance for player %d: %w", playerID, err)
			}
		}

		emoji := "🟨"
		if cardType == models.CardRed {
			perf.RedCards++
			emoji = "🟥"
		} else {
			perf.YellowCards++
		}
		if err := s.performanceRepo.Update(ctx, exec, perf); err != nil {
			return fmt.Errorf("failed to update performance for player %d: %w", playerID, err)
		}

		cardEvent = &models.MatchUpdate{
			MatchID:     matchID,
			Minute:      randBetween(s.rng, 1, 90),
			UpdateType:  models.UpdateCard,
			TeamID:      &player.TeamID,
			PlayerID:    &playerID,
			Description: fmt.Sprintf("%s Carton %s pour %s (%s)", emoji, cardColorFr(cardType), player.Name, team.Name),
		}
		if err := s.updateRepo.Create(ctx, exec, cardEvent); err != nil {
			return fmt.Errorf("failed to record card event for match %d: %w", matchID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(matchID, "card", cardEvent)
	return cardEvent, nil
}

func cardColorFr(cardType models.CardType) string {
	if cardType == models.CardRed {
		return "rouge"
	}
	return "jaune"
}

func (s *liveMatchService) EndMatch(ctx context.Context, matchID int) (*EndMatchResult, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	// Повторное завершение — не ошибка, просто ничего не делаем.
	if match.Status == models.MatchStatusCompleted {
		return &EndMatchResult{Match: match, AlreadyCompleted: true}, nil
	}

	var finalWhistle *models.MatchUpdate
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		finalWhistle = &models.MatchUpdate{
			MatchID:     matchID,
			Minute:      90,
			UpdateType:  models.UpdateFinalWhistle,
			Description: "🔴 Fin du match !",
		}
		if err := s.updateRepo.Create(ctx, exec, finalWhistle); err != nil {
			return fmt.Errorf("failed to record final whistle for match %d: %w", matchID, err)
		}
		if err := s.matchRepo.UpdateStatus(ctx, exec, matchID, models.MatchStatusCompleted); err != nil {
			return fmt.Errorf("failed to complete match %d: %w", matchID, err)
		}
		match.Status = models.MatchStatusCompleted
		return s.suspensions.ProcessMatchCompletion(ctx, exec, match)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(matchID, "match_ended", map[string]interface{}{
		"event":      finalWhistle,
		"home_score": match.HomeScore,
		"away_score": match.AwayScore,
	})
	s.logger.InfoContext(ctx, "match completed",
		slog.Int("match_id", matchID),
		slog.Int("home_score", match.HomeScore),
		slog.Int("away_score", match.AwayScore))
	return &EndMatchResult{Match: match}, nil
}
