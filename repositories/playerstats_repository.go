package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Erkhan01/football-league/models"
)

var ErrPlayerStatsNotFound = errors.New("player stats not found")

type PlayerStatsRepository interface {
	GetByPlayer(ctx context.Context, exec SQLExecutor, playerID int) (*models.PlayerStats, error)
	// GetOrCreate возвращает накопительную статистику игрока, создавая
	// запись с нулями, если её ещё нет.
	GetOrCreate(ctx context.Context, exec SQLExecutor, playerID int) (*models.PlayerStats, error)
	Update(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error
}

type postgresPlayerStatsRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatsRepository(db *sql.DB) PlayerStatsRepository {
	return &postgresPlayerStatsRepository{db: db}
}

func (r *postgresPlayerStatsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerStatsRepository) GetByPlayer(ctx context.Context, exec SQLExecutor, playerID int) (*models.PlayerStats, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, player_id, matches_played, minutes_played, goals, assists, yellow_cards, red_cards
		FROM player_stats
		WHERE player_id = $1`

	var s models.PlayerStats
	err := executor.QueryRowContext(ctx, query, playerID).Scan(
		&s.ID, &s.PlayerID, &s.MatchesPlayed, &s.MinutesPlayed,
		&s.Goals, &s.Assists, &s.YellowCards, &s.RedCards,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerStatsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresPlayerStatsRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, playerID int) (*models.PlayerStats, error) {
	executor := r.getExecutor(exec)
	stats, err := r.GetByPlayer(ctx, executor, playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerStatsNotFound) {
			newStats := &models.PlayerStats{PlayerID: playerID}
			query := `
				INSERT INTO player_stats (player_id, matches_played, minutes_played, goals, assists, yellow_cards, red_cards)
				VALUES ($1, 0, 0, 0, 0, 0, 0)
				RETURNING id`
			if createErr := executor.QueryRowContext(ctx, query, playerID).Scan(&newStats.ID); createErr != nil {
				return nil, fmt.Errorf("failed to create stats for player %d: %w", playerID, createErr)
			}
			return newStats, nil
		}
		return nil, fmt.Errorf("failed to get stats for player %d: %w", playerID, err)
	}
	return stats, nil
}

func (r *postgresPlayerStatsRepository) Update(ctx context.Context, exec SQLExecutor, stats *models.PlayerStats) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE player_stats SET
			matches_played = $1, minutes_played = $2, goals = $3,
			assists = $4, yellow_cards = $5, red_cards = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		stats.MatchesPlayed, stats.MinutesPlayed, stats.Goals,
		stats.Assists, stats.YellowCards, stats.RedCards,
		stats.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerStatsNotFound)
}
