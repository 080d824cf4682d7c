package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Erkhan01/football-league/models"
)

var ErrMatchStatsNotFound = errors.New("match stats not found")

type MatchStatsRepository interface {
	GetByMatch(ctx context.Context, exec SQLExecutor, matchID int) (*models.MatchStats, error)
	// GetOrCreate возвращает существующую запись либо создаёт новую с
	// нулевыми счётчиками и владением мячом 50/50.
	GetOrCreate(ctx context.Context, exec SQLExecutor, matchID int) (*models.MatchStats, error)
	Update(ctx context.Context, exec SQLExecutor, stats *models.MatchStats) error
}

type postgresMatchStatsRepository struct {
	db *sql.DB
}

func NewPostgresMatchStatsRepository(db *sql.DB) MatchStatsRepository {
	return &postgresMatchStatsRepository{db: db}
}

func (r *postgresMatchStatsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchStatsRepository) GetByMatch(ctx context.Context, exec SQLExecutor, matchID int) (*models.MatchStats, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, home_shots, home_shots_on_target, away_shots, away_shots_on_target, home_possession, away_possession
		FROM match_stats
		WHERE match_id = $1`

	var s models.MatchStats
	err := executor.QueryRowContext(ctx, query, matchID).Scan(
		&s.ID, &s.MatchID, &s.HomeShots, &s.HomeShotsOnTarget,
		&s.AwayShots, &s.AwayShotsOnTarget, &s.HomePossession, &s.AwayPossession,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchStatsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresMatchStatsRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, matchID int) (*models.MatchStats, error) {
	executor := r.getExecutor(exec)
	stats, err := r.GetByMatch(ctx, executor, matchID)
	if err != nil {
		if errors.Is(err, ErrMatchStatsNotFound) {
			newStats := &models.MatchStats{
				MatchID:        matchID,
				HomePossession: 50,
				AwayPossession: 50,
			}
			query := `
				INSERT INTO match_stats (match_id, home_shots, home_shots_on_target, away_shots, away_shots_on_target, home_possession, away_possession)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id`
			if createErr := executor.QueryRowContext(ctx, query,
				newStats.MatchID, newStats.HomeShots, newStats.HomeShotsOnTarget,
				newStats.AwayShots, newStats.AwayShotsOnTarget,
				newStats.HomePossession, newStats.AwayPossession,
			).Scan(&newStats.ID); createErr != nil {
				return nil, fmt.Errorf("failed to create match stats for match %d: %w", matchID, createErr)
			}
			return newStats, nil
		}
		return nil, fmt.Errorf("failed to get match stats for match %d: %w", matchID, err)
	}
	return stats, nil
}

func (r *postgresMatchStatsRepository) Update(ctx context.Context, exec SQLExecutor, stats *models.MatchStats) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE match_stats SET
			home_shots = $1, home_shots_on_target = $2,
			away_shots = $3, away_shots_on_target = $4,
			home_possession = $5, away_possession = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		stats.HomeShots, stats.HomeShotsOnTarget,
		stats.AwayShots, stats.AwayShotsOnTarget,
		stats.HomePossession, stats.AwayPossession,
		stats.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchStatsNotFound)
}
