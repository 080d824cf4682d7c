package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Erkhan01/football-league/models"
)

var ErrPerformanceNotFound = errors.New("player match performance not found")

type PerformanceRepository interface {
	Create(ctx context.Context, exec SQLExecutor, performance *models.PlayerMatchPerformance) error
	GetByPlayerAndMatch(ctx context.Context, exec SQLExecutor, playerID, matchID int) (*models.PlayerMatchPerformance, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.PlayerMatchPerformance, error)
	Update(ctx context.Context, exec SQLExecutor, performance *models.PlayerMatchPerformance) error
}

type postgresPerformanceRepository struct {
	db *sql.DB
}

func NewPostgresPerformanceRepository(db *sql.DB) PerformanceRepository {
	return &postgresPerformanceRepository{db: db}
}

func (r *postgresPerformanceRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const performanceColumns = `id, player_id, match_id, is_selected, is_playing, minutes_played, goals, assists, yellow_cards, red_cards`

func (r *postgresPerformanceRepository) scanPerformance(rowScanner interface{ Scan(...interface{}) error }) (*models.PlayerMatchPerformance, error) {
	var p models.PlayerMatchPerformance
	err := rowScanner.Scan(
		&p.ID, &p.PlayerID, &p.MatchID, &p.IsSelected, &p.IsPlaying,
		&p.MinutesPlayed, &p.Goals, &p.Assists, &p.YellowCards, &p.RedCards,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPerformanceRepository) Create(ctx context.Context, exec SQLExecutor, performance *models.PlayerMatchPerformance) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO player_match_performances
			(player_id, match_id, is_selected, is_playing, minutes_played, goals, assists, yellow_cards, red_cards)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		performance.PlayerID,
		performance.MatchID,
		performance.IsSelected,
		performance.IsPlaying,
		performance.MinutesPlayed,
		performance.Goals,
		performance.Assists,
		performance.YellowCards,
		performance.RedCards,
	).Scan(&performance.ID)
}

func (r *postgresPerformanceRepository) GetByPlayerAndMatch(ctx context.Context, exec SQLExecutor, playerID, matchID int) (*models.PlayerMatchPerformance, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + performanceColumns + ` FROM player_match_performances WHERE player_id = $1 AND match_id = $2`
	row := executor.QueryRowContext(ctx, query, playerID, matchID)
	return r.scanPerformance(row)
}

func (r *postgresPerformanceRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.PlayerMatchPerformance, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + performanceColumns + ` FROM player_match_performances WHERE match_id = $1 ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := make([]*models.PlayerMatchPerformance, 0)
	for rows.Next() {
		p, scanErr := r.scanPerformance(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		performances = append(performances, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return performances, nil
}

func (r *postgresPerformanceRepository) Update(ctx context.Context, exec SQLExecutor, performance *models.PlayerMatchPerformance) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE player_match_performances SET
			is_selected = $1, is_playing = $2, minutes_played = $3,
			goals = $4, assists = $5, yellow_cards = $6, red_cards = $7
		WHERE id = $8`

	result, err := executor.ExecContext(ctx, query,
		performance.IsSelected, performance.IsPlaying, performance.MinutesPlayed,
		performance.Goals, performance.Assists, performance.YellowCards, performance.RedCards,
		performance.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPerformanceNotFound)
}
