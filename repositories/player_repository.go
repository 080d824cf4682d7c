package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Erkhan01/football-league/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPlayerJerseyConflict = errors.New("jersey number already taken in this team")
	ErrPlayerTeamInvalid    = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Player, error)
	// UpdateSuspension меняет флаг и слабую ссылку на матч одним запросом,
	// чтобы они не могли разойтись.
	UpdateSuspension(ctx context.Context, exec SQLExecutor, playerID int, isSuspended bool, untilMatchID *int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, name, position, jersey_number, age, nationality, team_id, is_suspended, suspended_until_match_id, created_at`

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.Name, &p.Position, &p.JerseyNumber, &p.Age, &p.Nationality,
		&p.TeamID, &p.IsSuspended, &p.SuspendedUntilMatchID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, position, jersey_number, age, nationality, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Position,
		player.JerseyNumber,
		player.Age,
		player.Nationality,
		player.TeamID,
	).Scan(&player.ID, &player.CreatedAt)

	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	row := executor.QueryRowContext(ctx, query, id)
	return r.scanPlayer(row)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE team_id = $1
		ORDER BY jersey_number ASC`

	rows, err := executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateSuspension(ctx context.Context, exec SQLExecutor, playerID int, isSuspended bool, untilMatchID *int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE players SET is_suspended = $1, suspended_until_match_id = $2 WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, isSuspended, untilMatchID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "players_team_id_jersey_number_key" {
				return ErrPlayerJerseyConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "players_team_id_fkey" {
				return ErrPlayerTeamInvalid
			}
		}
	}
	return err
}
