package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Erkhan01/football-league/models"
)

var ErrMatchUpdateMatchInvalid = errors.New("match update match conflict or invalid")

// MatchUpdateRepository — журнал событий матча. Только вставка и чтение:
// записи ленты никогда не редактируются и не удаляются.
type MatchUpdateRepository interface {
	Create(ctx context.Context, exec SQLExecutor, update *models.MatchUpdate) error
	ListRecentByMatch(ctx context.Context, matchID, limit int) ([]*models.MatchUpdate, error)
	CountByMatch(ctx context.Context, matchID int) (int, error)
}

type postgresMatchUpdateRepository struct {
	db *sql.DB
}

func NewPostgresMatchUpdateRepository(db *sql.DB) MatchUpdateRepository {
	return &postgresMatchUpdateRepository{db: db}
}

func (r *postgresMatchUpdateRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchUpdateRepository) Create(ctx context.Context, exec SQLExecutor, update *models.MatchUpdate) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_updates (match_id, minute, update_type, team_id, player_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, timestamp`

	return executor.QueryRowContext(ctx, query,
		update.MatchID,
		update.Minute,
		update.UpdateType,
		update.TeamID,
		update.PlayerID,
		update.Description,
	).Scan(&update.ID, &update.Timestamp)
}

func (r *postgresMatchUpdateRepository) ListRecentByMatch(ctx context.Context, matchID, limit int) ([]*models.MatchUpdate, error) {
	// id DESC вторым ключом, чтобы события с одинаковым timestamp
	// сохраняли порядок вставки.
	query := `
		SELECT id, match_id, minute, update_type, team_id, player_id, description, timestamp
		FROM match_updates
		WHERE match_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, matchID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]*models.MatchUpdate, 0)
	for rows.Next() {
		var u models.MatchUpdate
		if scanErr := rows.Scan(
			&u.ID, &u.MatchID, &u.Minute, &u.UpdateType,
			&u.TeamID, &u.PlayerID, &u.Description, &u.Timestamp,
		); scanErr != nil {
			return nil, scanErr
		}
		updates = append(updates, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *postgresMatchUpdateRepository) CountByMatch(ctx context.Context, matchID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_updates WHERE match_id = $1`, matchID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
