package models

import "time"

type UpdateType string

const (
	UpdateKickoff      UpdateType = "kickoff"
	UpdateGoal         UpdateType = "goal"
	UpdateCard         UpdateType = "card"
	UpdateFinalWhistle UpdateType = "final_whistle"
)

// MatchUpdate — неизменяемое событие живой ленты матча. Записи только
// добавляются, никогда не редактируются и не удаляются.
type MatchUpdate struct {
	ID          int        `json:"id" db:"id"`
	MatchID     int        `json:"match_id" db:"match_id"`
	Minute      int        `json:"minute" db:"minute"`
	UpdateType  UpdateType `json:"update_type" db:"update_type"`
	TeamID      *int       `json:"team_id,omitempty" db:"team_id"`
	PlayerID    *int       `json:"player_id,omitempty" db:"player_id"`
	Description string     `json:"description" db:"description"`
	Timestamp   time.Time  `json:"timestamp" db:"timestamp"`
}
