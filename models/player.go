package models

import "time"

type Player struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Position     string    `json:"position" db:"position"`
	JerseyNumber int       `json:"jersey_number" db:"jersey_number"`
	Age          int       `json:"age" db:"age"`
	Nationality  string    `json:"nationality" db:"nationality"`
	TeamID       int       `json:"team_id" db:"team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// IsSuspended и SuspendedUntilMatchID всегда меняются вместе.
	// SuspendedUntilMatchID — слабая ссылка на матч, после завершения
	// которого дисквалификация снимается; nil при бессрочной.
	IsSuspended           bool `json:"is_suspended" db:"is_suspended"`
	SuspendedUntilMatchID *int `json:"suspended_until_match_id,omitempty" db:"suspended_until_match_id"`

	Team *Team `json:"team,omitempty" db:"-"`
}
