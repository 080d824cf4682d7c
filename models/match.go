package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	MatchDate    time.Time   `json:"match_date" db:"match_date"`
	Venue        *string     `json:"venue,omitempty" db:"venue"`
	RoundNumber  int         `json:"round_number" db:"round_number"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeScore    int         `json:"home_score" db:"home_score"`
	AwayScore    int         `json:"away_score" db:"away_score"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// MatchStats — «живые» счётчики матча. Инвариант:
// HomePossession + AwayPossession == 100.
type MatchStats struct {
	ID                int `json:"-" db:"id"`
	MatchID           int `json:"-" db:"match_id"`
	HomeShots         int `json:"home_shots" db:"home_shots"`
	HomeShotsOnTarget int `json:"home_shots_on_target" db:"home_shots_on_target"`
	AwayShots         int `json:"away_shots" db:"away_shots"`
	AwayShotsOnTarget int `json:"away_shots_on_target" db:"away_shots_on_target"`
	HomePossession    int `json:"home_possession" db:"home_possession"`
	AwayPossession    int `json:"away_possession" db:"away_possession"`
}
