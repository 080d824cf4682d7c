package models

// PlayerStats — накопительная карьерная статистика игрока.
// Обновляется только при завершении матча.
type PlayerStats struct {
	ID            int `json:"-" db:"id"`
	PlayerID      int `json:"player_id" db:"player_id"`
	MatchesPlayed int `json:"matches_played" db:"matches_played"`
	MinutesPlayed int `json:"minutes_played" db:"minutes_played"`
	Goals         int `json:"goals" db:"goals"`
	Assists       int `json:"assists" db:"assists"`
	YellowCards   int `json:"yellow_cards" db:"yellow_cards"`
	RedCards      int `json:"red_cards" db:"red_cards"`
}
