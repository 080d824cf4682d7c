package models

type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

// PlayerMatchPerformance — запись игрока в рамках одного матча, источник
// данных для движка дисквалификаций при завершении матча.
type PlayerMatchPerformance struct {
	ID            int  `json:"id" db:"id"`
	PlayerID      int  `json:"player_id" db:"player_id"`
	MatchID       int  `json:"match_id" db:"match_id"`
	IsSelected    bool `json:"is_selected" db:"is_selected"`
	IsPlaying     bool `json:"is_playing" db:"is_playing"`
	MinutesPlayed int  `json:"minutes_played" db:"minutes_played"`
	Goals         int  `json:"goals" db:"goals"`
	Assists       int  `json:"assists" db:"assists"`
	YellowCards   int  `json:"yellow_cards" db:"yellow_cards"`
	RedCards      int  `json:"red_cards" db:"red_cards"`
}
