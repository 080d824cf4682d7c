package fixtures

import (
	"context"
	"time"

	"github.com/Erkhan01/football-league/models"
)

// Fixture — матч-заготовка, возвращаемая генератором расписания.
// Сервисный слой сам превращает её в запись БД.
type Fixture struct {
	HomeTeamID  int
	AwayTeamID  int
	RoundNumber int
	KickoffTime time.Time
}

type GenerateParams struct {
	Tournament *models.Tournament
	Teams      []*models.Team
}

type Generator interface {
	GetName() string
	GenerateFixtures(ctx context.Context, params GenerateParams) ([]*Fixture, error)
}
