package fixtures

import (
	"context"
	"fmt"
)

// MatchSpacingDays — интервал между матчами в порядке генерации.
const MatchSpacingDays = 3

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateFixtures creates matches for a single round-robin: each team
// plays every other team exactly once, N*(N-1)/2 matches total.
// Match i (in enumeration order) kicks off at start_date + 3*i days.
func (g *RoundRobinGenerator) GenerateFixtures(ctx context.Context, params GenerateParams) ([]*Fixture, error) {
	teams := params.Teams
	tournament := params.Tournament

	if len(teams) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough teams (found %d, min 2 required)", len(teams))
	}

	fixturesOut := make([]*Fixture, 0, len(teams)*(len(teams)-1)/2)
	matchIndex := 0

	// Generate pairings
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			fixturesOut = append(fixturesOut, &Fixture{
				HomeTeamID:  teams[i].ID,
				AwayTeamID:  teams[j].ID,
				RoundNumber: 1, // Single round-robin: one conceptual round for the whole league phase.
				KickoffTime: tournament.StartDate.AddDate(0, 0, matchIndex*MatchSpacingDays),
			})
			matchIndex++
		}
	}

	return fixturesOut, nil
}
