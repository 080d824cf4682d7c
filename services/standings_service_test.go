package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erkhan01/football-league/models"
)

func TestComputeTeamStatsPointsArithmetic(t *testing.T) {
	matches := []*models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, HomeScore: 3, AwayScore: 0, Status: models.MatchStatusCompleted},
		{HomeTeamID: 3, AwayTeamID: 1, HomeScore: 2, AwayScore: 2, Status: models.MatchStatusCompleted},
		{HomeTeamID: 1, AwayTeamID: 4, HomeScore: 0, AwayScore: 1, Status: models.MatchStatusCompleted},
	}

	stats := computeTeamStats(1, matches)
	assert.Equal(t, 3, stats.Played)
	assert.Equal(t, 1, stats.Won)
	assert.Equal(t, 1, stats.Drawn)
	assert.Equal(t, 1, stats.Lost)
	assert.Equal(t, 5, stats.GoalsFor)
	assert.Equal(t, 3, stats.GoalsAgainst)
	assert.Equal(t, 2, stats.GoalDifference)
	assert.Equal(t, 4, stats.Points, "3 for the win plus 1 for the draw")
}

func TestComputeTeamStatsIgnoresUnfinishedMatches(t *testing.T) {
	matches := []*models.Match{
		{HomeTeamID: 1, AwayTeamID: 2, HomeScore: 1, AwayScore: 0, Status: models.MatchStatusScheduled},
		{HomeTeamID: 1, AwayTeamID: 3, HomeScore: 2, AwayScore: 0, Status: models.MatchStatusInProgress},
	}

	stats := computeTeamStats(1, matches)
	assert.Zero(t, stats.Played)
	assert.Zero(t, stats.Points)
}

func newStandingsServiceForTest(t *testing.T) (StandingsService, *fakeTournamentRepo, *fakeTeamRepo, *fakeMatchRepo) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	return NewStandingsService(tournamentRepo, teamRepo, matchRepo), tournamentRepo, teamRepo, matchRepo
}

func seedCompletedMatch(t *testing.T, matchRepo *fakeMatchRepo, tournamentID, home, away, homeScore, awayScore int) {
	t.Helper()
	err := matchRepo.Create(context.Background(), nil, &models.Match{
		TournamentID: tournamentID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		MatchDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.MatchStatusCompleted,
	})
	require.NoError(t, err)
}

func TestGetStandingsOrdering(t *testing.T) {
	svc, tournamentRepo, teamRepo, matchRepo := newStandingsServiceForTest(t)

	tournament := &models.Tournament{
		Name:      "League",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		MaxTeams:  8,
		Status:    models.StatusActive,
	}
	require.NoError(t, tournamentRepo.Create(context.Background(), tournament))

	names := []string{"Arsenal", "Bordeaux", "Chelsea"}
	ids := make([]int, len(names))
	for i, name := range names {
		team := &models.Team{Name: name, TournamentID: tournament.ID}
		require.NoError(t, teamRepo.Create(context.Background(), team))
		ids[i] = team.ID
	}

	// Arsenal 2 победы, Bordeaux 1 победа, Chelsea 0.
	seedCompletedMatch(t, matchRepo, tournament.ID, ids[0], ids[1], 2, 0)
	seedCompletedMatch(t, matchRepo, tournament.ID, ids[0], ids[2], 1, 0)
	seedCompletedMatch(t, matchRepo, tournament.ID, ids[1], ids[2], 3, 1)

	rows, err := svc.GetStandings(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Arsenal", rows[0].Team.Name)
	assert.Equal(t, "Bordeaux", rows[1].Team.Name)
	assert.Equal(t, "Chelsea", rows[2].Team.Name)

	for i, row := range rows {
		assert.Equal(t, i+1, row.Position)
	}
	// Очки не возрастают сверху вниз.
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Stats.Points, rows[i].Stats.Points)
	}
}

func TestGetStandingsNameTieBreak(t *testing.T) {
	svc, tournamentRepo, teamRepo, _ := newStandingsServiceForTest(t)

	tournament := &models.Tournament{
		Name:      "Tie League",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		MaxTeams:  4,
		Status:    models.StatusRegistration,
	}
	require.NoError(t, tournamentRepo.Create(context.Background(), tournament))

	for _, name := range []string{"Zenit", "Ajax", "Milan"} {
		require.NoError(t, teamRepo.Create(context.Background(), &models.Team{Name: name, TournamentID: tournament.ID}))
	}

	// Ни одного сыгранного матча: порядок определяется именем.
	rows, err := svc.GetStandings(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ajax", rows[0].Team.Name)
	assert.Equal(t, "Milan", rows[1].Team.Name)
	assert.Equal(t, "Zenit", rows[2].Team.Name)
}

func TestGetTeamStatsUnknownTeam(t *testing.T) {
	svc, _, _, _ := newStandingsServiceForTest(t)

	_, err := svc.GetTeamStats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
