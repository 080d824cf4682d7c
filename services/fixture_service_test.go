package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erkhan01/football-league/fixtures"
	"github.com/Erkhan01/football-league/models"
)

func newFixtureServiceForTest(t *testing.T) (FixtureService, *fakeTournamentRepo, *fakeTeamRepo, *fakeMatchRepo) {
	t.Helper()
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	matchRepo := newFakeMatchRepo()
	svc := NewFixtureService(
		tournamentRepo,
		teamRepo,
		matchRepo,
		fixtures.NewRoundRobinGenerator(),
		passTxRunner{},
		testLogger(),
	)
	return svc, tournamentRepo, teamRepo, matchRepo
}

func seedTournamentWithTeams(t *testing.T, tournamentRepo *fakeTournamentRepo, teamRepo *fakeTeamRepo, teamCount int) *models.Tournament {
	t.Helper()
	tournament := &models.Tournament{
		Name:      "Premier League " + t.Name(),
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		MaxTeams:  16,
		Status:    models.StatusRegistration,
	}
	require.NoError(t, tournamentRepo.Create(context.Background(), tournament))
	for i := 0; i < teamCount; i++ {
		team := &models.Team{
			Name:         string(rune('A' + i)),
			City:         "City " + string(rune('A'+i)),
			TournamentID: tournament.ID,
		}
		require.NoError(t, teamRepo.Create(context.Background(), team))
	}
	return tournament
}

func TestGenerateFixturesCreatesFullSchedule(t *testing.T) {
	svc, tournamentRepo, teamRepo, matchRepo := newFixtureServiceForTest(t)
	tournament := seedTournamentWithTeams(t, tournamentRepo, teamRepo, 4)

	matches, err := svc.GenerateFixtures(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 6)

	for _, m := range matches {
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.Equal(t, tournament.ID, m.TournamentID)
		require.NotNil(t, m.Venue)
	}

	stored, err := matchRepo.ListByTournament(context.Background(), tournament.ID, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 6)
}

func TestGenerateFixturesActivatesTournament(t *testing.T) {
	svc, tournamentRepo, teamRepo, _ := newFixtureServiceForTest(t)
	tournament := seedTournamentWithTeams(t, tournamentRepo, teamRepo, 3)

	_, err := svc.GenerateFixtures(context.Background(), tournament.ID)
	require.NoError(t, err)

	updated, err := tournamentRepo.GetByID(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestGenerateFixturesReplacesExistingSchedule(t *testing.T) {
	svc, tournamentRepo, teamRepo, matchRepo := newFixtureServiceForTest(t)
	tournament := seedTournamentWithTeams(t, tournamentRepo, teamRepo, 3)

	first, err := svc.GenerateFixtures(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.GenerateFixtures(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, second, 3)

	stored, err := matchRepo.ListByTournament(context.Background(), tournament.ID, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 3, "old fixtures must be removed on regeneration")
	for _, m := range stored {
		assert.Greater(t, m.ID, first[len(first)-1].ID, "stored fixtures should come from the second run")
	}
}

func TestGenerateFixturesNotEnoughTeamsLeavesScheduleIntact(t *testing.T) {
	svc, tournamentRepo, teamRepo, matchRepo := newFixtureServiceForTest(t)
	tournament := seedTournamentWithTeams(t, tournamentRepo, teamRepo, 2)

	_, err := svc.GenerateFixtures(context.Background(), tournament.ID)
	require.NoError(t, err)

	// Сжимаем список команд до одной и пробуем снова: ошибка, старое
	// расписание не тронуто.
	teams, err := teamRepo.ListByTournament(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.NoError(t, teamRepo.Delete(context.Background(), teams[0].ID))

	_, err = svc.GenerateFixtures(context.Background(), tournament.ID)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	stored, err := matchRepo.ListByTournament(context.Background(), tournament.ID, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 1, "existing fixtures must survive a failed regeneration")
}

func TestGenerateFixturesUnknownTournament(t *testing.T) {
	svc, _, _, _ := newFixtureServiceForTest(t)

	_, err := svc.GenerateFixtures(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
