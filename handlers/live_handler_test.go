package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/services"
)

// stubLiveService отдаёт заранее подготовленные ответы, чтобы проверять
// только HTTP-слой.
type stubLiveService struct {
	goalResult *services.GoalResult
	goalErr    error
}

func (s *stubLiveService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return nil, services.ErrMatchNotFound
}

func (s *stubLiveService) GetLiveData(ctx context.Context, matchID int) (*services.LiveMatchData, error) {
	return nil, services.ErrMatchNotFound
}

func (s *stubLiveService) StartMatch(ctx context.Context, matchID int) (*models.Match, error) {
	return nil, services.ErrMatchNotFound
}

func (s *stubLiveService) RecordGoal(ctx context.Context, matchID int, side string) (*services.GoalResult, error) {
	if s.goalErr != nil {
		return nil, s.goalErr
	}
	return s.goalResult, nil
}

func (s *stubLiveService) RecordCard(ctx context.Context, matchID, playerID int, cardType models.CardType) (*models.MatchUpdate, error) {
	return nil, services.ErrMatchNotFound
}

func (s *stubLiveService) EndMatch(ctx context.Context, matchID int) (*services.EndMatchResult, error) {
	return nil, services.ErrMatchNotFound
}

func newLiveTestRouter(svc services.LiveMatchService) *chi.Mux {
	h := NewLiveMatchHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/matches/{matchID}/score", h.RecordGoalHandler)
	return r
}

func TestRecordGoalHandlerReturnsMatchState(t *testing.T) {
	teamID := 7
	stub := &stubLiveService{
		goalResult: &services.GoalResult{
			Match: &models.Match{
				ID:        1,
				Status:    models.MatchStatusInProgress,
				HomeScore: 2,
				AwayScore: 1,
			},
			Stats: &models.MatchStats{
				HomeShots:         5,
				HomeShotsOnTarget: 3,
				HomePossession:    53,
				AwayPossession:    47,
			},
			Event: &models.MatchUpdate{
				ID:          12,
				MatchID:     1,
				Minute:      42,
				UpdateType:  models.UpdateGoal,
				TeamID:      &teamID,
				Description: "⚽ BUT ! Lyon marque !",
			},
		},
	}
	router := newLiveTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/matches/1/score",
		bytes.NewBufferString(`{"team": "home"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    models.MatchStatus    `json:"status"`
		HomeScore int                   `json:"home_score"`
		AwayScore int                   `json:"away_score"`
		Stats     *models.MatchStats    `json:"stats"`
		Updates   []*models.MatchUpdate `json:"updates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, models.MatchStatusInProgress, body.Status)
	assert.Equal(t, 2, body.HomeScore)
	assert.Equal(t, 1, body.AwayScore)
	require.NotNil(t, body.Stats, "score response carries the match stats")
	assert.Equal(t, 53, body.Stats.HomePossession)
	assert.Equal(t, 47, body.Stats.AwayPossession)
	require.Len(t, body.Updates, 1)
	assert.Equal(t, models.UpdateGoal, body.Updates[0].UpdateType)
	assert.Equal(t, "⚽ BUT ! Lyon marque !", body.Updates[0].Description)
}

func TestRecordGoalHandlerInvalidSide(t *testing.T) {
	router := newLiveTestRouter(&stubLiveService{goalErr: services.ErrInvalidTeamSide})

	req := httptest.NewRequest(http.MethodPost, "/api/matches/1/score",
		bytes.NewBufferString(`{"team": "middle"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordGoalHandlerRejectsBadMatchID(t *testing.T) {
	router := newLiveTestRouter(&stubLiveService{})

	req := httptest.NewRequest(http.MethodPost, "/api/matches/abc/score",
		bytes.NewBufferString(`{"team": "home"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
