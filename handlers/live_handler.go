package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/services"
)

type LiveMatchHandler struct {
	liveService services.LiveMatchService
}

func NewLiveMatchHandler(ls services.LiveMatchService) *LiveMatchHandler {
	return &LiveMatchHandler{liveService: ls}
}

// GetMatchHandler обрабатывает GET /api/matches/{matchID}
func (h *LiveMatchHandler) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.liveService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLiveDataHandler обрабатывает GET /api/matches/{matchID}/live
func (h *LiveMatchHandler) GetLiveDataHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	data, err := h.liveService.GetLiveData(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartMatchHandler обрабатывает POST /api/matches/{matchID}/start
func (h *LiveMatchHandler) StartMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.liveService.StartMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"status":       "success",
		"match_status": match.Status,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordGoalHandler обрабатывает POST /api/matches/{matchID}/score
// с телом {"team": "home"|"away"}.
func (h *LiveMatchHandler) RecordGoalHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Team string `json:"team"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.liveService.RecordGoal(r.Context(), matchID, input.Team)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"status":     result.Match.Status,
		"home_score": result.Match.HomeScore,
		"away_score": result.Match.AwayScore,
		"stats":      result.Stats,
		"updates":    []*models.MatchUpdate{result.Event},
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordCardHandler обрабатывает
// POST /api/matches/{matchID}/player/{playerID}/card/{cardType}
func (h *LiveMatchHandler) RecordCardHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cardType := models.CardType(chi.URLParam(r, "cardType"))
	if cardType != models.CardYellow && cardType != models.CardRed {
		badRequestResponse(w, r, errors.New("card type must be 'yellow' or 'red'"))
		return
	}

	event, err := h.liveService.RecordCard(r.Context(), matchID, playerID, cardType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"status": "success",
		"event":  event,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EndMatchHandler обрабатывает POST /api/matches/{matchID}/end.
// Повторное завершение возвращает 200 со статусом "info".
func (h *LiveMatchHandler) EndMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.liveService.EndMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := "success"
	if result.AlreadyCompleted {
		status = "info"
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"status":       status,
		"match_status": result.Match.Status,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
