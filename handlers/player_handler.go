package handlers

import (
	"net/http"

	"github.com/Erkhan01/football-league/services"
)

type PlayerHandler struct {
	playerService    services.PlayerService
	standingsService services.StandingsService
}

func NewPlayerHandler(ps services.PlayerService, ss services.StandingsService) *PlayerHandler {
	return &PlayerHandler{
		playerService:    ps,
		standingsService: ss,
	}
}

// CreateHandler обрабатывает POST /api/teams/{teamID}/players
func (h *PlayerHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTeamHandler обрабатывает GET /api/teams/{teamID}/players
func (h *PlayerHandler) ListByTeamHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayersByTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler обрабатывает GET /api/players/{playerID} — игрок вместе
// с накопленной статистикой.
func (h *PlayerHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	playerWithStats, err := h.playerService.GetPlayerWithStats(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{
		"player": playerWithStats.Player,
		"stats":  playerWithStats.Stats,
	}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
