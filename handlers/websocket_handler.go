package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Erkhan01/football-league/live"
	"github.com/Erkhan01/football-league/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь нужна проверка Origin.
		return true
	},
}

type WebSocketHandler struct {
	hub         *live.Hub
	liveService services.LiveMatchService
	logger      *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ls services.LiveMatchService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		liveService: ls,
		logger:      logger,
	}
}

// ServeWs подключает клиента к живой ленте матча.
// Клиент подключается к /ws/matches/{matchID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Комнату не создаём для несуществующего матча.
	if _, err := h.liveService.GetMatch(r.Context(), matchID); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			notFoundResponse(w, r)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP-ошибку клиенту.
		h.logger.Warn("failed to upgrade websocket connection",
			slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	roomID := live.MatchRoomID(matchID)
	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client joined match room", slog.String("room", roomID))
}
