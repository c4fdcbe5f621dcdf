package handlers

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/Dosada05/tt-championship/middleware"
	"github.com/Dosada05/tt-championship/realtime"
	"github.com/Dosada05/tt-championship/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub                 *realtime.Hub
	championshipService services.ChampionshipService
	upgrader            websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" or an
// empty list accepts any origin.
func NewWebSocketHandler(hub *realtime.Hub, cs services.ChampionshipService, allowedOrigins []string) *WebSocketHandler {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub:                 hub,
		championshipService: cs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs subscribes the client to a championship. The current state is sent
// right away, then a CHAMPIONSHIP_UPDATED message follows every change.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	championshipID, err := idFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GetChampionship(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	log := middleware.LoggerFromContext(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "championship_id", championshipID, "error", err)
		return
	}

	room := realtime.RoomForChampionship(championshipID)
	client := h.hub.NewClient(conn, room)

	initial, err := json.Marshal(realtime.WebSocketMessage{
		Type:    realtime.MessageChampionshipUpdated,
		Payload: championship,
		RoomID:  room,
	})
	if err != nil {
		log.Error("failed to encode initial state", "championship_id", championshipID, "error", err)
	} else {
		client.Send <- initial
	}

	if !h.hub.Subscribe(client) {
		log.Warn("websocket hub stopped, closing connection", "championship_id", championshipID)
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
