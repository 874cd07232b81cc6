package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Santiii02/GoalStatsPro/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from the SPA origin; CORS already
		// gates the REST surface, so accept all origins here.
		return true
	},
}

// WSHandler upgrades connections and attaches them to the live hub.
type WSHandler struct {
	hub *hub.Hub
	ctx context.Context
}

// NewWSHandler creates a websocket handler bound to a hub. The context
// bounds client pump lifetimes, not individual requests.
func NewWSHandler(h *hub.Hub, ctx context.Context) *WSHandler {
	return &WSHandler{
		hub: h,
		ctx: ctx,
	}
}

// HandleLiveFeed upgrades HTTP connections to WebSocket and registers
// them for live match updates.
// GET /ws/live
func (h *WSHandler) HandleLiveFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	clientID := uuid.New().String()
	c := hub.NewClient(clientID, conn, h.hub)

	h.hub.Register(c)

	// Use the handler context, not the request context, so pumps
	// survive the upgrade request.
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)

	fmt.Printf("✓ WebSocket connection established: %s\n", clientID)
}
