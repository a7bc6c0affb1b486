package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rental-server/middleware"
	"rental-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type incomingMessage struct {
	Type    string `json:"type"` // subscribe | ping
	AgentID string `json:"agentId"`
}

// WSHandler streams listing change events to dashboard clients.
type WSHandler struct {
	mgr *ws.Manager
}

func NewWSHandler(mgr *ws.Manager) *WSHandler {
	return &WSHandler{mgr: mgr}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleListingsWS upgrades to websocket and keeps the subscription open
// until the client goes away. Callers identified by OptionalAuth also receive
// events for their own unavailable listings; admins receive all of them.
// GET /ws/listings?agent=<agent_id>&token=<jwt>
func (h *WSHandler) HandleListingsWS(c *gin.Context) {
	log := middleware.LoggerFrom(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.New().String()
	agentID := c.Query("agent")
	viewer, _ := middleware.CallerFrom(c)
	h.mgr.Register(id, viewer, agentID, conn)
	log.Info("listing subscriber connected", "subscription_id", id, "agent_id", agentID, "user_id", viewer.ID)

	defer func() {
		h.mgr.Unregister(id)
		log.Info("listing subscriber disconnected", "subscription_id", id)
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read error", "subscription_id", id, "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		h.handleMessage(log, id, message)
	}
}

func (h *WSHandler) handleMessage(log *slog.Logger, id string, message []byte) {
	var msg incomingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Debug("invalid websocket message", "subscription_id", id, "error", err)
		return
	}

	switch msg.Type {
	case "subscribe":
		h.mgr.UpdateFilter(id, msg.AgentID)
	case "ping":
		// no reply
	default:
		log.Debug("unknown websocket message", "subscription_id", id, "type", msg.Type)
	}
}

// GetSubscribers handles GET /ws/listings/subscribers
func (h *WSHandler) GetSubscribers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": h.mgr.Count()})
}
