package endpoints

import (
	"askai"
	"askai/internal/api/handler/middleware"
	"askai/internal/api/handler/response"
	websocket2 "askai/internal/api/websocket"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin
		return true
	},
}

type websocketHandler struct {
	hub    *websocket2.Hub
	logger zerolog.Logger
	config askai.AppConfig
}

func newWebSocketHandler(hub *websocket2.Hub) *websocketHandler {
	return &websocketHandler{
		hub:    hub,
		logger: askai.Logger,
		config: askai.GetConfig(),
	}
}

// WebSocketHandler sets up WebSocket routes
func WebSocketHandler(router *graceful.Graceful, hub *websocket2.Hub) {
	h := newWebSocketHandler(hub)

	wsRoutes := router.Group("/api/v1/ws")
	wsRoutes.Use(middleware.AuthMiddleware(h.config))
	{
		wsRoutes.GET("/init", h.handleWebSocket)
	}

	wsRoutes.GET("/stats", h.getStats)
}

// handleWebSocket attaches the editor to its session room
func (slf *websocketHandler) handleWebSocket(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "sessionId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	client := websocket2.NewClient(uuid.NewString(), sessionID, slf.hub, conn, slf.logger)
	slf.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func (slf *websocketHandler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activeSessions": slf.hub.ActiveSessions()})
}
