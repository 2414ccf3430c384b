package handlers

import (
	"log"
	"net/http"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	authService *services.AuthService
}

func NewWSHandler(hub *ws.Hub, authService *services.AuthService) *WSHandler {
	return &WSHandler{hub: hub, authService: authService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSyncWebSocket godoc
// @Summary      WebSocket for sync progress
// @Description  Connect with ?token= to receive sync progress events for the authenticated user
// @Tags         websocket
// @Param        token query string true "Session token"
// @Router       /ws/sync [get]
func (h *WSHandler) HandleSyncWebSocket(c *gin.Context) {
	// Browsers can't set headers on websocket dials, so the session
	// token rides in the query string here.
	userID, err := h.authService.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(userID, conn)
	defer h.hub.RemoveConnection(userID, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
