package handlers

import (
	"net/http"

	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"
	"github.com/cxmpoundV/TaskManagementAPI/internal/service"
	"github.com/cxmpoundV/TaskManagementAPI/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WS upgrades the connection and subscribes the client to its own digest
// pushes. Browsers cannot set headers on WebSocket upgrades, so the token
// travels as a query parameter.
func (h *Handler) WS(c *gin.Context) {
	userID, err := service.ParseJWT(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(user.Email, conn, h.Hub)
	go client.Run()
}
