package websocket

import (
	"net/http"

	"github.com/fadelsew02/maxime-app-sub000/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
)

var upgrader = gorillaWS.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// origin filtering is handled by the CORS layer
		return true
	},
}

// Handler upgrades the connection after validating the token passed as a
// query parameter (browsers cannot set headers on websocket dials).
func Handler(hub *Hub, validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
			return
		}

		client := NewClient(uuid.NewString(), claims.Subject, claims.Role, hub, conn)
		hub.Register <- client

		go client.ReadPump()
		go client.WritePump()
	}
}
