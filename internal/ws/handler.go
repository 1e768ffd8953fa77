package ws

import (
	"log"
	"net/http"

	"qrmenu/config"
	"qrmenu/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set custom headers on websocket dials; origin
	// enforcement happens at the CORS layer for the REST surface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades the connection and parks it in the hub. The bearer token
// travels as a query parameter because browsers cannot set headers on
// websocket dials. Clients are write-only from the server's perspective;
// the read loop exists to detect disconnects.
func Handler(hub *Hub, jwtCfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := auth.ParseToken(jwtCfg, c.Query("token")); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade: %v", err)
			return
		}
		hub.Register(conn)
		go func() {
			defer hub.Unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
