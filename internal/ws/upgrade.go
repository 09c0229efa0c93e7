package ws

import (
	"net/http"
	"time"

	"coachpay/config"
	"coachpay/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeLeaderboardWS upgrades a dashboard connection to the leaderboard
// feed. The token arrives as a query parameter because browsers cannot set
// headers on a WebSocket handshake. The client gets the latest snapshot for
// the requested month immediately, then every recompute as it happens.
func UpgradeLeaderboardWS(cfg *config.JWTConfig, hub *LeaderboardHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		token := c.Query("token")
		if token == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token required"}`))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
			return
		}
		client := &Client{
			StaffID: claims.StaffID,
			Send:    make(chan []byte, 16),
		}
		hub.Register(client)
		defer client.Close()

		if month := c.Query("month"); month != "" {
			if payload, ok := hub.Latest(month); ok {
				client.Send <- payload
			}
		}
		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies frames from the client's queue to the connection and
// keeps it alive with pings.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
