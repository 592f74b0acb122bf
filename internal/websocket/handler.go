package websocket

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
)

// ServeWs handles websocket requests from the peer. The connection is
// greeted with a status frame so clients can confirm the link is live.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	greeting, _ := json.Marshal(map[string]interface{}{
		"type": "status",
		"data": map[string]string{"message": "Connected to AI Template Engine"},
	})
	client.Send <- greeting

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
