package ws

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/go-atrium/atrium/pkg/log"
)

/**
 * @file: ws.go
 * @description: websocket echo channel
 */

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the admin frontend is served from another origin in development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and echoes every message back with a
// timestamp. A "close" message shuts the socket down from the server side.
func Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	greeting := fmt.Sprintf("%s connected", time.Now().Format("2006-01-02 15:04:05"))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(greeting)); err != nil {
		log.Errorf("websocket write failed: %v", err)
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("websocket closed unexpectedly: %v", err)
			}
			return
		}

		if string(msg) == "close" {
			return
		}

		reply := fmt.Sprintf("%s echo: %s", time.Now().Format("2006-01-02 15:04:05"), msg)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			log.Errorf("websocket write failed: %v", err)
			return
		}
	}
}
