package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// DefaultRoom is used when the client gives no ?room= query param.
const DefaultRoom = "general"

// wsSender adapts a live websocket connection to the Sender interface.
// Writes are serialized by the subscriber's writer goroutine; fiber's
// websocket conn is not safe for concurrent writes.
type wsSender struct {
	conn *websocket.Conn
}

func (s *wsSender) Send(v interface{}) error {
	return s.conn.WriteJSON(v)
}

// WebSocketHandler runs one connection's read loop. The room is picked at
// upgrade time via the ?room= query param; identity is established by the
// first join event.
func WebSocketHandler(log *slog.Logger, d *Dispatcher) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		roomID, _ := c.Locals("room").(string)
		if roomID == "" {
			roomID = DefaultRoom
		}

		sess := &Session{
			ConnID: uuid.New().String(),
			RoomID: roomID,
			Sender: &wsSender{conn: c},
		}

		defer func() {
			d.HandleDisconnect(sess)
			c.Close()
		}()

		log.Info("connection opened", "conn", sess.ConnID, "room", roomID)

		for {
			msgType, msg, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warn("connection error", "conn", sess.ConnID, "error", err)
				}
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}
			d.HandleMessage(sess, msg)
		}

		log.Info("connection closed", "conn", sess.ConnID, "room", roomID, "name", sess.Name)
	})
}

// WSUpgradeMiddleware rejects plain HTTP requests on the websocket route and
// stashes the requested room for the handler.
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("room", c.Query("room", DefaultRoom))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
