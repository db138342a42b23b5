package notification

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NotificationController struct {
	Hub    *Hub
	Logger *zap.Logger
}

func NewNotificationController(hub *Hub, logger *zap.Logger) *NotificationController {
	return &NotificationController{Hub: hub, Logger: logger}
}

// Upgrade rejects plain HTTP requests on the websocket path.
func (ctrl *NotificationController) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream pushes order events to the connected client until it hangs up.
// Closing the subscription also closes its channel, which ends the write
// loop.
func (ctrl *NotificationController) Stream(conn *websocket.Conn) {
	sub := ctrl.Hub.Subscribe()
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain control frames; an error means the client went away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				ctrl.Logger.Debug("order stream write failed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}

// Recent serves the replay buffer over plain HTTP for clients that poll.
func (ctrl *NotificationController) Recent(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": ctrl.Hub.Recent()})
}
