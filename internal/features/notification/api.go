package notification

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationAPI struct {
	Controller *NotificationController
	Gate       *middleware.SessionGate
}

func NewNotificationAPI(controller *NotificationController, gate *middleware.SessionGate) *NotificationAPI {
	return &NotificationAPI{Controller: controller, Gate: gate}
}

func (api *NotificationAPI) Setup(app *fiber.App) {
	app.Get("/api/notifications/orders", api.Gate.Handler,
		middleware.RequireRead("Orders"), api.Controller.Recent)

	app.Use("/ws/orders", api.Gate.Handler,
		middleware.RequireRead("Orders"), api.Controller.Upgrade)
	app.Get("/ws/orders", websocket.New(api.Controller.Stream))
}
