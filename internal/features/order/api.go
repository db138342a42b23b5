package order

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrderAPI struct {
	Controller *OrderController
	Gate       *middleware.SessionGate
}

func NewOrderAPI(controller *OrderController, gate *middleware.SessionGate) *OrderAPI {
	return &OrderAPI{Controller: controller, Gate: gate}
}

func (api *OrderAPI) Setup(app *fiber.App) {
	// Customers see their own orders without back-office permissions.
	app.Get("/api/my/orders", api.Gate.Handler, api.Controller.MyOrders)

	orders := app.Group("/api/orders", api.Gate.Handler)
	orders.Get("/", middleware.RequireRead("Orders"), api.Controller.Table)
	orders.Get("/export", middleware.RequireRead("Orders"), api.Controller.Export)
	orders.Get("/:id", middleware.RequireRead("Orders"), api.Controller.GetOrder)
	orders.Put("/:id/status", middleware.RequireWrite("Orders"), api.Controller.UpdateStatus)
}
