package cart

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CartAPI struct {
	Controller *CartController
	Gate       *middleware.SessionGate
}

func NewCartAPI(controller *CartController, gate *middleware.SessionGate) *CartAPI {
	return &CartAPI{Controller: controller, Gate: gate}
}

func (api *CartAPI) Setup(app *fiber.App) {
	cart := app.Group("/api/cart", api.Gate.Handler)
	cart.Get("/", api.Controller.GetCart)
	cart.Post("/items", api.Controller.AddItem)
	cart.Put("/items/:productId", api.Controller.UpdateItem)
	cart.Delete("/items/:productId", api.Controller.RemoveItem)
	cart.Delete("/", api.Controller.Clear)
	cart.Post("/checkout", api.Controller.Checkout)
}
