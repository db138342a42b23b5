package store

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StoreAPI struct {
	Controller *StoreController
	Gate       *middleware.SessionGate
}

func NewStoreAPI(controller *StoreController, gate *middleware.SessionGate) *StoreAPI {
	return &StoreAPI{Controller: controller, Gate: gate}
}

func (api *StoreAPI) Setup(app *fiber.App) {
	stores := app.Group("/api/stores", api.Gate.Handler)
	stores.Get("/", middleware.RequireRead("Stores"), api.Controller.ListStores)
	stores.Get("/:id", middleware.RequireRead("Stores"), api.Controller.GetStore)
	stores.Post("/", middleware.RequireWrite("Stores"), api.Controller.CreateStore)
	stores.Put("/:id", middleware.RequireWrite("Stores"), api.Controller.UpdateStore)
	stores.Delete("/:id", middleware.RequireWrite("Stores"), api.Controller.DeleteStore)
}
