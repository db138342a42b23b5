package category

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CategoryAPI struct {
	Controller *CategoryController
	Gate       *middleware.SessionGate
}

func NewCategoryAPI(controller *CategoryController, gate *middleware.SessionGate) *CategoryAPI {
	return &CategoryAPI{Controller: controller, Gate: gate}
}

func (api *CategoryAPI) Setup(app *fiber.App) {
	// Public storefront listing.
	app.Get("/api/store/categories", api.Controller.StorefrontList)

	admin := app.Group("/api/categories", api.Gate.Handler)
	admin.Get("/", middleware.RequireRead("Categories"), api.Controller.Table)
	admin.Get("/form", middleware.RequireWrite("Categories"), api.Controller.Form)
	admin.Get("/:id/form", middleware.RequireWrite("Categories"), api.Controller.Form)
	admin.Post("/form", middleware.RequireWrite("Categories"), api.Controller.Submit)
	admin.Post("/:id/form", middleware.RequireWrite("Categories"), api.Controller.Submit)
	admin.Delete("/:id", middleware.RequireWrite("Categories"), api.Controller.Delete)
}
