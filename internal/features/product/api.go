package product

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProductAPI struct {
	Controller *ProductController
	Gate       *middleware.SessionGate
}

func NewProductAPI(controller *ProductController, gate *middleware.SessionGate) *ProductAPI {
	return &ProductAPI{Controller: controller, Gate: gate}
}

func (api *ProductAPI) Setup(app *fiber.App) {
	// Public storefront.
	app.Get("/api/store/products", api.Controller.StorefrontList)
	app.Get("/api/store/products/:slug", api.Controller.StorefrontDetail)

	admin := app.Group("/api/products", api.Gate.Handler)
	admin.Get("/", middleware.RequireRead("Products"), api.Controller.Table)
	admin.Get("/form", middleware.RequireWrite("Products"), api.Controller.Form)
	admin.Get("/:id/form", middleware.RequireWrite("Products"), api.Controller.Form)
	admin.Post("/form", middleware.RequireWrite("Products"), api.Controller.Submit)
	admin.Post("/:id/form", middleware.RequireWrite("Products"), api.Controller.Submit)
	admin.Delete("/:id", middleware.RequireWrite("Products"), api.Controller.Delete)
}
