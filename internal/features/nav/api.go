package nav

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NavAPI struct {
	Controller *NavController
	Gate       *middleware.SessionGate
}

func NewNavAPI(controller *NavController, gate *middleware.SessionGate) *NavAPI {
	return &NavAPI{Controller: controller, Gate: gate}
}

func (api *NavAPI) Setup(app *fiber.App) {
	app.Get("/api/nav", api.Gate.Handler, api.Controller.GetNav)
}
