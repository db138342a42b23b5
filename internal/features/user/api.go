package user

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserAPI struct {
	Controller *UserController
	Gate       *middleware.SessionGate
}

func NewUserAPI(controller *UserController, gate *middleware.SessionGate) *UserAPI {
	return &UserAPI{Controller: controller, Gate: gate}
}

func (api *UserAPI) Setup(app *fiber.App) {
	users := app.Group("/api/users", api.Gate.Handler)
	users.Get("/", middleware.RequireRead("Users"), api.Controller.ListUsers)
	users.Get("/:id", middleware.RequireRead("Users"), api.Controller.GetUser)
	users.Post("/", middleware.RequireWrite("Users"), api.Controller.CreateUser)
	users.Put("/:id", middleware.RequireWrite("Users"), api.Controller.UpdateUser)
	users.Delete("/:id", middleware.RequireWrite("Users"), api.Controller.DeleteUser)
}
