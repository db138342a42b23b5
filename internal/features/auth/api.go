package auth

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthAPI struct {
	Controller *AuthController
	Gate       *middleware.SessionGate
}

func NewAuthAPI(controller *AuthController, gate *middleware.SessionGate) *AuthAPI {
	return &AuthAPI{Controller: controller, Gate: gate}
}

func (api *AuthAPI) Setup(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", api.Controller.Register)
	auth.Post("/login", api.Controller.Login)
	auth.Post("/logout", api.Controller.Logout)
	auth.Get("/me", api.Gate.Handler, api.Controller.Me)
}
