package file

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileAPI struct {
	Controller *FileController
	Gate       *middleware.SessionGate
}

func NewFileAPI(controller *FileController, gate *middleware.SessionGate) *FileAPI {
	return &FileAPI{Controller: controller, Gate: gate}
}

func (api *FileAPI) Setup(app *fiber.App) {
	files := app.Group("/api/files", api.Gate.Handler)
	files.Post("/", api.Controller.Upload)
	files.Delete("/:id", api.Controller.Delete)
}
