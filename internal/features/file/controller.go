package file

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FileController struct {
	Service FileService
}

func NewFileController(service FileService) *FileController {
	return &FileController{Service: service}
}

func (ctrl *FileController) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files provided",
		})
	}

	actor := middleware.CurrentUser(c)
	stored := make([]*StoredFile, 0, len(headers))
	for _, header := range headers {
		f, err := ctrl.Service.SaveMultipart(c.UserContext(), actor, header)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		stored = append(stored, f)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": stored})
}

func (ctrl *FileController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "File deleted"})
}
