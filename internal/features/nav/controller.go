package nav

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NavController struct{}

func NewNavController() *NavController {
	return &NavController{}
}

func (ctrl *NavController) GetNav(c *fiber.Ctx) error {
	items := Filter(Menu(), middleware.CurrentUser(c), middleware.Permissions(c))
	if items == nil {
		items = []NavItem{}
	}
	return c.JSON(fiber.Map{"data": items})
}
