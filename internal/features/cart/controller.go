package cart

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CartController struct {
	Service CartService
}

func NewCartController(service CartService) *CartController {
	return &CartController{Service: service}
}

func (ctrl *CartController) GetCart(c *fiber.Ctx) error {
	cart, err := ctrl.Service.GetCart(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(cart)
}

func (ctrl *CartController) AddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	cart, err := ctrl.Service.AddItem(c.UserContext(), middleware.CurrentUser(c), body.ProductID, body.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(cart)
}

func (ctrl *CartController) UpdateItem(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cart, err := ctrl.Service.UpdateItem(c.UserContext(), middleware.CurrentUser(c), c.Params("productId"), body.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(cart)
}

func (ctrl *CartController) RemoveItem(c *fiber.Ctx) error {
	cart, err := ctrl.Service.RemoveItem(c.UserContext(), middleware.CurrentUser(c), c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(cart)
}

func (ctrl *CartController) Clear(c *fiber.Ctx) error {
	if err := ctrl.Service.Clear(c.UserContext(), middleware.CurrentUser(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

func (ctrl *CartController) Checkout(c *fiber.Ctx) error {
	created, err := ctrl.Service.Checkout(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
