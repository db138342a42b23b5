package store

import (
	"go-storefront/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StoreController struct {
	Service StoreService
}

func NewStoreController(service StoreService) *StoreController {
	return &StoreController{Service: service}
}

func (ctrl *StoreController) CreateStore(c *fiber.Ctx) error {
	var s Store
	if err := c.BodyParser(&s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	created, err := ctrl.Service.CreateStore(c.UserContext(), middleware.CurrentUser(c), &s)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (ctrl *StoreController) GetStore(c *fiber.Ctx) error {
	s, err := ctrl.Service.GetStore(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Store not found",
		})
	}
	return c.JSON(s)
}

func (ctrl *StoreController) ListStores(c *fiber.Ctx) error {
	stores, err := ctrl.Service.ListStores(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"data": stores})
}

func (ctrl *StoreController) UpdateStore(c *fiber.Ctx) error {
	var s Store
	if err := c.BodyParser(&s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateStore(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), &s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Store updated successfully"})
}

func (ctrl *StoreController) DeleteStore(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteStore(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
