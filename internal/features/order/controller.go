package order

import (
	"strings"
	"time"

	"go-storefront/internal/features/permission"
	"go-storefront/internal/middleware"
	"go-storefront/internal/tables"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Service OrderService
}

func NewOrderController(service OrderService) *OrderController {
	return &OrderController{Service: service}
}

func (ctrl *OrderController) Table(c *fiber.Ctx) error {
	orders, err := ctrl.Service.ListOrders(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var hidden []string
	if !permission.CanWrite(middleware.CurrentUser(c), middleware.Permissions(c), "Orders") {
		hidden = append(hidden, "actions")
	}

	engine := tables.NewEngine(Columns(), TableRows(orders), FilterFields(), []string{"createdAt"}, hidden)
	engine.SetSearch(c.Query("search"))
	if statuses := c.Query("status"); statuses != "" {
		engine.SetFacet("status", strings.Split(statuses, ","))
	}
	if from, to := queryTime(c, "from"), queryTime(c, "to"); !from.IsZero() || !to.IsZero() {
		engine.SetDateRange("createdAt", from, to)
	}
	engine.SortBy(c.Query("sort"), c.QueryBool("desc"))
	engine.SetPage(c.QueryInt("page", 1), c.QueryInt("size", 10))

	return c.JSON(engine.View())
}

func (ctrl *OrderController) GetOrder(c *fiber.Ctx) error {
	o, err := ctrl.Service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	return c.JSON(o)
}

func (ctrl *OrderController) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateStatus(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), body.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

func (ctrl *OrderController) Export(c *fiber.Ctx) error {
	data, err := ctrl.Service.ExportXLSX(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filename := "orders-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}

// MyOrders lists the authenticated customer's own orders.
func (ctrl *OrderController) MyOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	orders, err := ctrl.Service.ListByCustomer(c.UserContext(), user.ID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"data": orders})
}

func queryTime(c *fiber.Ctx, key string) time.Time {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
