package category

import (
	"context"
	"strings"

	"go-storefront/internal/features/permission"
	"go-storefront/internal/forms"
	"go-storefront/internal/middleware"
	"go-storefront/internal/tables"

	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	Service  CategoryService
	Registry *forms.Registry
}

func NewCategoryController(service CategoryService) *CategoryController {
	return &CategoryController{
		Service:  service,
		Registry: forms.NewRegistry(),
	}
}

// Table serves the admin category table. Users without write access get the
// actions column projected away.
func (ctrl *CategoryController) Table(c *fiber.Ctx) error {
	categories, err := ctrl.Service.ListCategories(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var hidden []string
	if !permission.CanWrite(middleware.CurrentUser(c), middleware.Permissions(c), "Categories") {
		hidden = append(hidden, "actions")
	}

	engine := tables.NewEngine(Columns(), TableRows(categories), FilterFields(), []string{"createdAt"}, hidden)
	engine.SetSearch(c.Query("search"))
	if statuses := c.Query("status"); statuses != "" {
		engine.SetFacet("status", strings.Split(statuses, ","))
	}
	engine.SortBy(c.Query("sort"), c.QueryBool("desc"))
	engine.SetPage(c.QueryInt("page", 1), c.QueryInt("size", 10))

	return c.JSON(engine.View())
}

func (ctrl *CategoryController) Form(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var existing *Category
	mode := forms.ModeCreate
	if id := c.Params("id"); id != "" {
		found, err := ctrl.Service.GetCategory(c.UserContext(), id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		existing = found
		mode = forms.ModeUpdate
	}

	engine, err := forms.NewEngine(FormConfig(ctrl.Service, actor, existing), mode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(engine.View(ctrl.Registry, nil))
}

func (ctrl *CategoryController) Submit(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	var existing *Category
	mode := forms.ModeCreate
	if id := c.Params("id"); id != "" {
		found, err := ctrl.Service.GetCategory(c.UserContext(), id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		existing = found
		mode = forms.ModeUpdate
	}

	var values forms.Values
	if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	engine, err := forms.NewEngine(FormConfig(ctrl.Service, actor, existing), mode)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := engine.Submit(c.UserContext(), values, nil)
	if err != nil {
		return renderFormError(c, err)
	}
	return c.JSON(fiber.Map{
		"result":   result,
		"redirect": engine.RedirectTo(),
	})
}

// Delete drives the two-step confirmation: without ?confirm=true the call
// only reports what would be deleted.
func (ctrl *CategoryController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, err := ctrl.Service.GetCategory(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	actor := middleware.CurrentUser(c)
	flow := tables.NewDeleteFlow(func(ctx context.Context, row tables.Row) (*tables.DeleteResult, error) {
		if err := ctrl.Service.DeleteCategory(ctx, actor, id); err != nil {
			return nil, err
		}
		return &tables.DeleteResult{Success: true, Message: "Category deleted"}, nil
	})
	defer flow.Close()

	if err := flow.Trigger(tables.Row{"id": id, "name": existing.Name}); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	if !c.QueryBool("confirm") {
		flow.Cancel()
		return c.JSON(fiber.Map{
			"state":   tables.StateConfirming,
			"message": "Delete \"" + existing.Name + "\"? Re-send with confirm=true.",
		})
	}

	result, err := flow.Confirm(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// StorefrontList is the public category listing.
func (ctrl *CategoryController) StorefrontList(c *fiber.Ctx) error {
	categories, err := ctrl.Service.ListActive(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"data": categories})
}

func renderFormError(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case forms.ValidationError:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": e,
		})
	case *forms.UploadError:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": e.Error(),
			"field": e.Field,
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
