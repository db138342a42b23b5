package product

import (
	"context"
	"io"
	"strings"
	"time"

	"go-storefront/internal/features/category"
	"go-storefront/internal/features/file"
	"go-storefront/internal/features/permission"
	"go-storefront/internal/forms"
	"go-storefront/internal/middleware"
	"go-storefront/internal/tables"

	"github.com/gofiber/fiber/v2"
)

type ProductController struct {
	Service    ProductService
	Categories category.CategoryService
	Files      file.FileService
	Registry   *forms.Registry
}

func NewProductController(service ProductService, categories category.CategoryService, files file.FileService) *ProductController {
	return &ProductController{
		Service:    service,
		Categories: categories,
		Files:      files,
		Registry:   forms.NewRegistry(),
	}
}

func (ctrl *ProductController) Table(c *fiber.Ctx) error {
	products, err := ctrl.Service.ListProducts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	categories, err := ctrl.Categories.ListCategories(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID.Hex()] = cat.Name
	}

	var hidden []string
	if !permission.CanWrite(middleware.CurrentUser(c), middleware.Permissions(c), "Products") {
		hidden = append(hidden, "actions")
	}

	engine := tables.NewEngine(Columns(), TableRows(products, names), FilterFields(), []string{"createdAt"}, hidden)
	engine.SetSearch(c.Query("search"))
	if statuses := c.Query("status"); statuses != "" {
		engine.SetFacet("status", strings.Split(statuses, ","))
	}
	if cats := c.Query("category"); cats != "" {
		engine.SetFacet("category", strings.Split(cats, ","))
	}
	if from, to := queryTime(c, "from"), queryTime(c, "to"); !from.IsZero() || !to.IsZero() {
		engine.SetDateRange("createdAt", from, to)
	}
	engine.SortBy(c.Query("sort"), c.QueryBool("desc"))
	engine.SetPage(c.QueryInt("page", 1), c.QueryInt("size", 10))

	return c.JSON(engine.View())
}

func (ctrl *ProductController) Form(c *fiber.Ctx) error {
	engine, _, err := ctrl.buildEngine(c)
	if err != nil {
		return err
	}
	return c.JSON(engine.View(ctrl.Registry, nil))
}

// Submit accepts either JSON values or a multipart form carrying both values
// and image files. Files go through the configured uploader before the
// product handler runs.
func (ctrl *ProductController) Submit(c *fiber.Ctx) error {
	engine, _, err := ctrl.buildEngine(c)
	if err != nil {
		return err
	}

	values := forms.Values{}
	files := map[string][]forms.FileHandle{}

	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		mp, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid multipart form",
			})
		}
		values = multipartValues(mp.Value)
		for _, header := range mp.File["images"] {
			h := header
			files["images"] = append(files["images"], forms.FileHandle{
				Name: h.Filename,
				Size: h.Size,
				Open: func() (io.ReadCloser, error) { return h.Open() },
			})
		}
	} else if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := engine.Submit(c.UserContext(), values, files)
	if err != nil {
		return renderFormError(c, err)
	}
	return c.JSON(fiber.Map{
		"result":   result,
		"redirect": engine.RedirectTo(),
	})
}

func (ctrl *ProductController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	existing, err := ctrl.Service.GetProduct(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	actor := middleware.CurrentUser(c)
	flow := tables.NewDeleteFlow(func(ctx context.Context, row tables.Row) (*tables.DeleteResult, error) {
		if err := ctrl.Service.DeleteProduct(ctx, actor, id); err != nil {
			return nil, err
		}
		return &tables.DeleteResult{Success: true, Message: "Product deleted"}, nil
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

// StorefrontList is the public product listing, optionally narrowed to one
// category slug.
func (ctrl *ProductController) StorefrontList(c *fiber.Ctx) error {
	var (
		products []Product
		err      error
	)
	if slug := c.Query("category"); slug != "" {
		cat, cerr := ctrl.Categories.GetBySlug(c.UserContext(), slug)
		if cerr != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		products, err = ctrl.Service.ListByCategory(c.UserContext(), cat.ID.Hex())
	} else {
		products, err = ctrl.Service.ListActive(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"data": products})
}

func (ctrl *ProductController) StorefrontDetail(c *fiber.Ctx) error {
	product, err := ctrl.Service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil || product.Status != "active" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	return c.JSON(product)
}

func (ctrl *ProductController) buildEngine(c *fiber.Ctx) (*forms.Engine, *Product, error) {
	actor := middleware.CurrentUser(c)

	var existing *Product
	mode := forms.ModeCreate
	if id := c.Params("id"); id != "" {
		found, err := ctrl.Service.GetProduct(c.UserContext(), id)
		if err != nil {
			return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		existing = found
		mode = forms.ModeUpdate
	}

	categories, err := ctrl.Categories.ListActive(c.UserContext())
	if err != nil {
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	upload := func(ctx context.Context, handles []forms.FileHandle) ([]string, error) {
		return ctrl.Files.UploadHandles(ctx, actor, handles)
	}

	engine, err := forms.NewEngine(FormConfig(ctrl.Service, categories, upload, actor, existing), mode)
	if err != nil {
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return engine, existing, nil
}

// multipartValues converts parsed multipart fields into form values. Repeated
// keys (multiselect submissions) keep the whole slice; single values collapse
// to the bare string so plain inputs validate the same as JSON bodies.
func multipartValues(fields map[string][]string) forms.Values {
	values := forms.Values{}
	for key, vals := range fields {
		switch len(vals) {
		case 0:
		case 1:
			values[key] = vals[0]
		default:
			values[key] = vals
		}
	}
	return values
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
