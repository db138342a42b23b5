package product

import (
	"context"
	"fmt"
	"strconv"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/category"
	"go-storefront/internal/forms"
	"go-storefront/internal/tables"
)

var statusOptions = []models.SelectOption{
	{Label: "Active", Value: "active"},
	{Label: "Inactive", Value: "inactive"},
}

var onSaleOptions = []models.SelectOption{
	{Label: "No", Value: "false"},
	{Label: "Yes", Value: "true"},
}

// Uploader abstracts the file storage the images field delegates to.
type Uploader func(ctx context.Context, handles []forms.FileHandle) ([]string, error)

// FormConfig declares the product admin form. Category options come from the
// live category list; the sale price field only shows while "On sale" is set.
func FormConfig(svc ProductService, categories []category.Category, upload Uploader, actor *models.User, existing *Product) forms.FormConfig {
	categoryOptions := make([]models.SelectOption, 0, len(categories))
	for _, cat := range categories {
		categoryOptions = append(categoryOptions, models.SelectOption{
			Label: cat.Name,
			Value: cat.ID.Hex(),
		})
	}
	if len(categoryOptions) == 0 {
		categoryOptions = []models.SelectOption{{Label: "Uncategorized", Value: ""}}
	}

	cfg := forms.FormConfig{
		Title:   "New Product",
		Columns: 2,
		Fields: []forms.FieldConfig{
			{Name: "name", Kind: forms.KindInput, Label: "Name", Rule: "required,min=2"},
			{Name: "slug", Kind: forms.KindInput, Label: "Slug", Placeholder: "generated from name when empty"},
			{Name: "description", Kind: forms.KindTextArea, Label: "Description", ColSpan: 2},
			{Name: "category", Kind: forms.KindSelect, Label: "Category", Rule: "required", Options: categoryOptions},
			{Name: "price", Kind: forms.KindInput, Label: "Price", InputType: "number", Rule: "required,min=0"},
			{Name: "onSale", Kind: forms.KindSelect, Label: "On sale", Options: onSaleOptions},
			{
				Name: "salePrice", Kind: forms.KindInput, Label: "Sale price", InputType: "number",
				Rule: "required,gt=0",
				VisibleWhen: func(values forms.Values) bool {
					return asString(values["onSale"]) == "true"
				},
			},
			{Name: "stock", Kind: forms.KindInput, Label: "Stock", InputType: "number", Rule: "min=0"},
			{Name: "status", Kind: forms.KindSelect, Label: "Status", Rule: "required", Options: statusOptions},
			{Name: "images", Kind: forms.KindFile, Label: "Images", MaxFiles: 5, MaxFileSize: 5 << 20},
			{
				Name: "variants", Kind: forms.KindDynamicGroup, Label: "Variants", ColSpan: 2,
				Nested: []forms.FieldConfig{
					{Name: "label", Kind: forms.KindInput, Label: "Label", Rule: "required"},
					{Name: "sku", Kind: forms.KindInput, Label: "SKU", Rule: "required"},
					{Name: "price", Kind: forms.KindInput, Label: "Price", InputType: "number", Rule: "min=0"},
					{Name: "stock", Kind: forms.KindInput, Label: "Stock", InputType: "number", Rule: "min=0"},
				},
			},
		},
		UploadFiles: forms.UploadFunc(upload),
		RedirectTo:  "/admin/products",
	}

	if existing != nil {
		cfg.Title = "Edit Product"
		cfg.Defaults = forms.Values{
			"name":        existing.Name,
			"slug":        existing.Slug,
			"description": existing.Description,
			"category":    existing.CategoryID,
			"price":       existing.Price,
			"onSale":      strconv.FormatBool(existing.OnSale),
			"salePrice":   existing.SalePrice,
			"stock":       existing.Stock,
			"status":      existing.Status,
			"images":      existing.Images,
			"variants":    variantRows(existing.Variants),
		}
	}

	cfg.Submit = func(ctx context.Context, values forms.Values, isUpdate bool) (*forms.SubmitResult, error) {
		p := &Product{
			Name:        asString(values["name"]),
			Slug:        asString(values["slug"]),
			Description: asString(values["description"]),
			CategoryID:  asString(values["category"]),
			Price:       asFloat(values["price"]),
			OnSale:      asString(values["onSale"]) == "true",
			SalePrice:   asFloat(values["salePrice"]),
			Stock:       int(asFloat(values["stock"])),
			Status:      asString(values["status"]),
			Images:      asStrings(values["images"]),
			Variants:    asVariants(values["variants"]),
		}

		if isUpdate {
			if existing == nil {
				return nil, fmt.Errorf("no product loaded for update")
			}
			// Uploads replace images only when new files came in.
			if len(p.Images) == 0 {
				p.Images = existing.Images
			}
			if err := svc.UpdateProduct(ctx, actor, existing.ID.Hex(), p); err != nil {
				return nil, err
			}
			return &forms.SubmitResult{Success: true, Message: "Product updated"}, nil
		}

		if _, err := svc.CreateProduct(ctx, actor, p); err != nil {
			return nil, err
		}
		return &forms.SubmitResult{Success: true, Message: "Product created"}, nil
	}

	return cfg
}

func Columns() []tables.ColumnDef {
	return []tables.ColumnDef{
		{Key: "name", Header: "Name"},
		{Key: "category", Header: "Category"},
		{Key: "price", Header: "Price", Render: func(row tables.Row) string {
			return fmt.Sprintf("%.2f", asFloat(row["price"]))
		}},
		{Key: "stock", Header: "Stock"},
		{Key: "status", Header: "Status"},
		{Key: "createdAt", Header: "Created"},
		{Key: "actions", Header: "", Unsortable: true},
	}
}

func FilterFields() []tables.FilterField {
	return []tables.FilterField{
		{Key: "name", Kind: tables.FilterText},
		{Key: "status", Kind: tables.FilterFacet},
		{Key: "category", Kind: tables.FilterFacet},
		{Key: "createdAt", Kind: tables.FilterDateRange},
	}
}

func TableRows(products []Product, categoryNames map[string]string) []tables.Row {
	rows := make([]tables.Row, 0, len(products))
	for _, p := range products {
		name := categoryNames[p.CategoryID]
		if name == "" {
			name = "Uncategorized"
		}
		rows = append(rows, tables.Row{
			"id":        p.ID.Hex(),
			"name":      p.Name,
			"category":  name,
			"price":     p.EffectivePrice(),
			"stock":     p.Stock,
			"status":    p.Status,
			"createdAt": p.CreatedAt,
		})
	}
	return rows
}

func variantRows(variants []Variant) []forms.Values {
	rows := make([]forms.Values, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, forms.Values{
			"label": v.Label,
			"sku":   v.SKU,
			"price": v.Price,
			"stock": v.Stock,
		})
	}
	return rows
}

func asVariants(v interface{}) []Variant {
	rows, ok := v.([]forms.Values)
	if !ok {
		return nil
	}
	variants := make([]Variant, 0, len(rows))
	for _, row := range rows {
		variants = append(variants, Variant{
			Label: asString(row["label"]),
			SKU:   asString(row["sku"]),
			Price: asFloat(row["price"]),
			Stock: int(asFloat(row["stock"])),
		})
	}
	return variants
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func asStrings(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
