package category

import (
	"context"
	"fmt"

	"go-storefront/internal/common/models"
	"go-storefront/internal/forms"
	"go-storefront/internal/tables"
)

var statusOptions = []models.SelectOption{
	{Label: "Active", Value: "active"},
	{Label: "Inactive", Value: "inactive"},
}

// FormConfig declares the category admin form. With a non-nil existing
// category the form edits it; otherwise it creates one.
func FormConfig(svc CategoryService, actor *models.User, existing *Category) forms.FormConfig {
	cfg := forms.FormConfig{
		Title:   "New Category",
		Columns: 2,
		Fields: []forms.FieldConfig{
			{Name: "name", Kind: forms.KindInput, Label: "Name", Rule: "required,min=2"},
			{Name: "slug", Kind: forms.KindInput, Label: "Slug", Placeholder: "generated from name when empty"},
			{Name: "description", Kind: forms.KindTextArea, Label: "Description", ColSpan: 2},
			{Name: "status", Kind: forms.KindSelect, Label: "Status", Rule: "required", Options: statusOptions},
		},
		RedirectTo: "/admin/categories",
	}

	if existing != nil {
		cfg.Title = "Edit Category"
		cfg.Defaults = forms.Values{
			"name":        existing.Name,
			"slug":        existing.Slug,
			"description": existing.Description,
			"status":      existing.Status,
		}
	}

	cfg.Submit = func(ctx context.Context, values forms.Values, isUpdate bool) (*forms.SubmitResult, error) {
		cat := &Category{
			Name:        asString(values["name"]),
			Slug:        asString(values["slug"]),
			Description: asString(values["description"]),
			Status:      asString(values["status"]),
		}

		if isUpdate {
			if existing == nil {
				return nil, fmt.Errorf("no category loaded for update")
			}
			if err := svc.UpdateCategory(ctx, actor, existing.ID.Hex(), cat); err != nil {
				return nil, err
			}
			return &forms.SubmitResult{Success: true, Message: "Category updated"}, nil
		}

		if _, err := svc.CreateCategory(ctx, actor, cat); err != nil {
			return nil, err
		}
		return &forms.SubmitResult{Success: true, Message: "Category created"}, nil
	}

	return cfg
}

// Columns declares the admin table. The actions column is locked so hiding it
// through a view preference is ignored; write access is enforced separately.
func Columns() []tables.ColumnDef {
	return []tables.ColumnDef{
		{Key: "name", Header: "Name"},
		{Key: "slug", Header: "Slug"},
		{Key: "status", Header: "Status"},
		{Key: "createdAt", Header: "Created"},
		{Key: "actions", Header: "", Unsortable: true},
	}
}

func FilterFields() []tables.FilterField {
	return []tables.FilterField{
		{Key: "name", Kind: tables.FilterText},
		{Key: "slug", Kind: tables.FilterText},
		{Key: "status", Kind: tables.FilterFacet},
	}
}

func TableRows(categories []Category) []tables.Row {
	rows := make([]tables.Row, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, tables.Row{
			"id":        cat.ID.Hex(),
			"name":      cat.Name,
			"slug":      cat.Slug,
			"status":    cat.Status,
			"createdAt": cat.CreatedAt,
		})
	}
	return rows
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
