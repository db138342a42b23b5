package forms

import (
	"context"
	"testing"

	"go-storefront/internal/common/models"
)

func TestRegistryRendersKinds(t *testing.T) {
	reg := NewRegistry()

	sel := reg.Render(FieldConfig{
		Name: "category", Kind: KindSelect, Rule: "required",
		Options: []models.SelectOption{{Label: "Shoes", Value: "shoes"}},
	}, Values{"category": "shoes"})
	if !sel.Required || len(sel.Options) != 1 || sel.Value != "shoes" {
		t.Errorf("select view wrong: %+v", sel)
	}

	file := reg.Render(FieldConfig{Name: "images", Kind: KindFile, MaxFiles: 4, MaxFileSize: 1 << 20}, Values{})
	if file.MaxFiles != 4 || file.MaxFileSize != 1<<20 {
		t.Errorf("file view wrong: %+v", file)
	}

	group := reg.Render(FieldConfig{
		Name: "variants", Kind: KindDynamicGroup,
		Nested: []FieldConfig{{Name: "size", Kind: KindInput, Rule: "required"}},
	}, Values{})
	if len(group.Nested) != 1 || !group.Nested[0].Required {
		t.Errorf("group view wrong: %+v", group)
	}
}

func TestRegistryUnknownKindFallsBackToInput(t *testing.T) {
	reg := NewRegistry()
	v := reg.Render(FieldConfig{Name: "odd", Kind: FieldKind("hologram")}, Values{})
	if v.Kind != KindInput || v.InputType != "text" {
		t.Errorf("expected input fallback, got %+v", v)
	}
}

func TestViewExcludesHiddenFields(t *testing.T) {
	cfg := FormConfig{
		Title:   "Product",
		Columns: 2,
		Fields: []FieldConfig{
			{Name: "name", Kind: KindInput},
			{
				Name: "sale_price", Kind: KindInput,
				VisibleWhen: func(v Values) bool { return v["on_sale"] == true },
			},
		},
		Submit: func(ctx context.Context, v Values, u bool) (*SubmitResult, error) { return nil, nil },
	}
	engine, err := NewEngine(cfg, ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()

	view := engine.View(reg, Values{"on_sale": false})
	if len(view.Fields) != 1 {
		t.Fatalf("hidden field rendered: %+v", view.Fields)
	}

	view = engine.View(reg, Values{"on_sale": true})
	if len(view.Fields) != 2 {
		t.Fatalf("visible field missing: %+v", view.Fields)
	}
}
