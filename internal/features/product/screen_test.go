package product

import (
	"context"
	"testing"

	"go-storefront/internal/common/models"
	"go-storefront/internal/features/category"
	"go-storefront/internal/forms"
)

type recordingService struct {
	ProductService
	created *Product
}

func (s *recordingService) CreateProduct(ctx context.Context, actor *models.User, p *Product) (*Product, error) {
	s.created = p
	return p, nil
}

func noUpload(ctx context.Context, handles []forms.FileHandle) ([]string, error) {
	return nil, nil
}

func newCreateEngine(t *testing.T, svc ProductService) *forms.Engine {
	t.Helper()
	engine, err := forms.NewEngine(FormConfig(svc, nil, noUpload, nil, nil), forms.ModeCreate)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func TestSalePriceHiddenUnlessOnSale(t *testing.T) {
	svc := &recordingService{}
	engine := newCreateEngine(t, svc)

	// onSale=false: salePrice is hidden, so its required rule must not fire.
	_, err := engine.Submit(context.Background(), forms.Values{
		"name":     "Desk Lamp",
		"category": "lighting",
		"price":    29.99,
		"onSale":   "false",
		"status":   "active",
	}, nil)
	if err != nil {
		t.Fatalf("submit without sale price: %v", err)
	}
	if svc.created == nil || svc.created.OnSale {
		t.Fatal("expected a non-sale product")
	}

	// onSale=true without a sale price: the revealed field's rule fires.
	svc.created = nil
	engine = newCreateEngine(t, svc)
	_, err = engine.Submit(context.Background(), forms.Values{
		"name":     "Desk Lamp",
		"category": "lighting",
		"price":    29.99,
		"onSale":   "true",
		"status":   "active",
	}, nil)
	verrs, ok := err.(forms.ValidationError)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verrs["salePrice"]; !found {
		t.Errorf("salePrice error missing: %v", verrs)
	}
	if svc.created != nil {
		t.Error("handler ran despite validation failure")
	}
}

func TestVariantRowErrorsAreIndexed(t *testing.T) {
	svc := &recordingService{}
	engine := newCreateEngine(t, svc)

	_, err := engine.Submit(context.Background(), forms.Values{
		"name":     "T-Shirt",
		"category": "lighting",
		"price":    15.0,
		"status":   "active",
		"variants": []forms.Values{
			{"label": "Small", "sku": "TS-S"},
			{"label": "", "sku": ""},
		},
	}, nil)

	verrs, ok := err.(forms.ValidationError)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verrs["variants[1].label"]; !found {
		t.Errorf("second row label error missing: %v", verrs)
	}
	if _, found := verrs["variants[0].label"]; found {
		t.Errorf("valid row flagged: %v", verrs)
	}
}

func TestSubmitMapsVariants(t *testing.T) {
	svc := &recordingService{}
	engine := newCreateEngine(t, svc)

	_, err := engine.Submit(context.Background(), forms.Values{
		"name":     "T-Shirt",
		"category": "lighting",
		"price":    15.0,
		"status":   "active",
		"variants": []forms.Values{
			{"label": "Small", "sku": "TS-S", "price": 15.0, "stock": 3},
			{"label": "Large", "sku": "TS-L", "price": 17.0, "stock": 1},
		},
	}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(svc.created.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(svc.created.Variants))
	}
	if svc.created.Variants[1].SKU != "TS-L" || svc.created.Variants[1].Stock != 1 {
		t.Errorf("variant mapping wrong: %+v", svc.created.Variants[1])
	}
}

func TestMultipartValuesKeepRepeatedKeys(t *testing.T) {
	values := multipartValues(map[string][]string{
		"name":   {"Desk Lamp"},
		"tags":   {"sale", "new", "lighting"},
		"absent": {},
	})

	if values["name"] != "Desk Lamp" {
		t.Errorf("single value not collapsed: %v", values["name"])
	}
	tags, ok := values["tags"].([]string)
	if !ok || len(tags) != 3 || tags[1] != "new" {
		t.Errorf("repeated key lost values: %v", values["tags"])
	}
	if _, found := values["absent"]; found {
		t.Error("empty field leaked into values")
	}
}

func TestCategoryOptionsComeFromList(t *testing.T) {
	categories := []category.Category{
		{Name: "Lighting"},
		{Name: "Furniture"},
	}

	cfg := FormConfig(&recordingService{}, categories, noUpload, nil, nil)
	for _, field := range cfg.Fields {
		if field.Name != "category" {
			continue
		}
		if len(field.Options) != 2 || field.Options[0].Label != "Lighting" {
			t.Errorf("category options = %+v", field.Options)
		}
		return
	}
	t.Fatal("category field not declared")
}
