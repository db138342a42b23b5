package forms

import (
	"context"
	"errors"
	"testing"

	"go-storefront/internal/common/models"
)

func submitRecorder(calls *int) SubmitFunc {
	return func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error) {
		*calls++
		return &SubmitResult{Success: true, Message: "saved"}, nil
	}
}

func TestSubmitRequiredFields(t *testing.T) {
	calls := 0
	cfg := FormConfig{
		Title: "Create User",
		Fields: []FieldConfig{
			{Name: "name", Kind: KindInput, Rule: "required"},
			{Name: "email", Kind: KindInput, Rule: "required,email"},
			{Name: "bio", Kind: KindTextArea},
		},
		Submit: submitRecorder(&calls),
	}

	engine, err := NewEngine(cfg, ModeCreate)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Submit(context.Background(), Values{"email": "not-an-email"}, nil)
	verrs, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, found := verrs["name"]; !found {
		t.Error("missing error for empty required field 'name'")
	}
	if _, found := verrs["email"]; !found {
		t.Error("missing error for invalid email")
	}
	if _, found := verrs["bio"]; found {
		t.Error("optional field 'bio' should not produce an error")
	}
	if calls != 0 {
		t.Errorf("submit handler called %d times despite validation failure", calls)
	}

	res, err := engine.Submit(context.Background(), Values{"name": "Ada", "email": "ada@example.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || calls != 1 {
		t.Errorf("expected successful submit, got %+v (calls=%d)", res, calls)
	}
}

func TestSubmitHiddenFieldsExcluded(t *testing.T) {
	var captured Values
	cfg := FormConfig{
		Fields: []FieldConfig{
			{Name: "discount_type", Kind: KindSelect, Rule: "required", Options: []models.SelectOption{
				{Label: "None", Value: "none"},
				{Label: "Percent", Value: "percent"},
			}},
			{
				Name: "discount_value", Kind: KindInput, Rule: "required",
				VisibleWhen: func(v Values) bool { return v["discount_type"] == "percent" },
			},
		},
		Submit: func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error) {
			captured = values
			return &SubmitResult{Success: true}, nil
		},
	}

	engine, err := NewEngine(cfg, ModeCreate)
	if err != nil {
		t.Fatal(err)
	}

	// Hidden: required rule on discount_value must not fire.
	res, err := engine.Submit(context.Background(), Values{"discount_type": "none"}, nil)
	if err != nil {
		t.Fatalf("hidden required field blocked submission: %v", err)
	}
	if !res.Success {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := captured["discount_value"]; ok {
		t.Error("hidden field leaked into payload")
	}

	// Visible: now it must validate.
	_, err = engine.Submit(context.Background(), Values{"discount_type": "percent"}, nil)
	if _, ok := err.(ValidationError); !ok {
		t.Fatalf("expected ValidationError for visible empty field, got %v", err)
	}
}

func TestSubmitUploadFailureAborts(t *testing.T) {
	calls := 0
	cfg := FormConfig{
		Fields: []FieldConfig{
			{Name: "images", Kind: KindFile, MaxFiles: 3},
		},
		Submit: submitRecorder(&calls),
		UploadFiles: func(ctx context.Context, files []FileHandle) ([]string, error) {
			return nil, errors.New("bucket unavailable")
		},
	}

	engine, err := NewEngine(cfg, ModeCreate)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Submit(context.Background(), Values{}, map[string][]FileHandle{
		"images": {{Name: "a.png", Size: 100}},
	})

	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if uerr.Field != "images" {
		t.Errorf("UploadError field = %s", uerr.Field)
	}
	if calls != 0 {
		t.Error("submit handler must not run after an upload failure")
	}
}

func TestSubmitUploadsBeforeHandler(t *testing.T) {
	var captured Values
	cfg := FormConfig{
		Fields: []FieldConfig{
			{Name: "title", Kind: KindInput, Rule: "required"},
			{Name: "images", Kind: KindFile},
		},
		Submit: func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error) {
			captured = values
			return &SubmitResult{Success: true}, nil
		},
		UploadFiles: func(ctx context.Context, files []FileHandle) ([]string, error) {
			urls := make([]string, len(files))
			for i, f := range files {
				urls[i] = "/fs/uploads/" + f.Name
			}
			return urls, nil
		},
	}

	engine, err := NewEngine(cfg, ModeUpdate)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Submit(context.Background(), Values{"title": "Jacket"}, map[string][]FileHandle{
		"images": {{Name: "front.png"}, {Name: "back.png"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	urls, ok := captured["images"].([]string)
	if !ok || len(urls) != 2 || urls[0] != "/fs/uploads/front.png" {
		t.Errorf("uploaded URLs not merged into payload: %v", captured["images"])
	}
}

func TestSubmitFileLimits(t *testing.T) {
	calls := 0
	cfg := FormConfig{
		Fields: []FieldConfig{
			{Name: "docs", Kind: KindFile, MaxFiles: 1, MaxFileSize: 1024},
		},
		Submit: submitRecorder(&calls),
		UploadFiles: func(ctx context.Context, files []FileHandle) ([]string, error) {
			return []string{"/fs/uploads/x"}, nil
		},
	}
	engine, _ := NewEngine(cfg, ModeCreate)

	_, err := engine.Submit(context.Background(), Values{}, map[string][]FileHandle{
		"docs": {{Name: "a"}, {Name: "b"}},
	})
	if _, ok := err.(ValidationError); !ok {
		t.Fatalf("expected ValidationError for too many files, got %v", err)
	}

	_, err = engine.Submit(context.Background(), Values{}, map[string][]FileHandle{
		"docs": {{Name: "big.pdf", Size: 2048}},
	})
	if _, ok := err.(ValidationError); !ok {
		t.Fatalf("expected ValidationError for oversized file, got %v", err)
	}
	if calls != 0 {
		t.Error("submit handler ran despite file limit violations")
	}
}

func TestSubmitDynamicGroupRows(t *testing.T) {
	calls := 0
	cfg := FormConfig{
		Fields: []FieldConfig{
			{
				Name: "variants", Kind: KindDynamicGroup,
				Nested: []FieldConfig{
					{Name: "size", Kind: KindInput, Rule: "required"},
					{Name: "price", Kind: KindInput, Rule: "required,gt=0"},
				},
			},
		},
		Submit: submitRecorder(&calls),
	}
	engine, err := NewEngine(cfg, ModeCreate)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.Submit(context.Background(), Values{
		"variants": []interface{}{
			map[string]interface{}{"size": "M", "price": 29.9},
			map[string]interface{}{"size": "", "price": 0.0},
		},
	}, nil)

	verrs, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, found := verrs["variants[1].size"]; !found {
		t.Error("missing row-indexed error for variants[1].size")
	}
	if _, found := verrs["variants[1].price"]; !found {
		t.Error("missing row-indexed error for variants[1].price")
	}
	if _, found := verrs["variants[0].size"]; found {
		t.Error("valid row produced an error")
	}
	if calls != 0 {
		t.Error("submit handler ran despite row validation failures")
	}
}

func TestSubmitHandlerFailure(t *testing.T) {
	cfg := FormConfig{
		Fields: []FieldConfig{{Name: "name", Kind: KindInput}},
		Submit: func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error) {
			return nil, errors.New("duplicate name")
		},
	}
	engine, _ := NewEngine(cfg, ModeCreate)

	_, err := engine.Submit(context.Background(), Values{"name": "x"}, nil)
	var serr *SubmitError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SubmitError, got %v", err)
	}
	if serr.Message != "duplicate name" {
		t.Errorf("handler message not passed through verbatim: %q", serr.Message)
	}
}

func TestSubmitRejectedResultIsNotAnError(t *testing.T) {
	cfg := FormConfig{
		Fields: []FieldConfig{{Name: "name", Kind: KindInput}},
		Submit: func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error) {
			return &SubmitResult{Success: false, Message: "name already taken"}, nil
		},
	}
	engine, _ := NewEngine(cfg, ModeCreate)

	res, err := engine.Submit(context.Background(), Values{"name": "x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success || res.Message != "name already taken" {
		t.Errorf("rejected result mangled: %+v", res)
	}
}

func TestNewEngineConfigInvariants(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldConfig
	}{
		{
			name: "duplicate names",
			fields: []FieldConfig{
				{Name: "a", Kind: KindInput},
				{Name: "a", Kind: KindInput},
			},
		},
		{
			name:   "select without options",
			fields: []FieldConfig{{Name: "status", Kind: KindSelect}},
		},
		{
			name:   "dynamicGroup without nested",
			fields: []FieldConfig{{Name: "rows", Kind: KindDynamicGroup}},
		},
		{
			name: "nested on plain field",
			fields: []FieldConfig{
				{Name: "a", Kind: KindInput, Nested: []FieldConfig{{Name: "b", Kind: KindInput}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(FormConfig{
				Fields: tt.fields,
				Submit: func(ctx context.Context, v Values, u bool) (*SubmitResult, error) { return nil, nil },
			}, ModeCreate)
			if err == nil {
				t.Error("expected config validation error")
			}
		})
	}
}

func TestSeedValues(t *testing.T) {
	cfg := FormConfig{
		Fields:   []FieldConfig{{Name: "name", Kind: KindInput}},
		Defaults: Values{"name": "Existing"},
		Submit:   func(ctx context.Context, v Values, u bool) (*SubmitResult, error) { return nil, nil },
	}

	createEngine, _ := NewEngine(cfg, ModeCreate)
	if len(createEngine.SeedValues()) != 0 {
		t.Error("create mode must start empty")
	}

	updateEngine, _ := NewEngine(cfg, ModeUpdate)
	seeded := updateEngine.SeedValues()
	if seeded["name"] != "Existing" {
		t.Error("update mode must seed from defaults")
	}
	seeded["name"] = "changed"
	if cfg.Defaults["name"] != "Existing" {
		t.Error("seeding must not alias the config defaults")
	}
}
