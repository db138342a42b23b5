package forms

import (
	"context"
	"fmt"
	"io"

	"go-storefront/internal/common/models"
	"go-storefront/pkg/condition"
)

type FieldKind string

const (
	KindInput        FieldKind = "input"
	KindTextArea     FieldKind = "textarea"
	KindSelect       FieldKind = "select"
	KindMultiSelect  FieldKind = "multiselect"
	KindFile         FieldKind = "file"
	KindDynamicGroup FieldKind = "dynamicGroup"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Values is the working record a form reads and submits.
type Values map[string]interface{}

// FileHandle is a queued upload. The engine never reads the content itself;
// it hands the slice to the configured uploader.
type FileHandle struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// SubmitResult is the polymorphic handler outcome: either a success with an
// optional message or a failure naming the reason.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SubmitFunc is the injected create/update action.
type SubmitFunc func(ctx context.Context, values Values, isUpdate bool) (*SubmitResult, error)

// UploadFunc delegates queued files to storage and returns their URLs.
type UploadFunc func(ctx context.Context, files []FileHandle) ([]string, error)

// FieldConfig declares one form field. Name must be unique within a form.
// Options are required for select/multiselect; Nested only applies to
// dynamicGroup fields. ReadOnly is the inverse of the usual "editable" flag,
// so the zero value keeps a field editable.
type FieldConfig struct {
	Name        string                `json:"name"`
	Kind        FieldKind             `json:"kind"`
	Rule        string                `json:"rule,omitempty"` // validator tag string, e.g. "required,email"
	Label       string                `json:"label"`
	Placeholder string                `json:"placeholder,omitempty"`
	Options     []models.SelectOption `json:"options,omitempty"`
	InputType   string                `json:"input_type,omitempty"` // text, number, password, ...
	ColSpan     int                   `json:"col_span,omitempty"`
	ReadOnly    bool                  `json:"read_only,omitempty"`
	MaxFiles    int                   `json:"max_files,omitempty"`
	MaxFileSize int64                 `json:"max_file_size,omitempty"` // bytes
	Nested      []FieldConfig         `json:"nested,omitempty"`

	// VisibleWhen decides visibility from the current values. VisibleRule is
	// the declarative alternative for configs loaded from storage. When both
	// are nil the field is always visible.
	VisibleWhen func(Values) bool `json:"-"`
	VisibleRule *condition.Group  `json:"visible_rule,omitempty"`
}

// FormConfig is owned by the screen that declares it and is read-only to the
// engine; it may be shared across concurrent submissions.
type FormConfig struct {
	Title       string
	Fields      []FieldConfig
	Columns     int
	Submit      SubmitFunc
	UploadFiles UploadFunc
	Defaults    Values
	RedirectTo  string
}

// validateConfig enforces the structural invariants of a field list.
func validateConfig(fields []FieldConfig) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field with empty name")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name: %s", f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindSelect, KindMultiSelect:
			if len(f.Options) == 0 {
				return fmt.Errorf("field '%s': options are required for %s fields", f.Name, f.Kind)
			}
		case KindDynamicGroup:
			if len(f.Nested) == 0 {
				return fmt.Errorf("field '%s': dynamicGroup requires nested fields", f.Name)
			}
			if err := validateConfig(f.Nested); err != nil {
				return fmt.Errorf("field '%s': %w", f.Name, err)
			}
		default:
			if len(f.Nested) > 0 {
				return fmt.Errorf("field '%s': nested fields are only valid on dynamicGroup", f.Name)
			}
		}
	}
	return nil
}

func (f *FieldConfig) visible(values Values) bool {
	if f.VisibleWhen != nil && !f.VisibleWhen(values) {
		return false
	}
	if f.VisibleRule != nil {
		ok, err := condition.Evaluate(f.VisibleRule, values)
		if err != nil || !ok {
			return false
		}
	}
	return true
}
