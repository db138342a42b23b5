package forms

import (
	"strings"

	"go-storefront/internal/common/models"
)

// FieldView is the serializable rendering of one field, consumed by whichever
// client draws the form.
type FieldView struct {
	Name        string                `json:"name"`
	Kind        FieldKind             `json:"kind"`
	Label       string                `json:"label"`
	Placeholder string                `json:"placeholder,omitempty"`
	InputType   string                `json:"input_type,omitempty"`
	Required    bool                  `json:"required"`
	ReadOnly    bool                  `json:"read_only,omitempty"`
	ColSpan     int                   `json:"col_span"`
	Options     []models.SelectOption `json:"options,omitempty"`
	MaxFiles    int                   `json:"max_files,omitempty"`
	MaxFileSize int64                 `json:"max_file_size,omitempty"`
	Nested      []FieldView           `json:"nested,omitempty"`
	Value       interface{}           `json:"value,omitempty"`
}

type FormView struct {
	Title    string      `json:"title"`
	Mode     Mode        `json:"mode"`
	Columns  int         `json:"columns"`
	Fields   []FieldView `json:"fields"`
	Redirect string      `json:"redirect,omitempty"`
}

// Renderer turns a field declaration plus the current values into a view.
type Renderer func(field FieldConfig, values Values) FieldView

// Registry maps field kinds to rendering strategies. Unknown kinds fall back
// to the input renderer.
type Registry struct {
	renderers map[FieldKind]Renderer
}

func NewRegistry() *Registry {
	r := &Registry{renderers: make(map[FieldKind]Renderer)}
	r.Register(KindInput, renderInput)
	r.Register(KindTextArea, renderBasic)
	r.Register(KindSelect, renderChoice)
	r.Register(KindMultiSelect, renderChoice)
	r.Register(KindFile, renderFile)
	r.Register(KindDynamicGroup, renderGroup)
	return r
}

func (r *Registry) Register(kind FieldKind, renderer Renderer) {
	r.renderers[kind] = renderer
}

func (r *Registry) Render(field FieldConfig, values Values) FieldView {
	renderer, ok := r.renderers[field.Kind]
	if !ok {
		renderer = renderInput
	}
	return renderer(field, values)
}

// View assembles the form view for the engine's config, excluding fields the
// current values hide. The config is never mutated.
func (e *Engine) View(reg *Registry, values Values) FormView {
	if values == nil {
		values = e.SeedValues()
	}
	columns := e.cfg.Columns
	if columns <= 0 {
		columns = 1
	}

	view := FormView{
		Title:    e.cfg.Title,
		Mode:     e.mode,
		Columns:  columns,
		Redirect: e.cfg.RedirectTo,
	}
	for _, field := range e.cfg.Fields {
		if !field.visible(values) {
			continue
		}
		view.Fields = append(view.Fields, reg.Render(field, values))
	}
	return view
}

func baseView(field FieldConfig, values Values) FieldView {
	colSpan := field.ColSpan
	if colSpan <= 0 {
		colSpan = 1
	}
	return FieldView{
		Name:        field.Name,
		Kind:        field.Kind,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Required:    hasRequired(field.Rule),
		ReadOnly:    field.ReadOnly,
		ColSpan:     colSpan,
		Value:       values[field.Name],
	}
}

func renderBasic(field FieldConfig, values Values) FieldView {
	return baseView(field, values)
}

func renderInput(field FieldConfig, values Values) FieldView {
	v := baseView(field, values)
	v.Kind = KindInput
	v.InputType = field.InputType
	if v.InputType == "" {
		v.InputType = "text"
	}
	return v
}

func renderChoice(field FieldConfig, values Values) FieldView {
	v := baseView(field, values)
	v.Options = field.Options
	return v
}

func renderFile(field FieldConfig, values Values) FieldView {
	v := baseView(field, values)
	v.MaxFiles = field.MaxFiles
	v.MaxFileSize = field.MaxFileSize
	// Queued handles live client-side; only previously stored URLs carry over.
	return v
}

func renderGroup(field FieldConfig, values Values) FieldView {
	v := baseView(field, values)
	for _, nested := range field.Nested {
		v.Nested = append(v.Nested, FieldView{
			Name:        nested.Name,
			Kind:        nested.Kind,
			Label:       nested.Label,
			Placeholder: nested.Placeholder,
			InputType:   nested.InputType,
			Required:    hasRequired(nested.Rule),
			Options:     nested.Options,
			ColSpan:     1,
		})
	}
	return v
}

func hasRequired(rule string) bool {
	for _, tag := range strings.Split(rule, ",") {
		if strings.TrimSpace(tag) == "required" {
			return true
		}
	}
	return false
}
