package forms

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Engine drives one form configuration through validation, upload delegation
// and submit dispatch. It holds no state between submissions; a single engine
// may serve concurrent requests for the same screen.
type Engine struct {
	cfg      FormConfig
	mode     Mode
	validate *validator.Validate
}

func NewEngine(cfg FormConfig, mode Mode) (*Engine, error) {
	if cfg.Submit == nil {
		return nil, fmt.Errorf("form '%s': submit handler is required", cfg.Title)
	}
	if err := validateConfig(cfg.Fields); err != nil {
		return nil, fmt.Errorf("form '%s': %w", cfg.Title, err)
	}
	return &Engine{
		cfg:      cfg,
		mode:     mode,
		validate: validator.New(),
	}, nil
}

func (e *Engine) Mode() Mode { return e.mode }

// SeedValues returns the initial working record: the configured defaults in
// update mode, an empty record otherwise. The defaults map is copied so the
// config stays immutable.
func (e *Engine) SeedValues() Values {
	seeded := Values{}
	if e.mode == ModeUpdate {
		for k, v := range e.cfg.Defaults {
			seeded[k] = v
		}
	}
	return seeded
}

// Submit validates every visible field, performs uploads, and dispatches the
// payload to the configured handler. Uploads complete strictly before the
// handler runs so returned URLs can be embedded in the payload.
//
// Error taxonomy: ValidationError (field-level, handler never called),
// *UploadError (upload rejected, handler never called), *SubmitError
// (handler returned an error). A handler result with Success=false is not an
// error; it is returned as-is for the caller to surface.
func (e *Engine) Submit(ctx context.Context, values Values, files map[string][]FileHandle) (*SubmitResult, error) {
	if values == nil {
		values = Values{}
	}

	payload := Values{}
	verrs := ValidationError{}

	for _, field := range e.cfg.Fields {
		if !field.visible(values) {
			// Hidden fields are excluded from validation and payload.
			continue
		}
		if field.ReadOnly {
			continue
		}

		switch field.Kind {
		case KindFile:
			e.checkFileLimits(field, files[field.Name], verrs)
		case KindDynamicGroup:
			rows := asRows(values[field.Name])
			if field.Rule != "" && len(rows) == 0 {
				if msg := e.checkRule(field.Rule, nil); msg != "" {
					verrs[field.Name] = msg
				}
			}
			validated := e.validateRows(field, rows, verrs)
			payload[field.Name] = validated
		default:
			val := values[field.Name]
			if msg := e.checkRule(field.Rule, val); msg != "" {
				verrs[field.Name] = msg
				continue
			}
			if _, ok := values[field.Name]; ok {
				payload[field.Name] = val
			}
		}
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	if err := e.uploadFiles(ctx, values, files, payload); err != nil {
		return nil, err
	}

	res, err := e.cfg.Submit(ctx, payload, e.mode == ModeUpdate)
	if err != nil {
		return nil, &SubmitError{Message: err.Error()}
	}
	if res == nil {
		res = &SubmitResult{Success: true}
	}
	return res, nil
}

// RedirectTo is where a successful submission should navigate, if anywhere.
func (e *Engine) RedirectTo() string { return e.cfg.RedirectTo }

func (e *Engine) checkRule(rule string, val interface{}) string {
	if rule == "" {
		return ""
	}
	if val == nil {
		// Absent values only ever fail "required"; other tags need a value
		// to inspect.
		if hasRequired(rule) {
			return "failed on 'required'"
		}
		return ""
	}
	if err := e.validate.Var(val, rule); err != nil {
		if ferrs, ok := err.(validator.ValidationErrors); ok && len(ferrs) > 0 {
			return fmt.Sprintf("failed on '%s'", ferrs[0].Tag())
		}
		return err.Error()
	}
	return ""
}

func (e *Engine) checkFileLimits(field FieldConfig, handles []FileHandle, verrs ValidationError) {
	if field.MaxFiles > 0 && len(handles) > field.MaxFiles {
		verrs[field.Name] = fmt.Sprintf("at most %d files allowed", field.MaxFiles)
		return
	}
	if field.MaxFileSize > 0 {
		for _, h := range handles {
			if h.Size > field.MaxFileSize {
				verrs[field.Name] = fmt.Sprintf("file '%s' exceeds %d bytes", h.Name, field.MaxFileSize)
				return
			}
		}
	}
}

// validateRows checks each dynamic group row against the nested declaration.
// Rows keep their submitted order; error keys are "group[i].field" so that
// removing one row on the client removes exactly that row's errors.
func (e *Engine) validateRows(field FieldConfig, rows []Values, verrs ValidationError) []Values {
	validated := make([]Values, 0, len(rows))
	for i, row := range rows {
		clean := Values{}
		for _, nested := range field.Nested {
			if !nested.visible(row) {
				continue
			}
			val := row[nested.Name]
			if msg := e.checkRule(nested.Rule, val); msg != "" {
				verrs[fmt.Sprintf("%s[%d].%s", field.Name, i, nested.Name)] = msg
				continue
			}
			if _, ok := row[nested.Name]; ok {
				clean[nested.Name] = val
			}
		}
		validated = append(validated, clean)
	}
	return validated
}

func (e *Engine) uploadFiles(ctx context.Context, values Values, files map[string][]FileHandle, payload Values) error {
	for _, field := range e.cfg.Fields {
		if field.Kind != KindFile || !field.visible(values) || field.ReadOnly {
			continue
		}
		handles := files[field.Name]
		if len(handles) == 0 {
			continue
		}
		if e.cfg.UploadFiles == nil {
			return &UploadError{Field: field.Name, Err: fmt.Errorf("no upload handler configured")}
		}
		urls, err := e.cfg.UploadFiles(ctx, handles)
		if err != nil {
			return &UploadError{Field: field.Name, Err: err}
		}
		payload[field.Name] = urls
	}
	return nil
}

func asRows(v interface{}) []Values {
	switch rows := v.(type) {
	case []Values:
		return rows
	case []map[string]interface{}:
		out := make([]Values, 0, len(rows))
		for _, r := range rows {
			out = append(out, Values(r))
		}
		return out
	case []interface{}:
		out := make([]Values, 0, len(rows))
		for _, r := range rows {
			if m, ok := r.(map[string]interface{}); ok {
				out = append(out, Values(m))
			}
		}
		return out
	default:
		return nil
	}
}
