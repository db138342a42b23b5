package forms

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError maps field names (dynamic group rows use "group[i].field")
// to messages. It blocks submission entirely; the submit handler is never
// invoked while it is non-empty.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UploadError aborts the whole submission before the main payload is sent.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for field '%s': %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// SubmitError wraps a handler failure; the message is surfaced verbatim.
type SubmitError struct {
	Message string
}

func (e *SubmitError) Error() string { return e.Message }
