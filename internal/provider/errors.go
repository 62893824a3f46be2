package provider

import "errors"

var (
	// ErrNotFound indicates the requested provider does not exist.
	ErrNotFound = errors.New("provider: not found")
	// ErrNotSaved indicates a commit affected no rows.
	ErrNotSaved = errors.New("provider: record was not saved")
)

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "provider: validation failed"
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}
