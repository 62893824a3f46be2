package identity

import "errors"

var (
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("identity: not found")
	// ErrEmailTaken indicates registration with an already-used email.
	ErrEmailTaken = errors.New("identity: email is already taken")
	// ErrInvalidCredentials is the generic login failure. It deliberately does
	// not reveal which factor failed.
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	// ErrLockedOut indicates the account is temporarily locked after repeated
	// failed logins.
	ErrLockedOut = errors.New("identity: account is locked out")
	// ErrInvalidToken indicates the bearer token failed validation.
	ErrInvalidToken = errors.New("identity: invalid token")
)

// ValidationError carries per-field validation messages for registration and
// login payloads.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "identity: validation failed"
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
