package provider

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Provider is a business entity record managed by the service.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	documentPattern = regexp.MustCompile(`^[0-9./-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Normalize trims free-form fields and lower-cases the contact email.
func (p *Provider) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Document = strings.TrimSpace(p.Document)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
}

// Validate applies the declarative field rules and returns a field-keyed
// *ValidationError when any rule is violated.
func (p *Provider) Validate() error {
	verr := &ValidationError{}

	switch n := utf8.RuneCountInString(p.Name); {
	case p.Name == "":
		verr.add("name", "name is required")
	case n < 2:
		verr.add("name", "name must be at least 2 characters")
	case n > 100:
		verr.add("name", "name must be at most 100 characters")
	}

	switch {
	case p.Document == "":
		verr.add("document", "document is required")
	case len(p.Document) < 5 || len(p.Document) > 32:
		verr.add("document", "document must be between 5 and 32 characters")
	case !documentPattern.MatchString(p.Document):
		verr.add("document", "document may contain only digits, dots, dashes and slashes")
	}

	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		verr.add("email", "email is not a valid address")
	}
	if len(p.Phone) > 20 {
		verr.add("phone", "phone must be at most 20 characters")
	}

	if verr.empty() {
		return nil
	}
	return verr
}
