package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"providerhub.org/internal/ids"
)

// Lockout policy: five consecutive failures lock the account for five
// minutes; a successful login resets the counter.
const (
	maxFailedLogins = 5
	lockoutPeriod   = 5 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Token is an issued bearer credential and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service manages account lifecycle and credential checks, and issues bearer
// tokens embedding the account's claims and roles.
type Service struct {
	store  Store
	tokens *TokenIssuer
	now    func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

func NewService(store Store, tokens *TokenIssuer, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("identity store is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	svc := &Service{store: store, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Register creates an account with email confirmed pre-set and immediately
// issues a bearer token as if the user had logged in.
func (s *Service) Register(ctx context.Context, email, password string) (Token, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateRegistration(email, password); err != nil {
		return Token{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Token{}, err
	}
	now := s.now().UTC()
	user := &User{
		ID:             ids.New(),
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return Token{}, err
	}
	return s.issueFor(ctx, user)
}

// Login checks credentials and issues a token. Outcomes: ErrLockedOut
// (checked before the password), ErrInvalidCredentials (generic), or a token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Token{}, ErrInvalidCredentials
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}
	now := s.now().UTC()
	if user.LockedAt(now) {
		return Token{}, ErrLockedOut
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		if err := s.recordFailure(ctx, user, now); err != nil {
			return Token{}, err
		}
		return Token{}, ErrInvalidCredentials
	}
	if user.FailedLogins > 0 || user.LockedUntil != nil {
		if err := s.store.SetLoginState(ctx, user.ID, 0, nil); err != nil {
			return Token{}, err
		}
	}
	return s.issueFor(ctx, user)
}

// Authenticate verifies a bearer token and returns its embedded claims.
func (s *Service) Authenticate(token string) (*TokenClaims, error) {
	return s.tokens.Verify(token)
}

// GrantClaim attaches a named grant to the account.
func (s *Service) GrantClaim(ctx context.Context, userID, claim string) error {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return errors.New("claim name is required")
	}
	return s.store.GrantClaim(ctx, userID, claim)
}

// GrantRole attaches a role to the account.
func (s *Service) GrantRole(ctx context.Context, userID, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return errors.New("role name is required")
	}
	return s.store.GrantRole(ctx, userID, role)
}

// EnsureAdminClaim grants the DeleteProvider claim to the account with the
// given email if it exists. Used by the bootstrap path at startup.
func (s *Service) EnsureAdminClaim(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil
	}
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.store.GrantClaim(ctx, user.ID, ClaimDeleteProvider)
}

func (s *Service) recordFailure(ctx context.Context, user *User, now time.Time) error {
	failed := user.FailedLogins + 1
	var lockedUntil *time.Time
	if failed >= maxFailedLogins {
		deadline := now.Add(lockoutPeriod)
		lockedUntil = &deadline
		failed = 0
	}
	return s.store.SetLoginState(ctx, user.ID, failed, lockedUntil)
}

func (s *Service) issueFor(ctx context.Context, user *User) (Token, error) {
	claims, err := s.store.Claims(ctx, user.ID)
	if err != nil {
		return Token{}, err
	}
	roles, err := s.store.Roles(ctx, user.ID)
	if err != nil {
		return Token{}, err
	}
	value, expiresAt, err := s.tokens.Issue(user.ID, user.Email, claims, roles)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: expiresAt}, nil
}

func validateRegistration(email, password string) error {
	verr := &ValidationError{}
	if email == "" {
		verr.add("email", "email is required")
	} else if !emailPattern.MatchString(email) {
		verr.add("email", "email is not a valid address")
	}
	switch {
	case password == "":
		verr.add("password", "password is required")
	case len(password) < 8:
		verr.add("password", "password must be at least 8 characters")
	default:
		var hasUpper, hasLower, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasUpper || !hasLower || !hasDigit {
			verr.add("password", "password must contain upper and lower case letters and a digit")
		}
	}
	if verr.empty() {
		return nil
	}
	return verr
}
