package identity

import "time"

// Claim names consulted by the authorization layer.
const (
	ClaimDeleteProvider = "DeleteProvider"
)

// User represents a registered account. Email doubles as the username and is
// stored lower-cased. EmailConfirmed is forced true at registration; there is
// no confirmation flow.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	EmailConfirmed bool
	FailedLogins   int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LockedAt reports whether the account is locked out at the given instant.
func (u *User) LockedAt(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
