package domain

import "time"

// Role is the privilege tier stored on an account. Anonymous requests carry
// no role at all; they are represented by an unauthenticated Principal.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the assignable role tiers.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// User is a registered account.
type User struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      Role      `json:"role"`
	Superuser bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerUsername makes User usable as an owned object for self-scoped checks.
func (u *User) OwnerUsername() string { return u.Username }

// Principal is the identity behind a request: either an authenticated account
// or the anonymous caller (Authenticated == false, all other fields empty).
type Principal struct {
	Username      string
	Email         string
	Role          Role
	Superuser     bool
	Authenticated bool
}

// Anonymous is the principal attached to requests without credentials.
var Anonymous = Principal{}

// IsAdmin reports whether the principal passes admin-only gates. A superuser
// passes regardless of the role field; that flag exists for bootstrap
// accounts whose role may still read as a lesser tier.
func (p Principal) IsAdmin() bool {
	return p.Authenticated && (p.Role == RoleAdmin || p.Superuser)
}

// IsModerator reports whether the principal holds the moderator tier.
// Admin does not imply moderator.
func (p Principal) IsModerator() bool {
	return p.Authenticated && p.Role == RoleModerator
}

// IsSelf reports whether the principal is the account named by username.
func (p Principal) IsSelf(username string) bool {
	return p.Username == username
}
