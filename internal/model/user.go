package model

import "time"

// User roles. Customers book; staff and admins manage the catalog and see
// aggregate views.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// User represents an application account as stored in the `users` table.
// Handlers define separate response types with JSON tags; this struct is
// used by the repository layer only.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	MobileNo     string    // users.mobile_no
	Role         string    // users.role (customer|staff|admin)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in the `refresh_tokens` table. Only the SHA-256
// hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
