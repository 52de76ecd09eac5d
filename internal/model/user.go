package model

import "time"

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. Every user
// belongs to exactly one company; the company id is assigned at creation
// and never changes afterwards.
//
// A user carries at most one active refresh credential at a time. Only the
// SHA-256 digest of the raw credential is stored; the expiry lives next to
// it so the server alone decides how long a session may be extended. Both
// columns are nullable: a NULL pair means the user has no active session.
//
// Fields:
//  ID                    – primary key identifier of the user.
//  Email                 – unique email address (stored lower-cased).
//  PasswordHash          – Argon2id hash in PHC string format.
//  FirstName             – given name, used for the display name claim.
//  LastName              – family name, used for the display name claim.
//  Role                  – role name (DEV, ADMIN or USER).
//  CompanyID             – owning company (tenant) id.
//  IsActive              – whether the account may authenticate.
//  RefreshCredentialHash – SHA-256 hex digest of the active refresh credential (nullable).
//  RefreshExpiresAt      – server-side expiry of the refresh credential (nullable).
//  CreatedAt             – timestamp of creation.
//  UpdatedAt             – timestamp of last update.
type User struct {
	ID                    uint64     // users.id
	Email                 string     // users.email
	PasswordHash          string     // users.password_hash
	FirstName             string     // users.first_name
	LastName              string     // users.last_name
	Role                  string     // users.role
	CompanyID             uint64     // users.company_id
	IsActive              bool       // users.is_active
	RefreshCredentialHash *string    // users.refresh_credential_hash (nullable)
	RefreshExpiresAt      *time.Time // users.refresh_expires_at (nullable)
	CreatedAt             time.Time  // users.created_at
	UpdatedAt             time.Time  // users.updated_at
}

// DisplayName joins the first and last name for the token's name claim.
func (u *User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Company represents a tenant row in the `companies` table. A company is
// created transactionally together with its first (admin) user during
// registration and is never deleted by this service.
//
// Fields:
//  ID        – primary key identifier of the company.
//  Name      – display name of the company.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Company struct {
	ID        uint64    // companies.id
	Name      string    // companies.name
	CreatedAt time.Time // companies.created_at
	UpdatedAt time.Time // companies.updated_at
}
