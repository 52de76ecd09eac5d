// Package queue defines the audit event payloads exchanged over the
// message broker and the background consumer that records them.
package queue

// UserRegisteredEvent is published when a new company and its first admin
// user are created. Downstream consumers use it for onboarding email,
// analytics and the audit trail without querying the primary database.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	CompanyID    uint64 `json:"company_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}

// SessionRevokedEvent is published when a refresh credential is explicitly
// revoked ahead of its expiry.
type SessionRevokedEvent struct {
	UserID    uint64 `json:"user_id"`
	RevokedAt string `json:"revoked_at"`
}
