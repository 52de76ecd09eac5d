package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/factora/auth-service/internal/auth"
	"github.com/factora/auth-service/internal/model"
)

// UserRepo mirrors the 'users' table. The refresh credential lives in two
// nullable columns on the user row itself, which gives the single-active-
// session model for free: one row, one credential, and every credential
// write is a single atomic UPDATE.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,role,company_id,is_active,refresh_credential_hash,refresh_expires_at,created_at,updated_at"

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.queryOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.queryOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// GetByRefreshHash fetches the user whose stored refresh credential matches
// the given hash. Expiry is checked by the caller, not here, so the service
// can distinguish expired from unknown if it ever needs to.
func (r *UserRepo) GetByRefreshHash(ctx context.Context, hash string) (*model.User, error) {
	return r.queryOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE refresh_credential_hash=? LIMIT 1", hash)
}

// SetRefreshCredential overwrites the stored credential hash and expiry for
// the user, implicitly revoking any prior session.
func (r *UserRepo) SetRefreshCredential(ctx context.Context, userID uint64, hash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_credential_hash=?, refresh_expires_at=?, updated_at=NOW() WHERE id=?",
		hash, exp, userID)
	return err
}

// RotateRefreshCredential swaps oldHash for newHash only while oldHash is
// still the stored value. The WHERE clause is the compare-and-swap: when a
// concurrent rotation or revoke got there first, zero rows are affected and
// false is returned.
func (r *UserRepo) RotateRefreshCredential(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_credential_hash=?, refresh_expires_at=?, updated_at=NOW() WHERE id=? AND refresh_credential_hash=?",
		newHash, exp, userID, oldHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClearRefreshCredential nulls the credential columns of whichever user
// holds the hash. Returns false when no user does, so revocation stays
// idempotent.
func (r *UserRepo) ClearRefreshCredential(ctx context.Context, hash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_credential_hash=NULL, refresh_expires_at=NULL, updated_at=NOW() WHERE refresh_credential_hash=?",
		hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// queryOne runs a single-row user query and maps sql.ErrNoRows onto the
// auth core's not-found kind.
func (r *UserRepo) queryOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var (
		u           model.User
		refreshHash sql.NullString
		refreshExp  sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.CompanyID, &u.IsActive, &refreshHash, &refreshExp,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	if refreshHash.Valid {
		u.RefreshCredentialHash = &refreshHash.String
	}
	if refreshExp.Valid {
		t := refreshExp.Time
		u.RefreshExpiresAt = &t
	}
	return &u, nil
}
