package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/factora/auth-service/internal/model"
)

// UserStore is the persistence capability the authentication flow needs for
// users and their refresh credentials. Implementations report missing rows
// as ErrNotFound and duplicate emails as ErrEmailExists. Writes to a user's
// credential columns must be atomic at the single-row level.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByRefreshHash(ctx context.Context, hash string) (*model.User, error)

	// SetRefreshCredential unconditionally overwrites the stored hash and
	// expiry, implicitly revoking any prior session.
	SetRefreshCredential(ctx context.Context, userID uint64, hash string, exp time.Time) error

	// RotateRefreshCredential swaps oldHash for newHash only if oldHash is
	// still the stored value. Returns false when another writer got there
	// first or the credential was cleared in the meantime.
	RotateRefreshCredential(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) (bool, error)

	// ClearRefreshCredential removes the stored credential matching the
	// hash. Returns false when no user holds that credential.
	ClearRefreshCredential(ctx context.Context, hash string) (bool, error)
}

// CompanyStore creates a company together with its first user as a single
// atomic unit. A duplicate email fails with ErrEmailExists and must leave
// no company row behind.
type CompanyStore interface {
	CreateWithAdmin(ctx context.Context, company *model.Company, user *model.User) error
}

// TokenPair is the response shape shared by login, registration and
// refresh: a signed access token, a fresh opaque refresh credential, their
// expiries and the claim set embedded in the access token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Claims           *Claims
}

// Config carries the token issuance parameters. The signing key is held
// only by this service; both TTLs are server-chosen.
type Config struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
}

// Service orchestrates login, registration, refresh and revocation over the
// credential store. Each user's credential moves through a small state
// machine: no session → active session → (rotate) active session with a new
// value → (revoke or expiry) no session.
type Service struct {
	users     UserStore
	companies CompanyStore
	cfg       Config
}

// NewService wires the authentication flow to its stores.
func NewService(users UserStore, companies CompanyStore, cfg Config) *Service {
	return &Service{users: users, companies: companies, cfg: cfg}
}

// dummyPasswordHash is a well-formed Argon2id PHC string verified against
// when the email is unknown, so the unknown-email and wrong-password paths
// cost the same.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=3,p=1$" +
	"AAAAAAAAAAAAAAAAAAAAAA$" +
	"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Login verifies an email/password pair and starts a new session. Unknown
// email, wrong password and disabled account all fail with
// ErrInvalidCredentials; the caller cannot tell which case occurred. On
// success any previously stored refresh credential is overwritten.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = normalizeEmail(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_, _ = VerifyPassword(password, dummyPasswordHash)
			return nil, ErrInvalidCredentials
		}
		return nil, internalf("loading user: %w", err)
	}

	ok, err := VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok || !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, u)
}

// Register creates a company and its first admin user as one atomic unit,
// then behaves like a successful login for the new user. A taken email
// fails with ErrEmailExists and leaves neither row behind.
func (s *Service) Register(ctx context.Context, companyName, firstName, lastName, email, password string) (*TokenPair, error) {
	email = normalizeEmail(email)
	hash, err := HashPassword(password)
	if err != nil {
		return nil, internalf("hashing password: %w", err)
	}

	company := &model.Company{Name: strings.TrimSpace(companyName)}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         string(RoleAdmin),
		IsActive:     true,
	}

	if err := s.companies.CreateWithAdmin(ctx, company, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, internalf("creating company and user: %w", err)
	}

	return s.startSession(ctx, user)
}

// Refresh exchanges a refresh credential for a brand-new token pair,
// rotating the stored value so the presented credential becomes permanently
// unusable. Unknown, expired and already-rotated credentials fail with
// ErrInvalidRefreshToken; the caller must log in again. A disabled account
// fails with ErrAccountDisabled — possession of a live credential already
// proves the account exists, so no enumeration surface is opened.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidRefreshToken
	}
	oldHash := HashRefreshCredential(raw)

	u, err := s.users.GetByRefreshHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, internalf("loading user by credential: %w", err)
	}
	if u.RefreshExpiresAt == nil || time.Now().UTC().After(*u.RefreshExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	access, err := NewAccessToken(s.cfg.JWTSecret, u, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, internalf("issuing access token: %w", err)
	}
	refresh, err := NewRefreshCredential(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, internalf("issuing refresh credential: %w", err)
	}

	// Compare-and-swap on the stored hash: if a concurrent rotation or a
	// revoke landed first, this caller's credential is already dead and it
	// must re-authenticate.
	swapped, err := s.users.RotateRefreshCredential(ctx, u.ID, oldHash, HashRefreshCredential(refresh.Raw), refresh.Exp)
	if err != nil {
		return nil, internalf("rotating refresh credential: %w", err)
	}
	if !swapped {
		return nil, ErrInvalidRefreshToken
	}

	return &TokenPair{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
		Claims:           access.Claims,
	}, nil
}

// RevokeResult reports whether a credential was found and, when it was,
// which user owned it.
type RevokeResult struct {
	Found  bool
	UserID uint64
}

// Revoke invalidates a refresh credential before its natural expiry.
// Revocation is idempotent: an unknown credential reports found=false, not
// an error.
func (s *Service) Revoke(ctx context.Context, raw string) (RevokeResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RevokeResult{}, nil
	}
	hash := HashRefreshCredential(raw)

	u, err := s.users.GetByRefreshHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RevokeResult{}, nil
		}
		return RevokeResult{}, internalf("loading user by credential: %w", err)
	}

	found, err := s.users.ClearRefreshCredential(ctx, hash)
	if err != nil {
		return RevokeResult{}, internalf("clearing refresh credential: %w", err)
	}
	return RevokeResult{Found: found, UserID: u.ID}, nil
}

// startSession mints a fresh token pair for the user and persists the new
// refresh credential, overwriting whatever was stored before.
func (s *Service) startSession(ctx context.Context, u *model.User) (*TokenPair, error) {
	access, err := NewAccessToken(s.cfg.JWTSecret, u, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, internalf("issuing access token: %w", err)
	}
	refresh, err := NewRefreshCredential(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, internalf("issuing refresh credential: %w", err)
	}
	if err := s.users.SetRefreshCredential(ctx, u.ID, HashRefreshCredential(refresh.Raw), refresh.Exp); err != nil {
		return nil, internalf("saving refresh credential: %w", err)
	}
	return &TokenPair{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
		Claims:           access.Claims,
	}, nil
}

// normalizeEmail lower-cases and trims an email address; the users table
// stores the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
