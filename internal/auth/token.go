package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/factora/auth-service/internal/model"
)

// AccessToken bundles a signed JWT with its expiry and the claim set it
// embeds. The Token field is the serialized form clients present in the
// Authorization header.
type AccessToken struct {
	Token  string
	Exp    time.Time
	Claims *Claims
}

// RefreshCredential is a long-lived opaque value used only to obtain a new
// token pair. The Raw field is returned to the client exactly once; the
// database stores only its SHA-256 hash. It carries no embedded claims —
// expiry is tracked server-side next to the stored hash.
type RefreshCredential struct {
	Raw string
	Exp time.Time
}

// refreshCredentialBytes is the entropy of a refresh credential. 32 bytes
// encode to 43 base64url characters.
const refreshCredentialBytes = 32

// NewAccessToken builds and signs an HS256 JWT for a user. The claim set
// embeds the subject id, email, display name, role, company id and the
// permission list resolved from the role table. The TTL is a fixed
// server-chosen duration in minutes; clients never choose or extend it.
func NewAccessToken(secret string, u *model.User, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)

	role := Role(u.Role)
	perms := PermissionsFor(role)
	permStrings := make([]string, len(perms))
	for i, p := range perms {
		permStrings[i] = string(p)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Email:       u.Email,
		Name:        u.DisplayName(),
		Role:        role,
		CompanyID:   u.CompanyID,
		Permissions: permStrings,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, fmt.Errorf("signing access token: %w", err)
	}
	return AccessToken{Token: signed, Exp: exp, Claims: claims}, nil
}

// NewRefreshCredential returns a cryptographically random opaque credential
// and its expiry. The value carries 256 bits of entropy, so two calls never
// produce the same value in practice. ttlDays controls how long the server
// will accept the credential.
func NewRefreshCredential(ttlDays int) (RefreshCredential, error) {
	b := make([]byte, refreshCredentialBytes)
	if _, err := rand.Read(b); err != nil {
		return RefreshCredential{}, fmt.Errorf("generating refresh credential: %w", err)
	}
	return RefreshCredential{
		Raw: base64.RawURLEncoding.EncodeToString(b),
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

// HashRefreshCredential returns the SHA-256 hash of the raw credential as a
// hex string. Storing only the hash means a stolen database row cannot be
// replayed to refresh a session.
func HashRefreshCredential(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
