package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set embedded in every access token. It extends the
// registered JWT claims with the identity, tenant and permission facts the
// authorization guard evaluates. A Claims value is derived fresh on each
// issuance and never persisted as a whole.
type Claims struct {
	jwt.RegisteredClaims
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	CompanyID   uint64   `json:"company_id"`
	Permissions []string `json:"permissions"`
}

// UserID parses the subject claim into a numeric user id. Returns false
// when the subject is absent or malformed.
func (c *Claims) UserID() (uint64, bool) {
	if c.Subject == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HasPermission returns true iff the permission is present in the claim
// set's permission list.
func (c *Claims) HasPermission(p Permission) bool {
	for _, have := range c.Permissions {
		if have == string(p) {
			return true
		}
	}
	return false
}

// ParseAccessToken validates signature and expiry of a serialized access
// token and returns its claim set. Only HS256 is accepted; tokens signed
// with any other method are rejected. Failures are reported as
// ErrUnauthorized so transport code can map them uniformly.
func ParseAccessToken(raw, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
