package auth

// Guard is the per-request authorization façade every business endpoint
// consults before reading or writing tenant data. It is built once per
// request at the transport boundary from an already-verified claim set and
// passed down explicitly; it performs no I/O and never reads ambient
// request state.
//
// Call-site contract for tenant-scoped lookups: confirm the target entity
// exists first, then call ValidateTenantAccess. Entity absence is revealed
// before a tenant mismatch, so absent targets return not-found and present
// but foreign targets return forbidden.
type Guard struct {
	claims *Claims
}

// NewGuard wraps a verified claim set. A nil claim set yields a guard that
// fails every identity accessor with ErrUnauthorized.
func NewGuard(claims *Claims) *Guard {
	return &Guard{claims: claims}
}

// UserID returns the authenticated user's id, or ErrUnauthorized when the
// subject claim is absent or malformed.
func (g *Guard) UserID() (uint64, error) {
	if g.claims == nil {
		return 0, ErrUnauthorized
	}
	id, ok := g.claims.UserID()
	if !ok {
		return 0, ErrUnauthorized
	}
	return id, nil
}

// TenantID returns the caller's company id, or ErrUnauthorized when the
// claim is absent.
func (g *Guard) TenantID() (uint64, error) {
	if g.claims == nil || g.claims.CompanyID == 0 {
		return 0, ErrUnauthorized
	}
	return g.claims.CompanyID, nil
}

// Role returns the caller's role, or ErrUnauthorized when the claim is
// absent or names an unknown role.
func (g *Guard) Role() (Role, error) {
	if g.claims == nil || !IsValidRole(g.claims.Role) {
		return "", ErrUnauthorized
	}
	return g.claims.Role, nil
}

// Email returns the caller's email, or ErrUnauthorized when the claim is
// absent.
func (g *Guard) Email() (string, error) {
	if g.claims == nil || g.claims.Email == "" {
		return "", ErrUnauthorized
	}
	return g.claims.Email, nil
}

// HasPermission reports whether the permission is present in the claim
// set's permission list. It checks the list carried in the token, not the
// live role table, so a token keeps the permissions it was minted with
// until it expires.
func (g *Guard) HasPermission(p Permission) bool {
	return g.claims != nil && g.claims.HasPermission(p)
}

// RequirePermission returns ErrForbidden when the caller lacks the
// permission; otherwise it is a no-op.
func (g *Guard) RequirePermission(p Permission) error {
	if !g.HasPermission(p) {
		return ErrForbidden
	}
	return nil
}

// ValidateTenantAccess reports whether the caller may touch data owned by
// the target company. DEV is exempt from tenant scoping; every other role
// is confined to its own company id. A guard with no verified identity
// grants nothing.
func (g *Guard) ValidateTenantAccess(targetTenantID uint64) bool {
	role, err := g.Role()
	if err != nil {
		return false
	}
	if role == RoleDev {
		return true
	}
	own, err := g.TenantID()
	if err != nil {
		return false
	}
	return targetTenantID == own
}
