package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/factora/auth-service/internal/auth"
	"github.com/factora/auth-service/internal/model"
)

const testSecret = "middleware-test-secret"

func signedToken(t *testing.T, role auth.Role) string {
	t.Helper()
	access, err := auth.NewAccessToken(testSecret, &model.User{
		ID:        7,
		Email:     "a@b.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      string(role),
		CompanyID: 3,
		IsActive:  true,
	}, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return access.Token
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(handler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestAuthenticate_ValidToken(t *testing.T) {
	token := signedToken(t, auth.RoleAdmin)

	rec := run(t, Authenticate(testSecret), "Bearer "+token, func(c echo.Context) error {
		g := GuardFrom(c)
		uid, err := g.UserID()
		if err != nil || uid != 7 {
			t.Errorf("UserID = %d, %v", uid, err)
		}
		tid, err := g.TenantID()
		if err != nil || tid != 3 {
			t.Errorf("TenantID = %d, %v", tid, err)
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthenticate_MissingAndBadTokens(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + func() string {
			access, _ := auth.NewAccessToken("other-secret", &model.User{ID: 1, Role: string(auth.RoleUser), CompanyID: 1}, 15)
			return access.Token
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := run(t, Authenticate(testSecret), tc.header, okHandler)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestGuardFrom_NoIdentityFailsClosed(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	g := GuardFrom(c)
	if _, err := g.UserID(); err == nil {
		t.Error("guard without identity returned a user id")
	}
	if g.ValidateTenantAccess(1) {
		t.Error("guard without identity granted tenant access")
	}
}

func TestRequirePermission(t *testing.T) {
	authed := Authenticate(testSecret)

	// Admin tokens carry users.manage; user tokens do not.
	adminToken := signedToken(t, auth.RoleAdmin)
	userToken := signedToken(t, auth.RoleUser)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return authed(RequirePermission(auth.PermUsersManage)(next))
	}

	rec := run(t, chain, "Bearer "+adminToken, okHandler)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", rec.Code)
	}

	rec = run(t, chain, "Bearer "+userToken, okHandler)
	if rec.Code != http.StatusForbidden {
		t.Errorf("user: status = %d, want 403", rec.Code)
	}
}
