package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/factora/auth-service/internal/auth"
	"github.com/factora/auth-service/internal/middleware"
	"github.com/factora/auth-service/internal/queue"
	queue_publisher "github.com/factora/auth-service/internal/service"
)

// AuthHandler exposes the authentication flow over HTTP. It owns the only
// place where auth error kinds are mapped to transport status codes;
// everything below it deals in kinds, not statuses.
type AuthHandler struct {
	Svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// ----- DTOs -----

type registerReq struct {
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type claimsPart struct {
	UserID      uint64   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	CompanyID   uint64   `json:"company_id"`
	Permissions []string `json:"permissions"`
}
type authResp struct {
	Access  tokenPart  `json:"access"`
	Refresh tokenPart  `json:"refresh"`
	Claims  claimsPart `json:"claims"`
}

func toAuthResp(pair *auth.TokenPair) authResp {
	uid, _ := pair.Claims.UserID()
	return authResp{
		Access:  tokenPart{Token: pair.AccessToken, Expires: pair.AccessExpiresAt},
		Refresh: tokenPart{Token: pair.RefreshToken, Expires: pair.RefreshExpiresAt},
		Claims: claimsPart{
			UserID:      uid,
			Email:       pair.Claims.Email,
			Name:        pair.Claims.Name,
			Role:        string(pair.Claims.Role),
			CompanyID:   pair.Claims.CompanyID,
			Permissions: pair.Claims.Permissions,
		},
	}
}

// writeAuthError maps an auth error kind onto its HTTP status and emits the
// machine-readable code. Anything that is not an *auth.Error is an internal
// failure: logged server-side, reported as a generic 500 with no detail.
func writeAuthError(c echo.Context, err error) error {
	var ae *auth.Error
	if !errors.As(err, &ae) {
		log.Printf("auth: internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal error", "code": "internal",
		})
	}
	status := http.StatusInternalServerError
	switch ae.Kind {
	case auth.KindInvalidCredentials, auth.KindInvalidRefreshToken, auth.KindUnauthorized:
		status = http.StatusUnauthorized
	case auth.KindAccountDisabled, auth.KindForbidden:
		status = http.StatusForbidden
	case auth.KindEmailExists:
		status = http.StatusConflict
	case auth.KindNotFound:
		status = http.StatusNotFound
	}
	return c.JSON(status, echo.Map{"error": ae.Message, "code": ae.Code})
}

// Register creates a company and its first admin user, then returns a token
// pair as if the new user had just logged in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "invalid_body"})
	}
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_name/email/password required", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Svc.Register(ctx, req.CompanyName, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	uid, _ := pair.Claims.UserID()
	queue_publisher.PublishUserRegistered(c.Request().Context(), queue.UserRegisteredEvent{
		UserID:       uid,
		CompanyID:    pair.Claims.CompanyID,
		Email:        pair.Claims.Email,
		Role:         string(pair.Claims.Role),
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toAuthResp(pair))
}

// Login verifies credentials and returns a fresh token pair. Unknown email,
// wrong password and disabled account produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "invalid_body"})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(pair))
}

// Refresh rotates a refresh credential: the presented value becomes
// permanently unusable and a brand-new pair is returned.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(pair))
}

// Revoke invalidates a refresh credential ahead of its expiry. The call is
// idempotent: revoking an unknown or already-revoked credential reports
// found=false with a 200, never an error.
func (h *AuthHandler) Revoke(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required", "code": "invalid_body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Revoke(ctx, req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}

	if res.Found {
		queue_publisher.PublishSessionRevoked(c.Request().Context(), queue.SessionRevokedEvent{
			UserID:    res.UserID,
			RevokedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"found": res.Found})
}

// Me returns the caller's identity as seen by the guard. It doubles as the
// reference implementation for how business services consume the guard.
func (h *AuthHandler) Me(c echo.Context) error {
	g := middleware.GuardFrom(c)

	uid, err := g.UserID()
	if err != nil {
		return writeAuthError(c, err)
	}
	tenantID, err := g.TenantID()
	if err != nil {
		return writeAuthError(c, err)
	}
	role, err := g.Role()
	if err != nil {
		return writeAuthError(c, err)
	}
	email, err := g.Email()
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":    uid,
		"company_id": tenantID,
		"role":       role,
		"email":      email,
	})
}
