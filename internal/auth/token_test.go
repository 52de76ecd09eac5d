package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/factora/auth-service/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        42,
		Email:     "a@b.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      string(RoleAdmin),
		CompanyID: 5,
		IsActive:  true,
	}
}

func TestNewAccessToken_RoundTrip(t *testing.T) {
	access, err := NewAccessToken(testSecret, testUser(), 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(access.Token, testSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}

	if claims.Subject != "42" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Email != "a@b.com" || claims.Name != "Ada Lovelace" {
		t.Errorf("identity claims = %q / %q", claims.Email, claims.Name)
	}
	if claims.Role != RoleAdmin || claims.CompanyID != 5 {
		t.Errorf("role/company claims = %s / %d", claims.Role, claims.CompanyID)
	}
	if len(claims.Permissions) != len(PermissionsFor(RoleAdmin)) {
		t.Errorf("permission list has %d entries, want %d", len(claims.Permissions), len(PermissionsFor(RoleAdmin)))
	}

	ttl := time.Until(access.Exp)
	if ttl < 14*time.Minute || ttl > 16*time.Minute {
		t.Errorf("TTL = %s, want ~15m", ttl)
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	access, err := NewAccessToken(testSecret, testUser(), 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(access.Token, "other-secret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestParseAccessToken_Garbage(t *testing.T) {
	if _, err := ParseAccessToken("not.a.jwt", testSecret); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestNewAccessToken_UnknownRoleHasNoPermissions(t *testing.T) {
	u := testUser()
	u.Role = "FUTURE_ROLE"
	access, err := NewAccessToken(testSecret, u, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if len(access.Claims.Permissions) != 0 {
		t.Errorf("unknown role minted %d permissions, want 0", len(access.Claims.Permissions))
	}
}

func TestNewRefreshCredential(t *testing.T) {
	ref, err := NewRefreshCredential(7)
	if err != nil {
		t.Fatalf("NewRefreshCredential: %v", err)
	}
	// 32 bytes of entropy encode to 43 base64url characters.
	if len(ref.Raw) != 43 {
		t.Errorf("credential length = %d, want 43", len(ref.Raw))
	}

	ttl := time.Until(ref.Exp)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("expiry = %s out, want ~7d", ttl)
	}
}

func TestNewRefreshCredential_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := NewRefreshCredential(7)
		if err != nil {
			t.Fatalf("NewRefreshCredential: %v", err)
		}
		if seen[ref.Raw] {
			t.Fatal("duplicate refresh credential generated")
		}
		seen[ref.Raw] = true
	}
}

func TestHashRefreshCredential(t *testing.T) {
	h1 := HashRefreshCredential("some-raw-value")
	h2 := HashRefreshCredential("some-raw-value")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == HashRefreshCredential("other-value") {
		t.Error("different inputs hashed equal")
	}
}
