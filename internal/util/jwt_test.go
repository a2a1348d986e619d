package util

import (
	"lexi_backend/internal/model"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret-unit-test-secret-1234"

func testUser() *model.User {
	u := &model.User{Name: "Dara", Email: "dara@example.com", Role: model.RoleAdmin}
	u.ID = 42
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "dara@example.com" || claims.Name != "Dara" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected sub=42, got %q", claims.Subject)
	}
}

func TestParseJWTRejectsBadTokens(t *testing.T) {
	valid, err := GenerateJWT(testUser(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	expired, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	hs384 := jwt.NewWithClaims(jwt.SigningMethodHS384, &Claims{
		UserID:           42,
		Role:             model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	otherAlg, err := hs384.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign hs384: %v", err)
	}

	noID := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	withoutID, err := noID.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := map[string]struct {
		token  string
		secret string
	}{
		"wrong secret":    {valid, "another-secret-another-secret-123456"},
		"expired":         {expired, testSecret},
		"tampered":        {tampered, testSecret},
		"other algorithm": {otherAlg, testSecret},
		"missing user id": {withoutID, testSecret},
		"garbage":         {"not-a-token", testSecret},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseJWT(tc.token, tc.secret); err == nil {
				t.Fatalf("expected %s token to be rejected", name)
			}
		})
	}
}

func TestParseJWTFallsBackToSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "sub@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseJWT(signed, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected id from sub, got %d", claims.UserID)
	}
	if claims.IsAdmin() {
		t.Fatal("missing role must not be admin")
	}
}
