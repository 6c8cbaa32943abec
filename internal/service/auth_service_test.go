package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/config"
	"github.com/madaris/school-app-backend/internal/model"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // min cost, keeps the test fast
	}
	// Redis is only touched on the student session paths, which are
	// covered by the e2e suite.
	return NewAuthService(cfg, nil)
}

func TestPasswordRoundTrip(t *testing.T) {
	svc := testAuthService()

	hash, err := svc.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := svc.CheckPassword(hash, "correct horse"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testAuthService()
	profile := &model.Profile{
		ID:       uuid.New(),
		FullName: "Agent Smith",
		Email:    "agent@example.com",
		Role:     model.RoleAgent,
	}

	token, err := svc.GenerateToken(context.Background(), profile)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != profile.ID {
		t.Errorf("user_id = %s, want %s", claims.UserID, profile.ID)
	}
	if claims.Role != model.RoleAgent {
		t.Errorf("role = %s, want agent", claims.Role)
	}
	if claims.FullName != profile.FullName {
		t.Errorf("full_name = %q", claims.FullName)
	}
}

func TestValidateTokenRejectsBadSignature(t *testing.T) {
	svc := testAuthService()
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleAdmin}

	token, err := svc.GenerateToken(context.Background(), profile)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}, nil)
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	svc := testAuthService()

	// Forge a token carrying a role outside the closed set.
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
		Role:   model.Role("superuser"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(signed); !errors.Is(err, model.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute}
	svc := NewAuthService(cfg, nil)
	profile := &model.Profile{ID: uuid.New(), Role: model.RoleAdmin}

	token, err := svc.GenerateToken(context.Background(), profile)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expired token must not validate")
	}
}
