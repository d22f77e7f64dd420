// FareLens | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farelens/backend/internal/config"
	"github.com/farelens/backend/internal/core"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-at-least-32-bytes-long!!",
		AccessTokenExpire: time.Hour,
		Issuer:            "farelens",
	}
}

func TestCreateAndVerifyAccessToken(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-123",
		Email:  "dev@farelens.com",
		Tier:   "free",
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("user id = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Email != "dev@farelens.com" {
		t.Errorf("email = %q, want %q", claims.Email, "dev@farelens.com")
	}
	if claims.Tier != "free" {
		t.Errorf("tier = %q, want %q", claims.Tier, "free")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute

	manager, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	token, err := manager.CreateAccessToken(AccessTokenClaims{UserID: "user-123"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	token, err := manager.CreateAccessToken(AccessTokenClaims{UserID: "user-123"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-secret-value!"
	other, err := NewJWTManager(otherCfg)
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	_, err = other.VerifyAccessToken(context.Background(), token)
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager, err := NewJWTManager(testJWTConfig())
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	_, err = manager.VerifyAccessToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""

	if _, err := NewJWTManager(cfg); err == nil {
		t.Error("expected error for empty secret")
	}
}
