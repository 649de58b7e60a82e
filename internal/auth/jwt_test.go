package auth_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mamba-foods/stall-api/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"
	sessionID := uuid.New()

	token, err := auth.GenerateToken(secret, sessionID, auth.RoleStaff)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if claims.SessionID != sessionID {
		t.Errorf("session ID: got %v, want %v", claims.SessionID, sessionID)
	}
	if claims.Role != auth.RoleStaff {
		t.Errorf("role: got %v, want %v", claims.Role, auth.RoleStaff)
	}
}

func TestValidateTokenWithWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("secret-a", uuid.New(), auth.RoleCustomer)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.ValidateToken("secret-b", token); err == nil {
		t.Fatal("expected error validating with wrong secret")
	}
}

func TestValidateTokenWithInvalidString(t *testing.T) {
	if _, err := auth.ValidateToken("secret", "not-a-jwt"); err == nil {
		t.Fatal("expected error validating invalid token string")
	}
}

func TestGate(t *testing.T) {
	gate, err := auth.NewGate("mamba123")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	if err := gate.Check("mamba123"); err != nil {
		t.Fatalf("correct secret rejected: %v", err)
	}
	if err := gate.Check("wrong"); !errors.Is(err, auth.ErrAccessDenied) {
		t.Fatalf("got %v, want ErrAccessDenied", err)
	}
}
