package security_test

import (
	"strings"
	"testing"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
	"github.com/seatbook/seatbook/internal/security"
)

func testUser() *entity.User {
	return &entity.User{
		ID:    "usr-1",
		Email: "test@example.com",
		Role:  entity.RoleAdmin,
	}
}

func TestJWTManager_IssueAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute)

	token, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if token == "" {
		t.Error("token is empty")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	if claims.UserID != "usr-1" {
		t.Errorf("user ID mismatch: got %v, want usr-1", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("email mismatch: got %v", claims.Email)
	}
	if claims.Role != entity.RoleAdmin {
		t.Errorf("role mismatch: got %v", claims.Role)
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute)
	other := security.NewJWTManager("a-completely-different-secret!!!", 15*time.Minute)

	token, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute)

	token, err := manager.Issue(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute)

	for _, tok := range []string{"", "not.a.token", strings.Repeat("x", 64)} {
		if _, err := manager.Validate(tok); err == nil {
			t.Errorf("expected validation to fail for %q", tok)
		}
	}
}
