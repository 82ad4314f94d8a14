package auth

import (
	"testing"
	"time"
)

func testSessionConfig() SessionConfig {
	return SessionConfig{
		SecretKey: "test-secret-key",
		TTL:       time.Hour,
		Issuer:    "task-manager-test",
	}
}

func TestSessionManager_IssueAndValidate(t *testing.T) {
	m := NewSessionManager(testSessionConfig())

	token, err := m.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %q, want %q", claims.Username, "alice")
	}
	if claims.TokenType != "session" {
		t.Errorf("claims.TokenType = %q, want %q", claims.TokenType, "session")
	}
}

func TestSessionManager_ValidateInvalid(t *testing.T) {
	m := NewSessionManager(testSessionConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{name: "malformed segments", token: "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); err == nil {
				t.Error("Validate() error = nil, want error")
			}
		})
	}
}

func TestSessionManager_WrongSecret(t *testing.T) {
	issuer := NewSessionManager(testSessionConfig())
	token, err := issuer.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other := NewSessionManager(SessionConfig{
		SecretKey: "a-different-secret",
		TTL:       time.Hour,
		Issuer:    "task-manager-test",
	})

	if _, err := other.Validate(token); err == nil {
		t.Error("Validate() with wrong secret error = nil, want error")
	}
}

func TestSessionManager_Expired(t *testing.T) {
	m := NewSessionManager(SessionConfig{
		SecretKey: "test-secret-key",
		TTL:       -time.Minute,
		Issuer:    "task-manager-test",
	})

	token, err := m.Issue("user-123", "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = m.Validate(token)
	if err != ErrExpiredSession {
		t.Errorf("Validate() error = %v, want ErrExpiredSession", err)
	}
}
