package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/Sangrampatil04/task-manager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for account operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Signup(ctx context.Context, username, email, password, confirm string) (*SignupResponse, error)
	Login(ctx context.Context, username, password string) (string, error)
	ValidateSession(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// ErrSessionRejected is returned by the adapter when the auth module
// reports a session token as invalid or expired.
var ErrSessionRejected = errors.New("session rejected")

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Signup creates a new account with an immediate session.
func (a *AuthAdapter) Signup(ctx context.Context, username, email, password, confirm string) (*SignupResponse, error) {
	req := SignupRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}
	var resp SignupResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "signup", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Login authenticates a user and returns a session token.
func (a *AuthAdapter) Login(ctx context.Context, username, password string) (string, error) {
	req := LoginRequest{Username: username, Password: password}
	var resp LoginResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "login", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return "", err
	}

	return resp.SessionToken, nil
}

// ValidateSession validates a session token and returns claims.
func (a *AuthAdapter) ValidateSession(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateSessionRequest{Token: token}
	var resp ValidateSessionResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-session", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-session request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("%w: %s", ErrSessionRejected, resp.Error)
	}

	return &domain.Claims{
		UserID:   resp.UserID,
		Username: resp.Username,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Username:  resp.Username,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}
