package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/Sangrampatil04/task-manager/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	// The same error covers unknown usernames and wrong passwords so the
	// response does not leak which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameRequired is returned when the username is empty.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordMismatch is returned when the two signup passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// AuthService handles account and session business logic.
type AuthService struct {
	repo     *UserRepository
	hasher   *PasswordHasher
	sessions *SessionManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, sessions *SessionManager) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Signup creates a new account and logs it in immediately, returning
// the user together with a fresh session token.
func (s *AuthService) Signup(_ context.Context, username, email, password, confirm string) (*domain.User, string, error) {
	if username == "" {
		return nil, "", ErrUsernameRequired
	}

	if password != confirm {
		return nil, "", ErrPasswordMismatch
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", ErrInvalidEmail
	}

	// bcrypt accepts at most 72 bytes
	if len(password) < 8 {
		return nil, "", ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, "", ErrPasswordTooLong
	}

	exists, err := s.repo.UsernameExists(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, "", ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}

	return token, nil
}

// ValidateSession validates a session token and returns the claims.
func (s *AuthService) ValidateSession(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}
