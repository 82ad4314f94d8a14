package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSession is returned when a session token is invalid.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrExpiredSession is returned when a session token has expired.
	ErrExpiredSession = errors.New("session has expired")
)

// SessionConfig holds session token configuration.
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// SessionClaims are the custom claims carried by a session token.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates signed session tokens. The token
// lives in a browser cookie, so there is a single token type with a
// long TTL rather than an access/refresh pair.
type SessionManager struct {
	config SessionConfig
}

// NewSessionManager creates a new SessionManager with the given configuration.
func NewSessionManager(config SessionConfig) *SessionManager {
	return &SessionManager{
		config: config,
	}
}

// Issue generates a new session token for the given user.
func (m *SessionManager) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    userID,
		Username:  username,
		TokenType: "session",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Validate checks the token signature and expiry and returns the claims.
func (m *SessionManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	if claims.TokenType != "session" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
