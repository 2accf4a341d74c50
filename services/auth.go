package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"client_case_tracker/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionDuration is how long a session token stays valid (no renewal)
	SessionDuration = 24 * time.Hour
	// AdminRole is the only role ever issued
	AdminRole = "admin"
	// TokenIssuer identifies tokens minted by this service
	TokenIssuer = "client-case-tracker"
)

// SessionClaims is the payload of a session token
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator checks the single configured admin identity and mints/verifies session tokens
type Authenticator struct {
	admin  config.AdminCredentials
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator builds an Authenticator from the immutable startup config
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{
		admin:  cfg.Admin,
		secret: []byte(cfg.SessionSecret),
		ttl:    SessionDuration,
		now:    time.Now,
	}
}

// Login compares the credentials against the admin identity and issues a token on match.
// Any mismatch yields ErrInvalidCredentials without saying which part was wrong.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	if !a.credentialsMatch(username, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.IssueToken()
}

// credentialsMatch compares both values in constant time, always checking both
func (a *Authenticator) credentialsMatch(username, password string) bool {
	if a.admin.Username == "" || a.admin.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password))
	return userOK&passOK == 1
}

// IssueToken signs a new admin session token
func (a *Authenticator) IssueToken() (string, time.Time, error) {
	if len(a.secret) == 0 {
		return "", time.Time{}, errors.New("session secret not configured")
	}

	issuedAt := a.now()
	expiresAt := issuedAt.Add(a.ttl)
	claims := SessionClaims{
		Username: a.admin.Username,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    TokenIssuer,
			Subject:   a.admin.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken checks signature, algorithm, issuer, expiry and identity.
// Every failure is reported as ErrInvalidCredentials.
func (a *Authenticator) ParseToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" || len(a.secret) == 0 {
		return nil, ErrInvalidCredentials
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if claims.Role != AdminRole || claims.Username != a.admin.Username {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Verify returns the authorization decision for a token
func (a *Authenticator) Verify(tokenString string) bool {
	_, err := a.ParseToken(tokenString)
	return err == nil
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(eventType, subject, details string) {
	log.Printf("[SECURITY] %s | Subject: %s | Details: %s", eventType, subject, details)
}
