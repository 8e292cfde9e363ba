// internal/pkg/session/token.go
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/resteel-cart/internal/config"
)

const subjectPrefix = "cart:"

var ErrInvalidToken = errors.New("invalid session token")

// Claims represents the cart session claims
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed cart session tokens
type Manager struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewManager creates a new session token manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.App.Name,
		expiry: cfg.Session.Expiry,
		now:    time.Now,
	}
}

// NewSession mints a fresh session id and its signed token
func (m *Manager) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.New().String()
	token, err = m.Sign(sessionID)
	return sessionID, token, err
}

// Sign creates a token for an existing session id
func (m *Manager) Sign(sessionID string) (string, error) {
	now := m.now().UTC()

	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   subjectPrefix + sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns its session id
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidToken)
	}
	if claims.Subject != subjectPrefix+claims.SessionID {
		return "", fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	return claims.SessionID, nil
}
