package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrMissingToken  = errors.New("missing session token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

const issuer = "quiz-lambda"

// Claims identify the quiz session a token was issued for.
type Claims struct {
	SessionID string `json:"sid"`
	Player    string `json:"player,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates quiz session tokens with HS256.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Generate issues a token for sessionID that expires after the manager's ttl.
func (m *TokenManager) Generate(sessionID, player string) (string, error) {
	return m.GenerateWithTTL(sessionID, player, m.ttl)
}

func (m *TokenManager) GenerateWithTTL(sessionID, player string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		SessionID: sessionID,
		Player:    player,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenStr and returns its claims.
func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
