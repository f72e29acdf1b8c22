package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultIssuer = "vidgrab"

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims represents the claims of the session cookie token
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// TokenConfig represents session token configuration
type TokenConfig struct {
	SecretKey string
	Duration  time.Duration
	Issuer    string
}

// TokenService signs and validates session cookie tokens
type TokenService struct {
	config    TokenConfig
	secretKey []byte
}

// NewTokenService creates a new token service
func NewTokenService(config TokenConfig) *TokenService {
	if config.Issuer == "" {
		config.Issuer = DefaultIssuer
	}
	return &TokenService{
		config:    config,
		secretKey: []byte(config.SecretKey),
	}
}

// Issue creates a signed token for sessionID
func (s *TokenService) Issue(sessionID string) (string, error) {
	now := time.Now()
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("failed to generate JTI: %w", err)
	}

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   sessionID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Duration)),
			NotBefore: jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses a token and returns the session ID it carries
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.SessionID == "" {
		return "", fmt.Errorf("%w: missing session_id", ErrInvalidToken)
	}

	return claims.SessionID, nil
}

// Duration returns the token lifetime, used for the cookie max age
func (s *TokenService) Duration() time.Duration {
	return s.config.Duration
}

// generateJTI generates a unique JWT ID
func generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
