package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate(t *testing.T) {
	service := NewTokenService(TokenConfig{SecretKey: "test-secret", Duration: time.Hour})

	token, err := service.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	sessionID, err := service.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if sessionID != "session-123" {
		t.Errorf("Expected session-123, got %s", sessionID)
	}
}

func TestValidateRejects(t *testing.T) {
	service := NewTokenService(TokenConfig{SecretKey: "test-secret", Duration: time.Hour})
	other := NewTokenService(TokenConfig{SecretKey: "other-secret", Duration: time.Hour})
	expired := NewTokenService(TokenConfig{SecretKey: "test-secret", Duration: -time.Minute})
	foreign := NewTokenService(TokenConfig{SecretKey: "test-secret", Duration: time.Hour, Issuer: "someone-else"})

	wrongKey, _ := other.Issue("s")
	expiredToken, _ := expired.Issue("s")
	foreignToken, _ := foreign.Issue("s")
	noSession, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{SessionID: "s"}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong key", wrongKey},
		{"expired", expiredToken},
		{"wrong issuer", foreignToken},
		{"missing session", noSession},
		{"none algorithm", unsigned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Validate(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
