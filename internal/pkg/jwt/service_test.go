package jwt

import (
	"errors"
	"testing"
	"time"

	"talenthub/internal/config"

	"github.com/google/uuid"
)

func testService() *HMACService {
	return NewHMACService(config.JWTConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	})
}

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "ada@example.com", "candidate")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID || claims.Email != "ada@example.com" || claims.Role != "candidate" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess || svc.IsRefreshToken(claims) {
		t.Fatalf("expected access token, got %q", claims.TokenType)
	}
}

func TestHMACService_RefreshTokenIsRefresh(t *testing.T) {
	svc := testService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	svc := testService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_TamperedToken(t *testing.T) {
	svc := testService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.ValidateToken(tok + "x"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_ForeignSecretRejected(t *testing.T) {
	other := NewHMACService(config.JWTConfig{
		AccessSecret:     "different",
		RefreshSecret:    "also-different",
		AccessExpiresIn:  time.Minute,
		RefreshExpiresIn: time.Minute,
	})

	tok, err := other.GenerateAccessToken(uuid.New(), "", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := testService().ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
