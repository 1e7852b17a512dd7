package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateToken(t *testing.T) {
	jwtService := NewJWTService("test-secret-key-for-testing", time.Hour)

	token, expiresAt, err := jwtService.GenerateToken(uuid.New(), "js")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if token == "" {
		t.Fatal("Token should not be empty")
	}

	if expiresAt.Before(time.Now()) {
		t.Fatal("ExpiresAt should be in the future")
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService("test-secret-key-for-testing", time.Hour)

	sessionID := uuid.New()
	token, _, err := jwtService.GenerateToken(sessionID, "js")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.SessionID != sessionID {
		t.Errorf("Expected SessionID %s, got %s", sessionID, claims.SessionID)
	}

	if claims.UserName != "js" {
		t.Errorf("Expected UserName js, got %s", claims.UserName)
	}

	if claims.Subject != "js" {
		t.Errorf("Expected Subject js, got %s", claims.Subject)
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	jwtService := NewJWTService("test-secret-key-for-testing", time.Hour)

	_, err := jwtService.ValidateToken("invalid.token.here")
	if err == nil {
		t.Fatal("ValidateToken should fail for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	jwtService1 := NewJWTService("secret-key-1", time.Hour)
	jwtService2 := NewJWTService("secret-key-2", time.Hour)

	token, _, err := jwtService1.GenerateToken(uuid.New(), "js")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = jwtService2.ValidateToken(token)
	if err == nil {
		t.Fatal("ValidateToken should fail when using wrong secret")
	}
}

func TestTokenExpiration(t *testing.T) {
	jwtService := NewJWTService("test-secret-key-for-testing", -time.Hour)

	token, _, err := jwtService.GenerateToken(uuid.New(), "js")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = jwtService.ValidateToken(token)
	if err == nil {
		t.Fatal("ValidateToken should fail for expired token")
	}
}

func TestValidateTokenWithoutSession(t *testing.T) {
	secret := "test-secret-key-for-testing"
	claims := &Claims{
		UserName: "js",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = NewJWTService(secret, time.Hour).ValidateToken(token)
	if err == nil {
		t.Fatal("ValidateToken should fail for token without session id")
	}
}
