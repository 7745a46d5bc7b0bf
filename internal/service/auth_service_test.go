package service

import (
	"context"
	"errors"
	"testing"

	"github.com/CRautomation-ai/showcase-agent/internal/config"
	"github.com/CRautomation-ai/showcase-agent/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func TestLogin_PlaintextPassword(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{
		JWTSecret: "test-secret",
		Password:  "open-sesame",
	}, noopLogger{})

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"correct password", "open-sesame", nil},
		{"wrong password", "open-says-me", ErrInvalidPassword},
		{"empty password", "", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), &dto.LoginRequest{Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && res.Token == "" {
				t.Error("Login() returned empty token")
			}
		})
	}
}

func TestLogin_BcryptHashPreferredOverPlaintext(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	svc := NewAuthService(config.AuthConfig{
		JWTSecret:    "test-secret",
		Password:     "plaintext-ignored",
		PasswordHash: string(hash),
	}, noopLogger{})

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "hashed-secret"}); err != nil {
		t.Errorf("Login() with hash match error = %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "plaintext-ignored"}); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Login() with plaintext should fail when hash is set, error = %v", err)
	}
}

func TestLogin_NoCredentialConfiguredRejectsAll(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret"}, noopLogger{})

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Password: ""}); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Login() error = %v, want ErrInvalidPassword", err)
	}
}

func TestLogin_TokenCarriesFixedSubject(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{
		JWTSecret: "test-secret",
		Password:  "pw",
	}, noopLogger{})

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "authenticated" {
		t.Errorf("sub = %v, want authenticated", claims["sub"])
	}
	if _, hasExp := claims["exp"]; hasExp {
		t.Error("token should not carry an expiry")
	}
}
