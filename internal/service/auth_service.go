package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/CRautomation-ai/showcase-agent/internal/config"
	"github.com/CRautomation-ai/showcase-agent/internal/dto"
	"github.com/CRautomation-ai/showcase-agent/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg    config.AuthConfig
	logger logger.ILogger
}

func NewAuthService(cfg config.AuthConfig, logger logger.ILogger) IAuthService {
	return &authService{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.verifyPassword(req.Password) {
		s.logger.Warn("auth", "Login rejected: password mismatch", nil)
		return nil, ErrInvalidPassword
	}

	// Single shared credential, so the only claim is the fixed subject.
	// No expiry: tokens stay valid until the secret rotates.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "authenticated",
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{Token: signed}, nil
}

func (s *authService) verifyPassword(plain string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(plain)) == nil
	}
	if s.cfg.Password == "" {
		// No credential configured means nobody gets in.
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(s.cfg.Password)) == 1
}
