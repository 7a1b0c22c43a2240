package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/nbfilms/studio-api/internal/domain/studio"
	"github.com/nbfilms/studio-api/internal/platform/apperr"
	"github.com/nbfilms/studio-api/internal/platform/auth"
)

// LoginRequest is the console login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair is an issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService authenticates console admins and issues tokens.
type AuthService struct {
	admins studio.AdminRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(admins studio.AdminRepository, jwt *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{admins: admins, jwt: jwt, logger: logger}
}

// Login verifies the credentials and issues a token pair. An unknown email
// and a wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	account, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, apperr.NewUnauthorizedError("invalid credentials")
	}

	return s.issue(account)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.Verify(refreshToken)
	if err != nil {
		return nil, apperr.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, apperr.NewUnauthorizedError("refresh token required")
	}

	account, err := s.admins.FindByEmail(ctx, claims.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.NewUnauthorizedError("invalid refresh token")
		}
		return nil, err
	}
	return s.issue(account)
}

func (s *AuthService) issue(account *studio.AdminAccount) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(account.ID, account.Email, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(account.ID, account.Email, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
