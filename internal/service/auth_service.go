package service

import (
	"context"
	"log/slog"

	"github.com/Junio-R-org/J-Bank/internal/auth"
	"github.com/Junio-R-org/J-Bank/internal/models"
)

// AuthService registers and logs in camp staff, issuing JWT session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService over the given authenticator and
// token manager.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

// Register creates a staff account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Warn("Register failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("Staff registered", "user_id", user.ID, "email", email)
	return user, token, nil
}

// Login authenticates a staff account and returns it with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("Staff logged in", "user_id", user.ID, "email", email)
	return user, token, nil
}
