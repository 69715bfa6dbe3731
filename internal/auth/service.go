package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chiruit2077/partslink/internal/api"
)

// Service wraps the authentication endpoints.
type Service struct {
	client   *api.Client
	manager  *Manager
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(client *api.Client, manager *Manager) *Service {
	return &Service{
		client:   client,
		manager:  manager,
		validate: validator.New(),
		now:      time.Now,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login authenticates and installs the resulting session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	req := loginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate credentials: %w", err)
	}

	var resp loginWire
	if err := s.client.Post(ctx, "/auth/login", req, &resp, api.Anonymous()); err != nil {
		return nil, err
	}

	sess := normalizeSession(resp, s.now())
	if err := s.manager.SetSession(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

// Logout tells the backend to revoke the token, then clears local
// state. The remote call is best effort; local state always goes.
func (s *Service) Logout(ctx context.Context) error {
	_ = s.client.Post(ctx, "/auth/logout", nil, nil)
	return s.manager.Clear()
}

// Profile fetches the authenticated user's profile.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User userWire `json:"user"`
	}
	if err := s.client.Get(ctx, "/auth/profile", &resp); err != nil {
		return nil, err
	}
	user := NormalizeUser(resp.User)
	return &user, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword updates the account password.
func (s *Service) ChangePassword(ctx context.Context, current, updated string) error {
	req := changePasswordRequest{CurrentPassword: current, NewPassword: updated}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate password: %w", err)
	}
	return s.client.Post(ctx, "/auth/change-password", req, nil)
}
