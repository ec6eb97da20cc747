package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "pawroute/database/repository/user"
	"pawroute/middleware"
	"pawroute/models"
	"pawroute/utils"

	"github.com/google/uuid"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// login failures do not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 72 * time.Hour

// UserService manages client accounts and authentication.
type UserService interface {
	Register(ctx context.Context, reg models.UserRegistration) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, phone, username string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a client account and returns a fresh token.
func (s *DefaultUserService) Register(ctx context.Context, reg models.UserRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", reg.Email)
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		Username:     reg.Username,
		PasswordHash: hash,
		Phone:        reg.Phone,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, u)
}

// Authenticate verifies credentials and returns a fresh token. Issuing a
// new token revokes any previous one for the account.
func (s *DefaultUserService) Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	if u.Suspended {
		return nil, errors.New("account suspended")
	}
	return s.issueToken(ctx, u)
}

func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, middleware.RoleClient, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := middleware.AllowToken(ctx, middleware.RoleClient, u.ID, token); err != nil {
		return nil, fmt.Errorf("failed to register token: %w", err)
	}
	return &models.AuthResponse{ID: u.ID, Email: u.Email, Token: token}, nil
}

// GetByID returns a client account.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile updates the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, phone, username string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if phone != "" {
		u.Phone = phone
	}
	if username != "" {
		u.Username = username
	}
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.SetFCMToken(ctx, id, token)
}

// RevokeToken invalidates the account's current token.
func (s *DefaultUserService) RevokeToken(ctx context.Context, id string) error {
	return middleware.RevokeToken(ctx, middleware.RoleClient, id)
}

// Delete removes the account and revokes its token.
func (s *DefaultUserService) Delete(ctx context.Context, id string) error {
	if err := middleware.RevokeToken(ctx, middleware.RoleClient, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
