package walker

import (
	"context"
	"errors"
	"fmt"
	"time"

	walkerRepo "pawroute/database/repository/walker"
	"pawroute/middleware"
	"pawroute/models"
	"pawroute/utils"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 72 * time.Hour

// WalkerService manages walker accounts and authentication.
type WalkerService interface {
	Register(ctx context.Context, reg models.WalkerRegistration) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Walker, error)
	UpdateProfile(ctx context.Context, id string, bio string, hourlyRate float64) (*models.Walker, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	RevokeToken(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DefaultWalkerService implements WalkerService.
type DefaultWalkerService struct {
	Repo walkerRepo.WalkerRepository
}

// Register creates a walker account and returns a fresh token.
func (s *DefaultWalkerService) Register(ctx context.Context, reg models.WalkerRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s is already registered", reg.Email)
	}
	if reg.HourlyRate <= 0 {
		return nil, errors.New("hourly rate must be positive")
	}

	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	w := &models.Walker{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		Name:         reg.Name,
		PasswordHash: hash,
		Bio:          reg.Bio,
		HourlyRate:   reg.HourlyRate,
	}
	if err := s.Repo.Create(w); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, w)
}

// Authenticate verifies credentials and returns a fresh token.
func (s *DefaultWalkerService) Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	w, err := s.Repo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if w == nil || !utils.CheckPassword(w.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	if w.Suspended {
		return nil, errors.New("account suspended")
	}
	return s.issueToken(ctx, w)
}

func (s *DefaultWalkerService) issueToken(ctx context.Context, w *models.Walker) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(w.ID, middleware.RoleWalker, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := middleware.AllowToken(ctx, middleware.RoleWalker, w.ID, token); err != nil {
		return nil, fmt.Errorf("failed to register token: %w", err)
	}
	return &models.AuthResponse{ID: w.ID, Email: w.Email, Token: token}, nil
}

// GetByID returns a walker account.
func (s *DefaultWalkerService) GetByID(ctx context.Context, id string) (*models.Walker, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile updates bio and hourly rate. Rate changes affect future
// bookings only; existing bookings keep their frozen fees.
func (s *DefaultWalkerService) UpdateProfile(ctx context.Context, id string, bio string, hourlyRate float64) (*models.Walker, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bio != "" {
		w.Bio = bio
	}
	if hourlyRate > 0 {
		w.HourlyRate = hourlyRate
	}
	if err := s.Repo.Update(w); err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateFCMToken stores the device push token.
func (s *DefaultWalkerService) UpdateFCMToken(ctx context.Context, id, token string) error {
	return s.Repo.SetFCMToken(ctx, id, token)
}

// RevokeToken invalidates the account's current token.
func (s *DefaultWalkerService) RevokeToken(ctx context.Context, id string) error {
	return middleware.RevokeToken(ctx, middleware.RoleWalker, id)
}

// Delete removes the account and revokes its token.
func (s *DefaultWalkerService) Delete(ctx context.Context, id string) error {
	if err := middleware.RevokeToken(ctx, middleware.RoleWalker, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
