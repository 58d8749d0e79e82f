package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

// UserService manages library profile records.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (string, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	lastLogIn := input.LastLogIn
	if lastLogIn.IsZero() {
		lastLogIn = now
	}

	user := &domain.User{
		Name:      input.Name,
		Roll:      input.Roll,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Role:      role,
		CreatedAt: createdAt,
		LastLogIn: lastLogIn,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("profile created")
	return id, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
