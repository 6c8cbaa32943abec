package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

// UserService backs the admin users directory and profile lookups.
type UserService struct {
	profiles *repository.ProfileRepository
}

func NewUserService(profiles *repository.ProfileRepository) *UserService {
	return &UserService{profiles: profiles}
}

// GetByID retrieves one profile.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// GetByEmail retrieves one profile by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return s.profiles.GetByEmail(ctx, email)
}

// CreateStudent registers a new student account with an already-hashed
// password. Agents and admins are provisioned out of band.
func (s *UserService) CreateStudent(ctx context.Context, fullName, email, passwordHash string) (*model.Profile, error) {
	p := &model.Profile{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleStudent,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves the users directory with optional role filter and
// name/email search, paginated.
func (s *UserService) List(ctx context.Context, role *model.Role, search string, page, perPage int) ([]model.Profile, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return s.profiles.List(ctx, role, search, perPage, (page-1)*perPage)
}
