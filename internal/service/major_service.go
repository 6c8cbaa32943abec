package service

import (
	"context"
	"errors"
	"strings"

	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

var (
	ErrMajorCodeTaken  = errors.New("major code already exists")
	ErrMajorFieldsMiss = errors.New("name and code are required")
)

type MajorService interface {
	GetAllMajors(ctx context.Context) ([]*model.Major, error)
	CreateMajor(ctx context.Context, name, code string) (*model.Major, error)
	DeleteMajor(ctx context.Context, id int) error
}

type majorService struct {
	majorRepo repository.MajorRepository
}

func NewMajorService(majorRepo repository.MajorRepository) MajorService {
	return &majorService{majorRepo: majorRepo}
}

func (s *majorService) GetAllMajors(ctx context.Context) ([]*model.Major, error) {
	return s.majorRepo.GetAll(ctx)
}

// CreateMajor adds a reference major. Codes are stored uppercase and
// must be unique.
func (s *majorService) CreateMajor(ctx context.Context, name, code string) (*model.Major, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" || code == "" {
		return nil, ErrMajorFieldsMiss
	}

	existing, _ := s.majorRepo.GetByCode(ctx, code)
	if existing != nil {
		return nil, ErrMajorCodeTaken
	}

	major := &model.Major{
		Name: name,
		Code: code,
	}

	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

func (s *majorService) DeleteMajor(ctx context.Context, id int) error {
	if _, err := s.majorRepo.GetByID(ctx, id); err != nil {
		return errors.New("major not found")
	}
	return s.majorRepo.Delete(ctx, id)
}
