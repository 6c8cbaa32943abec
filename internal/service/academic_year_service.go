package service

import (
	"context"
	"time"

	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/rs/zerolog"
)

// AcademicYearService owns the "at most one active year" rule. The flag
// lives in the store but every mutation goes through here.
type AcademicYearService struct {
	repo repository.AcademicYearRepository
	log  zerolog.Logger
}

func NewAcademicYearService(repo repository.AcademicYearRepository, log zerolog.Logger) *AcademicYearService {
	return &AcademicYearService{
		repo: repo,
		log:  log.With().Str("component", "academic_year_service").Logger(),
	}
}

func (s *AcademicYearService) GetAll(ctx context.Context) ([]*model.AcademicYear, error) {
	return s.repo.GetAll(ctx)
}

// Create adds a year; new years always start inactive and are switched
// on explicitly with Activate.
func (s *AcademicYearService) Create(ctx context.Context, name string, startDate, endDate time.Time) (*model.AcademicYear, error) {
	year := &model.AcademicYear{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.repo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// Activate makes the given year the single active one. The repository
// clears every other flag and sets this one in the same transaction.
func (s *AcademicYearService) Activate(ctx context.Context, id int) (*model.AcademicYear, error) {
	if err := s.repo.SetActive(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info().Int("year_id", id).Msg("Academic year activated")
	return s.repo.GetByID(ctx, id)
}

// Deactivate switches a year off, leaving no active year. Registration
// submissions fail with NO_ACTIVE_YEAR until another year is activated.
func (s *AcademicYearService) Deactivate(ctx context.Context, id int) (*model.AcademicYear, error) {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info().Int("year_id", id).Msg("Academic year deactivated")
	return s.repo.GetByID(ctx, id)
}
