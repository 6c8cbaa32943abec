package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

// StudentService handles the student profile surface outside the
// registration wizard (the Profile page read/save).
type StudentService struct {
	details repository.StudentDetailRepository
}

func NewStudentService(details repository.StudentDetailRepository) *StudentService {
	return &StudentService{details: details}
}

// GetDetail returns the student's detail row, or (nil, nil) when the
// student has not filled the form yet.
func (s *StudentService) GetDetail(ctx context.Context, profileID uuid.UUID) (*model.StudentDetail, error) {
	detail, err := s.details.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return detail, nil
}

// SaveDetail upserts the student's detail row from the profile form.
func (s *StudentService) SaveDetail(ctx context.Context, profileID uuid.UUID, req *model.StudentDetailRequest) (*model.StudentDetail, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, err
	}

	detail := &model.StudentDetail{
		ProfileID: profileID,
		CNE:       req.CNE,
		CIN:       req.CIN,
		BirthDate: birthDate,
		Address:   req.Address,
		Phone:     req.Phone,
	}
	if err := s.details.Upsert(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}
