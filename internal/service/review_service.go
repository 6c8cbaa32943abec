package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/rs/zerolog"
)

var ErrReasonRequired = errors.New("a rejection reason is required")

// ReviewService is the agent-side surface: listing submitted
// registrations and moving them out of pending. Only
// pending → validated and pending → rejected are possible; the
// repository refuses anything else.
type ReviewService struct {
	regs repository.RegistrationRepository
	docs repository.DocumentRepository
	log  zerolog.Logger
}

func NewReviewService(regs repository.RegistrationRepository, docs repository.DocumentRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		regs: regs,
		docs: docs,
		log:  log.With().Str("component", "review_service").Logger(),
	}
}

// List returns registrations with joined names, optionally filtered by
// status, newest first.
func (s *ReviewService) List(ctx context.Context, status *model.RegistrationStatus) ([]model.RegistrationDetail, error) {
	return s.regs.List(ctx, status)
}

// GetWithDocuments returns one registration and its uploaded documents.
func (s *ReviewService) GetWithDocuments(ctx context.Context, id uuid.UUID) (*model.Registration, []model.Document, error) {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	docs, err := s.docs.ListByRegistration(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return reg, docs, nil
}

// Validate moves a pending registration to validated.
func (s *ReviewService) Validate(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	if err := s.regs.SetStatus(ctx, id, model.RegistrationValidated, nil); err != nil {
		return nil, err
	}
	s.log.Info().Str("registration_id", id.String()).Msg("Registration validated")
	return s.regs.GetByID(ctx, id)
}

// Reject moves a pending registration to rejected with a mandatory
// reason.
func (s *ReviewService) Reject(ctx context.Context, id uuid.UUID, reason string) (*model.Registration, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if err := s.regs.SetStatus(ctx, id, model.RegistrationRejected, &reason); err != nil {
		return nil, err
	}
	s.log.Info().Str("registration_id", id.String()).Msg("Registration rejected")
	return s.regs.GetByID(ctx, id)
}
