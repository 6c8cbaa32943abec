package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/rs/zerolog"
)

// statusRegRepo keeps registrations in memory and mirrors the
// repository's pending-only status transition rule.
type statusRegRepo struct {
	regs map[uuid.UUID]*model.Registration
}

func (f *statusRegRepo) Create(ctx context.Context, reg *model.Registration) error {
	reg.ID = uuid.New()
	f.regs[reg.ID] = reg
	return nil
}

func (f *statusRegRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return reg, nil
}

func (f *statusRegRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationDetail, error) {
	return nil, nil
}

func (f *statusRegRepo) List(ctx context.Context, status *model.RegistrationStatus) ([]model.RegistrationDetail, error) {
	var out []model.RegistrationDetail
	for _, reg := range f.regs {
		if status != nil && reg.Status != *status {
			continue
		}
		out = append(out, model.RegistrationDetail{Registration: *reg})
	}
	return out, nil
}

func (f *statusRegRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, reason *string) error {
	reg, ok := f.regs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if reg.Status != model.RegistrationPending {
		return repository.ErrNotPending
	}
	reg.Status = status
	reg.RejectionReason = reason
	return nil
}

func newReviewFixture() (*ReviewService, *statusRegRepo) {
	regs := &statusRegRepo{regs: make(map[uuid.UUID]*model.Registration)}
	svc := NewReviewService(regs, &fakeDocRepo{}, zerolog.Nop())
	return svc, regs
}

func pendingRegistration(regs *statusRegRepo) uuid.UUID {
	reg := &model.Registration{Status: model.RegistrationPending}
	regs.Create(context.Background(), reg)
	return reg.ID
}

func TestValidateMovesPendingToValidated(t *testing.T) {
	svc, regs := newReviewFixture()
	id := pendingRegistration(regs)

	reg, err := svc.Validate(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Status != model.RegistrationValidated {
		t.Errorf("status = %s, want validated", reg.Status)
	}
	if reg.RejectionReason != nil {
		t.Error("validated registration should carry no rejection reason")
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc, regs := newReviewFixture()
	id := pendingRegistration(regs)

	if _, err := svc.Reject(context.Background(), id, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	reg, _ := regs.GetByID(context.Background(), id)
	if reg.Status != model.RegistrationPending {
		t.Error("registration must stay pending when the reject fails")
	}
}

func TestRejectStoresReason(t *testing.T) {
	svc, regs := newReviewFixture()
	id := pendingRegistration(regs)

	reg, err := svc.Reject(context.Background(), id, "documents illisibles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Status != model.RegistrationRejected {
		t.Errorf("status = %s, want rejected", reg.Status)
	}
	if reg.RejectionReason == nil || *reg.RejectionReason != "documents illisibles" {
		t.Errorf("rejection reason = %v", reg.RejectionReason)
	}
}

func TestReviewIsTerminal(t *testing.T) {
	svc, regs := newReviewFixture()
	id := pendingRegistration(regs)

	if _, err := svc.Validate(context.Background(), id); err != nil {
		t.Fatalf("first validate: %v", err)
	}

	if _, err := svc.Validate(context.Background(), id); !errors.Is(err, repository.ErrNotPending) {
		t.Errorf("revalidate: expected ErrNotPending, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), id, "late"); !errors.Is(err, repository.ErrNotPending) {
		t.Errorf("reject after validate: expected ErrNotPending, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc, regs := newReviewFixture()
	pendingRegistration(regs)
	validatedID := pendingRegistration(regs)
	if _, err := svc.Validate(context.Background(), validatedID); err != nil {
		t.Fatalf("validate: %v", err)
	}

	pending := model.RegistrationPending
	got, err := svc.List(context.Background(), &pending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 pending registration, got %d", len(got))
	}

	all, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 registrations, got %d", len(all))
	}
}
