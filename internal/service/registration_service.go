package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/storage"
	"github.com/rs/zerolog"
)

// Validation errors caught before any store call.
var (
	ErrMajorRequired = errors.New("a major must be selected")
	ErrMajorNotFound = errors.New("selected major does not exist")
)

// ErrNoActiveYear mirrors the repository sentinel so callers only
// depend on the service package.
var ErrNoActiveYear = repository.ErrNoActiveYear

// SubmissionFile is one attached document held in memory until the
// submission sequence uploads it.
type SubmissionFile struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// SubmissionInput carries everything the three wizard steps collected.
type SubmissionInput struct {
	StudentID   uuid.UUID
	StudentName string

	// Step 1 — personal info.
	CNE       string
	CIN       string
	BirthDate time.Time
	Address   string
	Phone     string

	// Step 2 — academic choice.
	MajorID int
	Level   string

	// Step 3 — document slots; nil entries are simply skipped.
	Files map[model.DocumentType]*SubmissionFile
}

// SubmissionResult reports how far a submission got. There is no
// automatic rollback: a failed upload leaves the registration row and
// the documents of earlier slots in place, and FailedSlot names where
// the sequence stopped.
type SubmissionResult struct {
	Registration *model.Registration `json:"registration"`
	Documents    []model.Document    `json:"documents"`
	FailedSlot   *model.DocumentType `json:"failed_slot,omitempty"`
	ActiveYear   *model.AcademicYear `json:"academic_year,omitempty"`
}

// RegistrationSubmittedEvent is announced to agents after a fully
// successful submission.
type RegistrationSubmittedEvent struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	StudentID      uuid.UUID `json:"student_id"`
	StudentName    string    `json:"student_name"`
	MajorName      string    `json:"major_name"`
	Level          string    `json:"level"`
	DocumentCount  int       `json:"document_count"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RegistrationEventPublisher fans a submission event out to listeners.
// Publishing is best-effort and never fails the submission.
type RegistrationEventPublisher interface {
	PublishSubmitted(ctx context.Context, event RegistrationSubmittedEvent) error
}

// RegistrationService runs the registration submission sequence and the
// wizard's mount-time reference fetch.
type RegistrationService struct {
	years   repository.AcademicYearRepository
	majors  repository.MajorRepository
	details repository.StudentDetailRepository
	regs    repository.RegistrationRepository
	docs    repository.DocumentRepository
	store   storage.ObjectStore
	events  RegistrationEventPublisher
	log     zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService. events may
// be nil when no listener transport is wired.
func NewRegistrationService(
	years repository.AcademicYearRepository,
	majors repository.MajorRepository,
	details repository.StudentDetailRepository,
	regs repository.RegistrationRepository,
	docs repository.DocumentRepository,
	store storage.ObjectStore,
	events RegistrationEventPublisher,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		years:   years,
		majors:  majors,
		details: details,
		regs:    regs,
		docs:    docs,
		store:   store,
		events:  events,
		log:     log.With().Str("component", "registration_service").Logger(),
	}
}

// Context is what the wizard fetches on mount: the active academic year
// and the majors to choose from, ordered by name.
type RegistrationContext struct {
	AcademicYear *model.AcademicYear `json:"academic_year"`
	Majors       []*model.Major      `json:"majors"`
}

// GetContext returns the wizard's reference data. ErrNoActiveYear when
// no year is open for registration.
func (s *RegistrationService) GetContext(ctx context.Context) (*RegistrationContext, error) {
	year, err := s.years.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	majors, err := s.majors.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &RegistrationContext{AcademicYear: year, Majors: majors}, nil
}

// Submit runs the submission sequence:
//
//  1. preconditions (active year, major) — nothing written on failure;
//  2. upsert the student detail row;
//  3. insert the pending registration and read back its id;
//  4. upload attached documents strictly in slot order, inserting a
//     document row after each successful upload.
//
// A failure inside step 4 halts the remaining uploads and returns the
// partial result together with the error; earlier writes stay. The
// returned result is non-nil whenever a registration row was created.
func (s *RegistrationService) Submit(ctx context.Context, in *SubmissionInput) (*SubmissionResult, error) {
	// 1. Preconditions, before any write.
	year, err := s.years.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if in.MajorID == 0 {
		return nil, ErrMajorRequired
	}
	major, err := s.majors.GetByID(ctx, in.MajorID)
	if err != nil {
		return nil, ErrMajorNotFound
	}

	// 2. Student detail upsert. A failure here aborts before a
	// registration row exists.
	detail := &model.StudentDetail{
		ProfileID: in.StudentID,
		CNE:       in.CNE,
		CIN:       in.CIN,
		BirthDate: in.BirthDate,
		Address:   in.Address,
		Phone:     in.Phone,
	}
	if err := s.details.Upsert(ctx, detail); err != nil {
		return nil, fmt.Errorf("upsert student detail: %w", err)
	}

	// 3. Registration row, status pending.
	reg := &model.Registration{
		StudentID:      in.StudentID,
		AcademicYearID: year.ID,
		MajorID:        major.ID,
		Level:          in.Level,
		Status:         model.RegistrationPending,
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	result := &SubmissionResult{
		Registration: reg,
		Documents:    []model.Document{},
		ActiveYear:   year,
	}

	// 4. Document uploads, strictly sequential in slot order so a
	// failure leaves a deterministic prefix behind.
	for _, slot := range model.DocumentSlots {
		file := in.Files[slot]
		if file == nil {
			continue
		}

		doc, err := s.uploadDocument(ctx, reg.ID, slot, file)
		if err != nil {
			failed := slot
			result.FailedSlot = &failed
			s.log.Error().Err(err).
				Str("registration_id", reg.ID.String()).
				Str("slot", string(slot)).
				Int("documents_stored", len(result.Documents)).
				Msg("Submission halted mid-upload")
			return result, err
		}
		result.Documents = append(result.Documents, *doc)
	}

	if s.events != nil {
		event := RegistrationSubmittedEvent{
			RegistrationID: reg.ID,
			StudentID:      in.StudentID,
			StudentName:    in.StudentName,
			MajorName:      major.Name,
			Level:          in.Level,
			DocumentCount:  len(result.Documents),
			SubmittedAt:    reg.CreatedAt,
		}
		if err := s.events.PublishSubmitted(ctx, event); err != nil {
			s.log.Warn().Err(err).Msg("Failed to publish submission event")
		}
	}

	return result, nil
}

// uploadDocument stores one file and records its document row. The row
// is only written after the upload succeeded, so file_url always points
// at a stored object.
func (s *RegistrationService) uploadDocument(ctx context.Context, regID uuid.UUID, slot model.DocumentType, file *SubmissionFile) (*model.Document, error) {
	ext, ok := storage.AllowedExtension(file.Filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedFileType, file.Filename)
	}

	key := fmt.Sprintf("%s/%s_%d%s", regID, slot, time.Now().UnixMilli(), ext)

	r, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer r.Close()

	if err := s.store.Put(ctx, key, r, file.Size); err != nil {
		return nil, fmt.Errorf("upload %s: %w", slot, err)
	}

	doc := &model.Document{
		RegistrationID: regID,
		Type:           slot,
		FileURL:        s.store.PublicURL(key),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("record document %s: %w", slot, err)
	}
	return doc, nil
}

// ListByStudent returns the student's own registrations with joined
// reference names, newest first.
func (s *RegistrationService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationDetail, error) {
	return s.regs.ListByStudent(ctx, studentID)
}
