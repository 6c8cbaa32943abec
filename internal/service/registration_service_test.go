package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/storage"
	"github.com/rs/zerolog"
)

// ─── Fakes ──────────────────────────────────────────────────────────

type fakeYearRepo struct {
	active *model.AcademicYear
}

func (f *fakeYearRepo) GetAll(ctx context.Context) ([]*model.AcademicYear, error) { return nil, nil }
func (f *fakeYearRepo) GetByID(ctx context.Context, id int) (*model.AcademicYear, error) {
	return f.active, nil
}
func (f *fakeYearRepo) GetActive(ctx context.Context) (*model.AcademicYear, error) {
	if f.active == nil {
		return nil, repository.ErrNoActiveYear
	}
	return f.active, nil
}
func (f *fakeYearRepo) Create(ctx context.Context, year *model.AcademicYear) error { return nil }
func (f *fakeYearRepo) SetActive(ctx context.Context, id int) error                { return nil }
func (f *fakeYearRepo) Deactivate(ctx context.Context, id int) error               { return nil }

type fakeMajorRepo struct {
	majors map[int]*model.Major
}

func (f *fakeMajorRepo) GetAll(ctx context.Context) ([]*model.Major, error) {
	out := make([]*model.Major, 0, len(f.majors))
	for _, m := range f.majors {
		out = append(out, m)
	}
	return out, nil
}
func (f *fakeMajorRepo) GetByID(ctx context.Context, id int) (*model.Major, error) {
	m, ok := f.majors[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}
func (f *fakeMajorRepo) GetByCode(ctx context.Context, code string) (*model.Major, error) {
	return nil, errors.New("not found")
}
func (f *fakeMajorRepo) Create(ctx context.Context, major *model.Major) error { return nil }
func (f *fakeMajorRepo) Delete(ctx context.Context, id int) error             { return nil }

type fakeDetailRepo struct {
	upserts []model.StudentDetail
	err     error
}

func (f *fakeDetailRepo) Upsert(ctx context.Context, d *model.StudentDetail) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, *d)
	return nil
}
func (f *fakeDetailRepo) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.StudentDetail, error) {
	return nil, errors.New("not found")
}

type fakeRegRepo struct {
	created []*model.Registration
	err     error
}

func (f *fakeRegRepo) Create(ctx context.Context, reg *model.Registration) error {
	if f.err != nil {
		return f.err
	}
	reg.ID = uuid.New()
	reg.CreatedAt = time.Now()
	f.created = append(f.created, reg)
	return nil
}
func (f *fakeRegRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	return nil, errors.New("not found")
}
func (f *fakeRegRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationDetail, error) {
	return nil, nil
}
func (f *fakeRegRepo) List(ctx context.Context, status *model.RegistrationStatus) ([]model.RegistrationDetail, error) {
	return nil, nil
}
func (f *fakeRegRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, reason *string) error {
	return nil
}

type fakeDocRepo struct {
	created []model.Document
	failOn  model.DocumentType
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *model.Document) error {
	if f.failOn != "" && doc.Type == f.failOn {
		return errors.New("insert failed")
	}
	doc.ID = len(f.created) + 1
	f.created = append(f.created, *doc)
	return nil
}
func (f *fakeDocRepo) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]model.Document, error) {
	return f.created, nil
}

// fakeStore records Put calls in order and can fail on a chosen key
// substring.
type fakeStore struct {
	keys     []string
	failWhen string
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if f.failWhen != "" && strings.Contains(key, f.failWhen) {
		return fmt.Errorf("put %s: %w", key, errors.New("store unavailable"))
	}
	f.keys = append(f.keys, key)
	return nil
}
func (f *fakeStore) PublicURL(key string) string { return "/uploads/" + key }

type fakePublisher struct {
	events []RegistrationSubmittedEvent
}

func (f *fakePublisher) PublishSubmitted(ctx context.Context, event RegistrationSubmittedEvent) error {
	f.events = append(f.events, event)
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────

func testFile(name string) *SubmissionFile {
	return &SubmissionFile{
		Filename: name,
		Size:     64,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("content")), nil
		},
	}
}

func allSlotFiles() map[model.DocumentType]*SubmissionFile {
	return map[model.DocumentType]*SubmissionFile{
		model.DocumentCIN:         testFile("cin.pdf"),
		model.DocumentBAC:         testFile("bac.pdf"),
		model.DocumentReleveNotes: testFile("notes.pdf"),
		model.DocumentPhoto:       testFile("photo.jpg"),
	}
}

func validInput(files map[model.DocumentType]*SubmissionFile) *SubmissionInput {
	return &SubmissionInput{
		StudentID:   uuid.New(),
		StudentName: "Test Student",
		CNE:         "G123",
		CIN:         "AB123",
		BirthDate:   time.Date(2006, 4, 15, 0, 0, 0, 0, time.UTC),
		Address:     "12 Rue des Écoles",
		Phone:       "0600000000",
		MajorID:     1,
		Level:       "1ère année",
		Files:       files,
	}
}

type fixture struct {
	years   *fakeYearRepo
	majors  *fakeMajorRepo
	details *fakeDetailRepo
	regs    *fakeRegRepo
	docs    *fakeDocRepo
	store   *fakeStore
	events  *fakePublisher
	svc     *RegistrationService
}

func newFixture() *fixture {
	f := &fixture{
		years: &fakeYearRepo{active: &model.AcademicYear{ID: 1, Name: "2025-2026", IsActive: true}},
		majors: &fakeMajorRepo{majors: map[int]*model.Major{
			1: {ID: 1, Name: "Génie Informatique", Code: "GI"},
		}},
		details: &fakeDetailRepo{},
		regs:    &fakeRegRepo{},
		docs:    &fakeDocRepo{},
		store:   &fakeStore{},
		events:  &fakePublisher{},
	}
	f.svc = NewRegistrationService(f.years, f.majors, f.details, f.regs, f.docs, f.store, f.events, zerolog.Nop())
	return f
}

// ─── Tests ──────────────────────────────────────────────────────────

func TestSubmitSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Submit(context.Background(), validInput(allSlotFiles()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Registration == nil || result.Registration.Status != model.RegistrationPending {
		t.Fatalf("expected pending registration, got %+v", result.Registration)
	}
	if result.FailedSlot != nil {
		t.Errorf("expected no failed slot, got %s", *result.FailedSlot)
	}
	if len(result.Documents) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(result.Documents))
	}

	// Uploads must run in fixed slot order.
	for i, slot := range model.DocumentSlots {
		if result.Documents[i].Type != slot {
			t.Errorf("document %d: expected %s, got %s", i, slot, result.Documents[i].Type)
		}
		if !strings.Contains(f.store.keys[i], string(slot)) {
			t.Errorf("stored key %q missing slot %s", f.store.keys[i], slot)
		}
	}

	// Object keys are scoped under the registration id.
	for _, key := range f.store.keys {
		if !strings.HasPrefix(key, result.Registration.ID.String()+"/") {
			t.Errorf("key %q not scoped under registration id", key)
		}
	}

	if len(f.events.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.events.events))
	}
	if f.events.events[0].DocumentCount != 4 {
		t.Errorf("event document count = %d, want 4", f.events.events[0].DocumentCount)
	}
}

func TestSubmitNoActiveYear(t *testing.T) {
	f := newFixture()
	f.years.active = nil

	result, err := f.svc.Submit(context.Background(), validInput(allSlotFiles()))
	if !errors.Is(err, ErrNoActiveYear) {
		t.Fatalf("expected ErrNoActiveYear, got %v", err)
	}
	if result != nil {
		t.Error("expected nil result before any write")
	}
	if len(f.details.upserts) != 0 || len(f.regs.created) != 0 {
		t.Error("nothing should be written when no year is active")
	}
}

func TestSubmitMajorValidation(t *testing.T) {
	f := newFixture()

	in := validInput(nil)
	in.MajorID = 0
	if _, err := f.svc.Submit(context.Background(), in); !errors.Is(err, ErrMajorRequired) {
		t.Fatalf("expected ErrMajorRequired, got %v", err)
	}

	in = validInput(nil)
	in.MajorID = 99
	if _, err := f.svc.Submit(context.Background(), in); !errors.Is(err, ErrMajorNotFound) {
		t.Fatalf("expected ErrMajorNotFound, got %v", err)
	}

	if len(f.details.upserts) != 0 || len(f.regs.created) != 0 {
		t.Error("validation failures must not write anything")
	}
}

func TestSubmitUploadFailureKeepsPrefix(t *testing.T) {
	f := newFixture()
	// Third slot fails at the store; first two uploads succeed.
	f.store.failWhen = string(model.DocumentReleveNotes)

	result, err := f.svc.Submit(context.Background(), validInput(allSlotFiles()))
	if err == nil {
		t.Fatal("expected an error from the halted upload")
	}
	if result == nil {
		t.Fatal("partial result expected once the registration row exists")
	}

	if result.FailedSlot == nil || *result.FailedSlot != model.DocumentReleveNotes {
		t.Fatalf("expected failed slot RELEVE_NOTES, got %v", result.FailedSlot)
	}

	// No rollback: registration and the earlier documents stay.
	if len(f.regs.created) != 1 {
		t.Errorf("registration row should persist, got %d rows", len(f.regs.created))
	}
	if len(result.Documents) != 2 {
		t.Fatalf("expected 2 stored documents, got %d", len(result.Documents))
	}
	if result.Documents[0].Type != model.DocumentCIN || result.Documents[1].Type != model.DocumentBAC {
		t.Errorf("unexpected document prefix: %+v", result.Documents)
	}

	// PHOTO never attempted after the halt.
	for _, key := range f.store.keys {
		if strings.Contains(key, string(model.DocumentPhoto)) {
			t.Error("upload after the failed slot should not run")
		}
	}

	// No event on partial submission.
	if len(f.events.events) != 0 {
		t.Errorf("expected no published events, got %d", len(f.events.events))
	}
}

func TestSubmitDocumentRowFailure(t *testing.T) {
	f := newFixture()
	// Upload succeeds but the row insert fails; the slot still counts as
	// failed and the sequence halts.
	f.docs.failOn = model.DocumentBAC

	result, err := f.svc.Submit(context.Background(), validInput(allSlotFiles()))
	if err == nil {
		t.Fatal("expected an error")
	}
	if result.FailedSlot == nil || *result.FailedSlot != model.DocumentBAC {
		t.Fatalf("expected failed slot BAC, got %v", result.FailedSlot)
	}
	if len(result.Documents) != 1 {
		t.Errorf("expected 1 stored document, got %d", len(result.Documents))
	}
}

func TestSubmitUnsupportedExtension(t *testing.T) {
	f := newFixture()

	files := map[model.DocumentType]*SubmissionFile{
		model.DocumentCIN: testFile("cin.exe"),
	}
	result, err := f.svc.Submit(context.Background(), validInput(files))
	if !errors.Is(err, storage.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if result == nil || result.FailedSlot == nil || *result.FailedSlot != model.DocumentCIN {
		t.Fatal("failed slot should name CIN")
	}
	// Registration row was created before the upload step.
	if len(f.regs.created) != 1 {
		t.Errorf("registration row should persist, got %d", len(f.regs.created))
	}
}

func TestSubmitWithoutFiles(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Submit(context.Background(), validInput(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.regs.created) != 1 {
		t.Fatalf("expected exactly 1 registration, got %d", len(f.regs.created))
	}
	if result.Registration.Status != model.RegistrationPending {
		t.Errorf("status = %s, want pending", result.Registration.Status)
	}
	if len(result.Documents) != 0 {
		t.Errorf("expected 0 documents, got %d", len(result.Documents))
	}
	if len(f.docs.created) != 0 {
		t.Errorf("expected 0 document rows, got %d", len(f.docs.created))
	}
	if result.FailedSlot != nil {
		t.Errorf("expected no failed slot, got %s", *result.FailedSlot)
	}
}

func TestSubmitSkipsMissingSlots(t *testing.T) {
	f := newFixture()

	files := map[model.DocumentType]*SubmissionFile{
		model.DocumentBAC: testFile("bac.pdf"),
	}
	result, err := f.svc.Submit(context.Background(), validInput(files))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Documents) != 1 || result.Documents[0].Type != model.DocumentBAC {
		t.Fatalf("expected single BAC document, got %+v", result.Documents)
	}
}

func TestSubmitUpsertsDetailBeforeRegistration(t *testing.T) {
	f := newFixture()
	f.details.err = errors.New("db down")

	result, err := f.svc.Submit(context.Background(), validInput(nil))
	if err == nil {
		t.Fatal("expected error")
	}
	if result != nil {
		t.Error("no result expected when the detail upsert fails")
	}
	if len(f.regs.created) != 0 {
		t.Error("registration must not exist when the detail upsert failed")
	}
}

func TestGetContext(t *testing.T) {
	f := newFixture()

	regCtx, err := f.svc.GetContext(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if regCtx.AcademicYear == nil || regCtx.AcademicYear.Name != "2025-2026" {
		t.Errorf("unexpected active year: %+v", regCtx.AcademicYear)
	}
	if len(regCtx.Majors) != 1 {
		t.Errorf("expected 1 major, got %d", len(regCtx.Majors))
	}
}

func TestGetContextNoActiveYear(t *testing.T) {
	f := newFixture()
	f.years.active = nil

	if _, err := f.svc.GetContext(context.Background()); !errors.Is(err, ErrNoActiveYear) {
		t.Fatalf("expected ErrNoActiveYear, got %v", err)
	}
}
