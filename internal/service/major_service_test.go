package service

import (
	"context"
	"errors"
	"testing"

	"github.com/madaris/school-app-backend/internal/model"
)

// codeMajorRepo tracks majors by code for uniqueness checks.
type codeMajorRepo struct {
	byCode map[string]*model.Major
	nextID int
}

func (f *codeMajorRepo) GetAll(ctx context.Context) ([]*model.Major, error) { return nil, nil }
func (f *codeMajorRepo) GetByID(ctx context.Context, id int) (*model.Major, error) {
	for _, m := range f.byCode {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.New("not found")
}
func (f *codeMajorRepo) GetByCode(ctx context.Context, code string) (*model.Major, error) {
	m, ok := f.byCode[code]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}
func (f *codeMajorRepo) Create(ctx context.Context, major *model.Major) error {
	f.nextID++
	major.ID = f.nextID
	f.byCode[major.Code] = major
	return nil
}
func (f *codeMajorRepo) Delete(ctx context.Context, id int) error {
	for code, m := range f.byCode {
		if m.ID == id {
			delete(f.byCode, code)
			return nil
		}
	}
	return errors.New("not found")
}

func TestCreateMajorNormalizesCode(t *testing.T) {
	svc := NewMajorService(&codeMajorRepo{byCode: map[string]*model.Major{}})

	major, err := svc.CreateMajor(context.Background(), "  Génie Informatique ", " gi ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if major.Name != "Génie Informatique" {
		t.Errorf("name = %q", major.Name)
	}
	if major.Code != "GI" {
		t.Errorf("code = %q, want GI", major.Code)
	}
}

func TestCreateMajorRejectsDuplicateCode(t *testing.T) {
	repo := &codeMajorRepo{byCode: map[string]*model.Major{}}
	svc := NewMajorService(repo)

	if _, err := svc.CreateMajor(context.Background(), "Génie Informatique", "GI"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateMajor(context.Background(), "Another", "gi"); !errors.Is(err, ErrMajorCodeTaken) {
		t.Fatalf("expected ErrMajorCodeTaken, got %v", err)
	}
}

func TestCreateMajorRequiresFields(t *testing.T) {
	svc := NewMajorService(&codeMajorRepo{byCode: map[string]*model.Major{}})

	if _, err := svc.CreateMajor(context.Background(), "  ", "GI"); !errors.Is(err, ErrMajorFieldsMiss) {
		t.Errorf("blank name: expected ErrMajorFieldsMiss, got %v", err)
	}
	if _, err := svc.CreateMajor(context.Background(), "Name", ""); !errors.Is(err, ErrMajorFieldsMiss) {
		t.Errorf("blank code: expected ErrMajorFieldsMiss, got %v", err)
	}
}

func TestDeleteMajor(t *testing.T) {
	repo := &codeMajorRepo{byCode: map[string]*model.Major{}}
	svc := NewMajorService(repo)

	major, err := svc.CreateMajor(context.Background(), "Techniques de Management", "TM")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteMajor(context.Background(), major.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteMajor(context.Background(), major.ID); err == nil {
		t.Error("expected error deleting a missing major")
	}
}
