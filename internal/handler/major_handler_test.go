package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

type fakeMajorService struct {
	deleteErr error
}

func (f *fakeMajorService) GetAllMajors(ctx context.Context) ([]*model.Major, error) {
	return nil, nil
}
func (f *fakeMajorService) CreateMajor(ctx context.Context, name, code string) (*model.Major, error) {
	return &model.Major{ID: 1, Name: name, Code: code}, nil
}
func (f *fakeMajorService) DeleteMajor(ctx context.Context, id int) error {
	return f.deleteErr
}

func deleteMajor(svc *fakeMajorService, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMajorHandler(svc)
	r.DELETE("/majors/:id", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteMajorOK(t *testing.T) {
	w := deleteMajor(&fakeMajorService{}, "/majors/1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestDeleteMajorInvalidID(t *testing.T) {
	w := deleteMajor(&fakeMajorService{}, "/majors/abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDeleteMajorStillReferenced(t *testing.T) {
	// A major with registrations pointing at it is a conflict, not a
	// missing resource.
	w := deleteMajor(&fakeMajorService{deleteErr: repository.ErrMajorReferenced}, "/majors/1")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}
