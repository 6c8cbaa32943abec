package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/service"
)

type fakeValidator struct {
	claims *service.Claims
	err    error
}

func (f *fakeValidator) ValidateToken(tokenStr string) (*service.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func claimsFor(role model.Role) *service.Claims {
	return &service.Claims{
		UserID:   uuid.New(),
		Role:     role,
		Email:    "user@example.com",
		FullName: "Test User",
	}
}

func newGateRouter(v TokenValidator, roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(v)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newGateRouter(&fakeValidator{claims: claimsFor(model.RoleStudent)})

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newGateRouter(&fakeValidator{err: errors.New("bad signature")})

	w := doRequest(r, "Bearer whatever")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthUnknownRole(t *testing.T) {
	r := newGateRouter(&fakeValidator{err: model.ErrUnknownRole})

	w := doRequest(r, "Bearer whatever")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	r := newGateRouter(&fakeValidator{claims: claimsFor(model.RoleStudent)})

	w := doRequest(r, "Bearer token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuthQueryFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newGateRouter(&fakeValidator{claims: claimsFor(model.RoleAgent)})

	req := httptest.NewRequest(http.MethodGet, "/protected?token=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via query token, got %d", w.Code)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	r := newGateRouter(&fakeValidator{claims: claimsFor(model.RoleAgent)}, model.RoleAgent, model.RoleAdmin)

	w := doRequest(r, "Bearer token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	r := newGateRouter(&fakeValidator{claims: claimsFor(model.RoleStudent)}, model.RoleAdmin)

	w := doRequest(r, "Bearer token")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
