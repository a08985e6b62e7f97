package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"warung/internal/cart"
	"warung/internal/config"
	"warung/internal/domain"
	"warung/internal/service/auth"
)

type stubAuthService struct {
	users map[string]*domain.User // token -> user
}

func (s *stubAuthService) Register(_ context.Context, in auth.RegisterInput) (*domain.User, error) {
	if in.Email == "taken@example.com" {
		return nil, domain.ErrAlreadyExists
	}
	return &domain.User{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Name: in.Name, Email: in.Email, Role: domain.RoleCustomer}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*domain.User, string, error) {
	if password != "Sup3rSecret" {
		return nil, "", auth.ErrInvalidCredentials
	}
	u := &domain.User{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Email: email, Role: domain.RoleCustomer}
	return u, "valid-token", nil
}

func (s *stubAuthService) UserFromToken(_ context.Context, token string) (*domain.User, error) {
	u, ok := s.users[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return u, nil
}

func (s *stubAuthService) SessionTTLSeconds() int { return int(48 * time.Hour / time.Second) }

func newAuthRouter(t *testing.T, svc AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reconciler, err := cart.NewReconciler(cart.Config{Secret: []byte("test-secret")}, menuCatalog())
	if err != nil {
		t.Fatalf("new reconciler: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	router, err := buildRouter(logger, nil, Deps{CartSvc: reconciler, AuthSvc: svc}, config.Config{})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	body := `{"email":"budi@example.com","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			found = c
		}
	}
	if found == nil || found.Value == "" {
		t.Fatal("expected session cookie")
	}
	if !found.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	body := `{"email":"budi@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	body := `{"name":"Budi","email":"taken@example.com","password":"Sup3rSecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestMe_RequiresSession(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMe_WithSession(t *testing.T) {
	svc := &stubAuthService{users: map[string]*domain.User{
		"valid-token": {ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Name: "Budi", Email: "budi@example.com", Role: domain.RoleCustomer},
	}}
	router := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "valid-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data userResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Email != "budi@example.com" {
		t.Fatalf("unexpected user %+v", resp.Data)
	}
}

func TestAdminRoutes_ForbiddenForCustomer(t *testing.T) {
	svc := &stubAuthService{users: map[string]*domain.User{
		"customer-token": {ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Role: domain.RoleCustomer},
	}}
	router := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "customer-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := newAuthRouter(t, &stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value == "" && c.MaxAge < 0 {
			return
		}
	}
	t.Fatal("expected session cookie deletion")
}
