package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coursely/coursely-backend/internal/config"
	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/coursely/coursely-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type staticAdminStore struct {
	admin *model.Admin
}

func (s *staticAdminStore) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	if s.admin != nil && s.admin.ID == id {
		return s.admin, nil
	}
	return nil, repository.ErrAdminNotFound
}

func (s *staticAdminStore) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if s.admin != nil && s.admin.Email == email {
		return s.admin, nil
	}
	return nil, repository.ErrAdminNotFound
}

func (s *staticAdminStore) Create(ctx context.Context, a *model.Admin) error { return nil }

func newGateRouter(t *testing.T, ttl time.Duration, admin *model.Admin) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SessionSecret: "0123456789abcdef0123456789abcdef",
		SessionTTL:    ttl,
		BcryptCost:    bcrypt.MinCost,
	}
	auth := service.NewAuthService(cfg)
	accounts := service.NewAccountService(&staticAdminStore{admin: admin}, auth, zerolog.Nop())

	r := gin.New()
	r.GET("/protected", RequireAdmin(auth, accounts), func(c *gin.Context) {
		current := CurrentAdmin(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": current.ID})
	})
	return r, auth
}

func errCodeOf(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	return resp.Error.Code
}

func TestRequireAdmin_MissingToken(t *testing.T) {
	r, _ := newGateRouter(t, time.Hour, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if code := errCodeOf(t, w.Body.Bytes()); code != "TOKEN_REQUIRED" {
		t.Errorf("code: got %q", code)
	}
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	r, _ := newGateRouter(t, time.Hour, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if code := errCodeOf(t, w.Body.Bytes()); code != "TOKEN_INVALID" {
		t.Errorf("code: got %q", code)
	}
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	admin := &model.Admin{ID: 5, Email: "a@x.com"}
	r, auth := newGateRouter(t, -time.Minute, admin)

	token, err := auth.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if code := errCodeOf(t, w.Body.Bytes()); code != "TOKEN_EXPIRED" {
		t.Errorf("code: got %q", code)
	}
}

func TestRequireAdmin_ValidCookie(t *testing.T) {
	admin := &model.Admin{ID: 5, Email: "a@x.com", FirstName: "Jane", LastName: "Doe"}
	r, auth := newGateRouter(t, time.Hour, admin)

	token, err := auth.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAdmin_BearerFallback(t *testing.T) {
	admin := &model.Admin{ID: 5, Email: "a@x.com"}
	r, auth := newGateRouter(t, time.Hour, admin)

	token, err := auth.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", w.Code, w.Body.String())
	}
}

// A valid token for an admin that no longer exists must not authenticate.
func TestRequireAdmin_DeletedAdmin(t *testing.T) {
	admin := &model.Admin{ID: 5, Email: "a@x.com"}
	r, auth := newGateRouter(t, time.Hour, nil)

	token, err := auth.GenerateToken(admin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
}
