package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context, jti string, remaining time.Duration) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	return s.logoutFn(ctx, jti, remaining)
}

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id int) (*domain.User, error)
	createFn func(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, actor *domain.User, id int, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actor *domain.User, id int) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }
func (s *stubUserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.getFn(ctx, id)
}
func (s *stubUserService) Create(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, input)
}
func (s *stubUserService) Update(ctx context.Context, actor *domain.User, id int, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, input)
}
func (s *stubUserService) Delete(ctx context.Context, actor *domain.User, id int) error {
	return s.deleteFn(ctx, actor, id)
}

func newTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{ID: 1, Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("missing token in response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"x"}`)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", "not-json")
	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesRemainingLifetime(t *testing.T) {
	var gotJTI string
	var gotRemaining time.Duration
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, jti string, remaining time.Duration) error {
			gotJTI = jti
			gotRemaining = remaining
			return nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Set("user_id", 1)
	c.Set("username", "alice")
	c.Set("role", domain.RoleAdmin)
	c.Set("jti", "tok-9")
	c.Set("token_expiry", time.Now().Add(30*time.Minute))

	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotJTI != "tok-9" {
		t.Fatalf("jti = %q", gotJTI)
	}
	if gotRemaining <= 0 || gotRemaining > 30*time.Minute {
		t.Fatalf("remaining = %v", gotRemaining)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, &stubUserService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/logout", "")
	err := handler.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	users := &stubUserService{
		getFn: func(ctx context.Context, id int) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("unexpected id %d", id)
			}
			return &domain.User{ID: 7, Username: "alice", Role: domain.RoleEditor}, nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set("user_id", 7)
	c.Set("username", "alice")
	c.Set("role", domain.RoleEditor)

	if err := handler.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
