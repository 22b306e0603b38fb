package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aurybot/aury-backend/internal/config"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/pkg/validator"
	"github.com/aurybot/aury-backend/internal/services"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func newAuthRouter(t *testing.T) chi.Router {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	userService := services.NewUserService(users, "", log)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
	h := NewAuthHandler(userService, cfg, log, validator.New())

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_RegisterSetsCookies(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(router, "/api/auth/register",
		`{"email":"ana@example.com","password":"secreto123","name":"Ana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("Register envelope not successful: %s", rec.Body.String())
	}

	cookies := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	for _, name := range []string{"accessToken", "refreshToken"} {
		if cookies[name] == "" {
			t.Errorf("Register did not set the %s cookie", name)
		}
	}
}

func TestAuthHandler_Login_DeviceCap(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(router, "/api/auth/register",
		`{"email":"ana@example.com","password":"secreto123","name":"Ana","device_id":"d1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	login := func(deviceID string) *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"email":"ana@example.com","password":"secreto123","device_id":%q}`, deviceID)
		return postJSON(router, "/api/auth/login", body)
	}

	// Three more devices fill the allowance
	for _, id := range []string{"d2", "d3", "d4"} {
		if rec := login(id); rec.Code != http.StatusOK {
			t.Fatalf("login from %s status = %d, want 200\nbody: %s", id, rec.Code, rec.Body.String())
		}
	}

	// A fifth device is rejected
	if rec := login("d5"); rec.Code != http.StatusForbidden {
		t.Fatalf("login from fifth device status = %d, want 403\nbody: %s", rec.Code, rec.Body.String())
	}

	// Known devices still sign in
	if rec := login("d1"); rec.Code != http.StatusOK {
		t.Errorf("login from known device status = %d, want 200", rec.Code)
	}

	// So do clients that do not report a device id
	rec = postJSON(router, "/api/auth/login", `{"email":"ana@example.com","password":"secreto123"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("login without device id status = %d, want 200", rec.Code)
	}
}
