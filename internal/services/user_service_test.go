package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func TestUserService_Register(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	tests := []struct {
		name     string
		email    string
		wantPlan string
	}{
		{
			name:     "regular registration starts on free",
			email:    "ana@example.com",
			wantPlan: plan.Free,
		},
		{
			name:     "allowlisted email gets premium",
			email:    "vip@example.com",
			wantPlan: plan.Premium,
		},
		{
			name:     "allowlist match ignores case",
			email:    "VIP@Example.com",
			wantPlan: plan.Premium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := testutil.NewMockUserRepository()
			svc := NewUserService(repo, "vip@example.com", log)

			u, err := svc.Register(ctx, tt.email, "secreto123", "Ana")
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if u.Plan != tt.wantPlan {
				t.Errorf("Register() plan = %v, want %v", u.Plan, tt.wantPlan)
			}
			if u.PasswordHash == "" || u.PasswordHash == "secreto123" {
				t.Error("Register() must store a password hash, not the password")
			}
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, "", log)

	ctx := context.Background()
	if _, err := service.Register(ctx, "ana@example.com", "secreto123", "Ana"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := service.Register(ctx, "ana@example.com", "otro456", "Ana B")
	appErr := errors.GetAppError(err)
	if appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Register() duplicate error code = %v, want %v", appErr.Code, errors.ErrCodeConflict)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, "", log)

	ctx := context.Background()
	if _, err := service.Register(ctx, "ana@example.com", "secreto123", "Ana"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			email:    "ana@example.com",
			password: "secreto123",
			wantErr:  false,
		},
		{
			name:     "email is case insensitive",
			email:    "Ana@Example.com",
			password: "secreto123",
			wantErr:  false,
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "incorrecta",
			wantErr:  true,
		},
		{
			name:     "unknown email",
			email:    "nadie@example.com",
			password: "secreto123",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				appErr := errors.GetAppError(err)
				if appErr.Code != errors.ErrCodeUnauthorized {
					t.Errorf("Authenticate() error code = %v, want %v", appErr.Code, errors.ErrCodeUnauthorized)
				}
			} else if u == nil {
				t.Error("Authenticate() returned nil user")
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, "", log)

	ctx := context.Background()
	u, _ := service.Register(ctx, "ana@example.com", "secreto123", "Ana")

	updated, err := service.UpdateProfile(ctx, u.ID, map[string]interface{}{
		"name": "Ana María",
		"preferences": map[string]interface{}{
			"language": "es",
		},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if updated.Name != "Ana María" {
		t.Errorf("UpdateProfile() name = %v", updated.Name)
	}
	if updated.Preferences["language"] != "es" {
		t.Errorf("UpdateProfile() preferences = %v", updated.Preferences)
	}
	if updated.Email != "ana@example.com" {
		t.Errorf("UpdateProfile() must not touch email, got %v", updated.Email)
	}
}

func TestUserService_AssistantConfig(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, "", log)

	ctx := context.Background()
	u, _ := service.Register(ctx, "ana@example.com", "secreto123", "Ana")

	cfg, err := service.UpdateAssistantConfig(ctx, u.ID, map[string]interface{}{
		"name": "Jarvis",
		"tone": "formal",
	})
	if err != nil {
		t.Fatalf("UpdateAssistantConfig() error = %v", err)
	}
	if cfg["name"] != "Jarvis" || cfg["tone"] != "formal" {
		t.Errorf("UpdateAssistantConfig() = %v", cfg)
	}

	// Partial update merges
	cfg, err = service.UpdateAssistantConfig(ctx, u.ID, map[string]interface{}{"tone": "amable"})
	if err != nil {
		t.Fatalf("UpdateAssistantConfig() error = %v", err)
	}
	if cfg["name"] != "Jarvis" || cfg["tone"] != "amable" {
		t.Errorf("UpdateAssistantConfig() after merge = %v", cfg)
	}

	got, err := service.GetAssistantConfig(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetAssistantConfig() error = %v", err)
	}
	if got["name"] != "Jarvis" {
		t.Errorf("GetAssistantConfig() = %v", got)
	}
}

func TestUserService_TrackDevice(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockUserRepository()
	service := NewUserService(repo, "", log)
	ctx := context.Background()

	u, err := service.Register(ctx, "ana@example.com", "secreto123", "Ana")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Up to the cap, each new device is recorded
	for i, id := range []string{"d1", "d2", "d3", "d4"} {
		if err := service.TrackDevice(ctx, u.ID, id); err != nil {
			t.Fatalf("TrackDevice() #%d error = %v", i+1, err)
		}
	}
	if got := len(repo.Users[u.ID].DeviceIDs); got != user.MaxDevices {
		t.Fatalf("tracked devices = %d, want %d", got, user.MaxDevices)
	}

	// A fifth device is rejected
	err = service.TrackDevice(ctx, u.ID, "d5")
	appErr := errors.GetAppError(err)
	if appErr.StatusCode != http.StatusForbidden {
		t.Errorf("TrackDevice() past cap status = %d, want 403", appErr.StatusCode)
	}

	// Known devices and absent device ids stay a no-op
	if err := service.TrackDevice(ctx, u.ID, "d2"); err != nil {
		t.Errorf("TrackDevice() with known device error = %v", err)
	}
	if err := service.TrackDevice(ctx, u.ID, ""); err != nil {
		t.Errorf("TrackDevice() without device error = %v", err)
	}
	if got := len(repo.Users[u.ID].DeviceIDs); got != user.MaxDevices {
		t.Errorf("tracked devices after no-ops = %d, want %d", got, user.MaxDevices)
	}
}
