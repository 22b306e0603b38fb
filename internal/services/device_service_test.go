package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/aurybot/aury-backend/internal/domain/device"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
	"github.com/aurybot/aury-backend/internal/testutil"
)

func TestDeviceService_Register_Cap(t *testing.T) {
	repo := testutil.NewMockDeviceRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewDeviceService(repo, log)

	ctx := context.Background()
	for i := 0; i < device.MaxPerUser; i++ {
		if _, err := service.Register(ctx, "u1", &device.Device{Name: "lamp", Type: device.TypeLight}); err != nil {
			t.Fatalf("Register() #%d error = %v", i+1, err)
		}
	}

	_, err := service.Register(ctx, "u1", &device.Device{Name: "one too many", Type: device.TypeSpeaker})
	appErr := errors.GetAppError(err)
	if appErr.StatusCode != http.StatusForbidden {
		t.Errorf("Register() past cap status = %d, want 403", appErr.StatusCode)
	}

	// Another user still has a full allowance
	if _, err := service.Register(ctx, "u2", &device.Device{Name: "tv", Type: device.TypeOther}); err != nil {
		t.Errorf("Register() for second user error = %v", err)
	}
}

func TestDeviceService_Update_TogglesAndMergesState(t *testing.T) {
	repo := testutil.NewMockDeviceRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewDeviceService(repo, log)

	ctx := context.Background()
	d, err := service.Register(ctx, "u1", &device.Device{
		Name:  "termostato",
		Type:  device.TypeThermostat,
		State: map[string]interface{}{"target": 21.0},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := service.Update(ctx, "u1", d.ID, map[string]interface{}{
		"on":    true,
		"state": map[string]interface{}{"target": 19.5},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.On {
		t.Error("Update() did not toggle the device on")
	}
	if updated.State["target"] != 19.5 {
		t.Errorf("Update() state target = %v, want 19.5", updated.State["target"])
	}
	if updated.Name != "termostato" {
		t.Errorf("Update() name changed unexpectedly: %v", updated.Name)
	}
}

func TestDeviceService_OwnerScoping(t *testing.T) {
	repo := testutil.NewMockDeviceRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewDeviceService(repo, log)

	ctx := context.Background()
	d, _ := service.Register(ctx, "u1", &device.Device{Name: "lamp", Type: device.TypeLight})

	if _, err := service.GetByID(ctx, "u2", d.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() by non-owner error = %v, want not found", err)
	}
	if err := service.Delete(ctx, "u2", d.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() by non-owner error = %v, want not found", err)
	}
}
