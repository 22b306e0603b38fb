package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/errors"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo user.Repository
	// premiumEmail is granted premium at registration without payment
	premiumEmail string
	logger       *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, premiumEmail string, log *logger.Logger) user.Service {
	return &UserService{
		repo:         repo,
		premiumEmail: strings.ToLower(premiumEmail),
		logger:       log,
	}
}

// Register creates a new account with a hashed password
func (s *UserService) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:           email,
		Name:            name,
		PasswordHash:    string(hash),
		Plan:            plan.Free,
		Preferences:     map[string]interface{}{},
		AssistantConfig: map[string]interface{}{},
	}
	if s.premiumEmail != "" && email == s.premiumEmail {
		u.Plan = plan.Premium
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"plan":    u.Plan,
	}).Info("User registered")

	return u, nil
}

// Authenticate verifies credentials and returns the user
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	return u, nil
}

// TrackDevice records the device an account signs in from. A device
// already on file is a no-op; a new device past the cap rejects the
// sign-in.
func (s *UserService) TrackDevice(ctx context.Context, userID, deviceID string) error {
	if deviceID == "" {
		return nil
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, id := range u.DeviceIDs {
		if id == deviceID {
			return nil
		}
	}

	if len(u.DeviceIDs) >= user.MaxDevices {
		return errors.Forbidden(fmt.Sprintf("Límite de %d dispositivos alcanzado para esta cuenta", user.MaxDevices))
	}

	u.DeviceIDs = append(u.DeviceIDs, deviceID)
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to track device")
		return err
	}

	return nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

// UpdateProfile applies a partial update to profile fields. Only the
// supplied fields change; preferences merge key by key.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"].(string); ok {
		u.Name = v
	}
	if prefs, ok := updates["preferences"].(map[string]interface{}); ok {
		if u.Preferences == nil {
			u.Preferences = map[string]interface{}{}
		}
		for k, v := range prefs {
			u.Preferences[k] = v
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return nil, err
	}

	return u, nil
}

// GetAssistantConfig returns the assistant configuration of a user
func (s *UserService) GetAssistantConfig(ctx context.Context, userID string) (map[string]interface{}, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.AssistantConfig == nil {
		return map[string]interface{}{}, nil
	}
	return u.AssistantConfig, nil
}

// UpdateAssistantConfig merges updates into the assistant configuration
func (s *UserService) UpdateAssistantConfig(ctx context.Context, userID string, updates map[string]interface{}) (map[string]interface{}, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.AssistantConfig == nil {
		u.AssistantConfig = map[string]interface{}{}
	}
	for k, v := range updates {
		u.AssistantConfig[k] = v
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update assistant config")
		return nil, err
	}

	return u.AssistantConfig, nil
}

// UpgradePlan switches a user to the given plan until expiry
func (s *UserService) UpgradePlan(ctx context.Context, userID, planName string, expiresAt *time.Time) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	u.Plan = planName
	u.PremiumExpiresAt = expiresAt
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to upgrade plan")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"plan":    planName,
	}).Info("User plan changed")

	return nil
}
