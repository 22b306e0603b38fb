package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aurybot/aury-backend/internal/domain/plan"
	"github.com/aurybot/aury-backend/internal/domain/user"
	"github.com/aurybot/aury-backend/internal/pkg/logger"
)

// PremiumExpiry downgrades users whose premium period has lapsed
type PremiumExpiry struct {
	userRepo    user.Repository
	userService user.Service
	cron        *cron.Cron
	logger      *logger.Logger
}

// NewPremiumExpiry creates a new premium expiry worker
func NewPremiumExpiry(userRepo user.Repository, userService user.Service, log *logger.Logger) *PremiumExpiry {
	return &PremiumExpiry{
		userRepo:    userRepo,
		userService: userService,
		cron:        cron.New(),
		logger:      log,
	}
}

// Start schedules the daily expiry sweep and runs one immediately to
// catch users that lapsed while the server was down.
func (w *PremiumExpiry) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc("0 3 * * *", func() {
		w.sweep(ctx)
	}); err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("Premium expiry worker started")

	go w.sweep(ctx)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (w *PremiumExpiry) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("Premium expiry worker stopped")
}

func (w *PremiumExpiry) sweep(ctx context.Context) {
	now := time.Now().UTC()

	expired, err := w.userRepo.ListPremiumExpired(ctx, now.Format(time.RFC3339))
	if err != nil {
		w.logger.ErrorWithErr(err, "Failed to list expired premium users")
		return
	}

	for _, u := range expired {
		if err := w.userService.UpgradePlan(ctx, u.ID, plan.Free, nil); err != nil {
			w.logger.WithFields(map[string]interface{}{
				"user_id": u.ID,
			}).Error("Failed to downgrade expired premium user")
			continue
		}

		w.logger.WithFields(map[string]interface{}{
			"user_id": u.ID,
			"email":   u.Email,
		}).Info("Premium plan expired, user downgraded")
	}

	if len(expired) > 0 {
		w.logger.WithFields(map[string]interface{}{
			"count": len(expired),
		}).Info("Premium expiry sweep finished")
	}
}
