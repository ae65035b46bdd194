package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/repository/postgresql"
)

type MaintenanceJobs struct {
	refreshTokenRepo postgresql.RefreshTokenRepository
}

func NewMaintenanceJobs(refreshTokenRepo postgresql.RefreshTokenRepository) *MaintenanceJobs {
	return &MaintenanceJobs{refreshTokenRepo: refreshTokenRepo}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) error {
	// Hourly, on the hour.
	return scheduler.AddJob("purge_expired_refresh_tokens", "0 * * * *", j.PurgeExpiredRefreshTokens)
}

// PurgeExpiredRefreshTokens removes refresh tokens past their expiry. Revoked
// rows are kept until they expire so reuse attempts stay detectable.
func (j *MaintenanceJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to purge refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Purged expired refresh tokens", "count", deleted)
	}
	return nil
}
