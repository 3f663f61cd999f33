package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/logging"
)

// Revalidator refreshes every cached administrator profile.
type Revalidator interface {
	RevalidateAll(ctx context.Context) (int, error)
}

// StartJobs schedules profile revalidation on spec and starts the scheduler.
// An empty spec disables the job and returns a nil scheduler.
func StartJobs(spec string, timeout time.Duration, profiles Revalidator, logger *zap.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	log := logging.OrNop(logger).Named("cron")
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		RevalidateProfiles(profiles, timeout, log)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule profile revalidation %q: %w", spec, err)
	}

	c.Start()
	log.Info("profile revalidation scheduled", zap.String("spec", spec))
	return c, nil
}

// RevalidateProfiles runs one revalidation pass.
func RevalidateProfiles(profiles Revalidator, timeout time.Duration, log *zap.Logger) {
	log.Info("revalidating cached profiles")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := profiles.RevalidateAll(ctx)
	if err != nil {
		log.Error("profile revalidation stopped", zap.Int("refreshed", n), zap.Error(err))
		return
	}
	log.Info("profiles revalidated", zap.Int("refreshed", n))
}
