package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/bizdir-backend/pkg/courier"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// syncTimeout bounds one run of the job
const syncTimeout = 2 * time.Minute

// CitySyncer refreshes the stored city list from the courier API
type CitySyncer interface {
	SyncCities(ctx context.Context) (int, error)
}

// CitySyncScheduler periodically copies courier cities into the database
type CitySyncScheduler struct {
	cron   *cron.Cron
	syncer CitySyncer
	spec   string
}

// NewCitySyncScheduler builds a scheduler for a standard 5-field cron spec.
// An empty spec leaves the job disabled.
func NewCitySyncScheduler(syncer CitySyncer, spec string) *CitySyncScheduler {
	return &CitySyncScheduler{
		cron:   cron.New(),
		syncer: syncer,
		spec:   spec,
	}
}

func (s *CitySyncScheduler) Start() error {
	if s.spec == "" {
		logger.Info("City sync job disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		logger.Error("Failed to add cron job for city sync", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("City sync scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *CitySyncScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	logger.Info("Starting scheduled city sync")
	count, err := s.syncer.SyncCities(ctx)
	if errors.Is(err, courier.ErrNotConfigured) {
		logger.Info("Skipping city sync, courier API not configured")
		return
	}
	if err != nil {
		logger.Error("Scheduled city sync failed", err)
		return
	}

	logger.Info("Scheduled city sync finished", map[string]interface{}{
		"cities": count,
	})
}

// Stop waits for a running job to finish
func (s *CitySyncScheduler) Stop() {
	logger.Info("Stopping city sync scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("City sync scheduler stopped")
}
