package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	cleanup *CleanupService
	log     *zap.Logger
	stopCh  chan struct{}
}

func NewScheduler(cleanup *CleanupService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cleanup: cleanup,
		log:     log,
		stopCh:  make(chan struct{}),
	}
}

// Start запускает планировщик задач
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting cleanup scheduler")
	go s.runHousekeeping(ctx)
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.log.Info("stopping cleanup scheduler")
	close(s.stopCh)
}

// runHousekeeping прибирается раз в час
func (s *Scheduler) runHousekeeping(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Выполняем сразу при старте
	if err := s.cleanup.RunFullCleanup(ctx); err != nil {
		s.log.Error("initial cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if err := s.cleanup.RunFullCleanup(ctx); err != nil {
				s.log.Error("cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("housekeeping stopped")
			return
		case <-ctx.Done():
			s.log.Info("housekeeping cancelled")
			return
		}
	}
}

// RunOnceNow выполняет полную очистку немедленно (для тестирования)
func (s *Scheduler) RunOnceNow(ctx context.Context) error {
	return s.cleanup.RunFullCleanup(ctx)
}
