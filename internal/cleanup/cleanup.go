package cleanup

import (
	"context"
	"time"

	"beadshop/internal/repository"

	"go.uber.org/zap"
)

const (
	// сессии живут по last_seen_at, кука может пережить запись
	sessionMaxAge = 30 * 24 * time.Hour
	// NEW-корзина без движения столько времени считается брошенной
	cartMaxIdle = 30 * 24 * time.Hour
)

type CleanupService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCleanupService(repo *repository.Repository, log *zap.Logger) *CleanupService {
	return &CleanupService{
		repo: repo,
		log:  log,
	}
}

// CleanupOldSessions удаляет сессии, которых давно не было видно. Корзины
// при этом остаются: заказы ссылаются на них по cart_id.
func (c *CleanupService) CleanupOldSessions(ctx context.Context) error {
	cutoff := time.Now().Add(-sessionMaxAge)

	deleted, err := c.repo.Sessions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to cleanup old sessions", zap.Error(err))
		return err
	}
	if deleted > 0 {
		c.log.Info("cleaned up old sessions", zap.Int64("count", deleted))
	}
	return nil
}

// CleanupAbandonedCarts переводит давно не менявшиеся NEW-корзины в OLD,
// чтобы витрина не цеплялась за мёртвые корзины.
func (c *CleanupService) CleanupAbandonedCarts(ctx context.Context) error {
	cutoff := time.Now().Add(-cartMaxIdle)

	marked, err := c.repo.Carts.MarkStale(ctx, cutoff)
	if err != nil {
		c.log.Error("failed to cleanup abandoned carts", zap.Error(err))
		return err
	}
	if marked > 0 {
		c.log.Info("marked abandoned carts as old", zap.Int64("count", marked))
	}
	return nil
}

// RunFullCleanup выполняет все задачи очистки
func (c *CleanupService) RunFullCleanup(ctx context.Context) error {
	c.log.Info("starting full cleanup")

	if err := c.CleanupAbandonedCarts(ctx); err != nil {
		return err
	}

	if err := c.CleanupOldSessions(ctx); err != nil {
		return err
	}

	c.log.Info("full cleanup completed")
	return nil
}
