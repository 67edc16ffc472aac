package repository

import (
	"context"
	"errors"
	"time"

	"beadshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepo interface {
	Create(ctx context.Context, c *models.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// GetNewBySession returns the single NEW cart of a session, (nil, nil) if absent.
	GetNewBySession(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CartStatus) error
	// MarkStale переводит брошенные NEW-корзины в OLD.
	MarkStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) Create(ctx context.Context, c *models.Cart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cartRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) GetNewBySession(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, models.CartStatusNew).
		Order("created_at ASC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CartStatus) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *cartRepo) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("status = ? AND updated_at < ?", models.CartStatusNew, cutoff).
		Update("status", models.CartStatusOld)
	return tx.RowsAffected, tx.Error
}
