package repository

import (
	"context"
	"errors"

	"beadshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepo interface {
	// CreateIfAbsent inserts the (cart, product) pair once; repeats are no-ops.
	CreateIfAbsent(ctx context.Context, item *models.CartItem) error
	DeleteByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
}

type cartItemRepo struct{ db *gorm.DB }

func NewCartItemRepo(db *gorm.DB) CartItemRepo { return &cartItemRepo{db: db} }

func (r *cartItemRepo) CreateIfAbsent(ctx context.Context, item *models.CartItem) error {
	// уникальный индекс закрывает гонку двух одновременных добавлений
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *cartItemRepo) DeleteByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}

func (r *cartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rows, err
}
