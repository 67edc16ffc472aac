package repository

import (
	"context"
	"errors"

	"beadshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RootFilter struct {
	// nil — без фильтра по месту показа
	ShowAtHeader *bool
	// only roots that have at least one displayable product
	OnlyNonEmpty bool
}

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListRoots(ctx context.Context, f RootFilter) ([]models.Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepo) ListRoots(ctx context.Context, f RootFilter) ([]models.Category, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_id IS NULL AND visibility = true")

	if f.ShowAtHeader != nil {
		q = q.Where("show_at_header = ?", *f.ShowAtHeader)
	}
	if f.OnlyNonEmpty {
		q = q.Where("id IN (?)", r.displayableCategoryIDs())
	}

	var list []models.Category
	err := q.Order("view_priority ASC, title ASC").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	var list []models.Category
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("parent_id = ? AND visibility = true AND show_at_header = false", parentID).
		Where("id IN (?)", r.displayableCategoryIDs()).
		Order("view_priority ASC, title ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

// displayableCategoryIDs is a subquery of categories that have at least one
// product worth showing (in stock or kept visible after sale).
func (r *categoryRepo) displayableCategoryIDs() *gorm.DB {
	return r.db.Table("product_categories AS pc").
		Select("pc.category_id").
		Joins("JOIN products p ON p.id = pc.product_id").
		Where("p.in_stock = true OR p.show_after_sale = true")
}
