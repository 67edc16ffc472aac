package repository

import (
	"context"
	"errors"

	"beadshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	// members of this category only (по слагу)
	CategorySlug string
	// drop members of this category (main page hides tutorials)
	ExcludeCategorySlug string
	// in_stock OR show_after_sale
	OnlyDisplayable bool
	// discount > 0 AND in_stock, ordered by discount DESC
	OnlySale bool
	Limit    int
	Offset   int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product, categoryIDs []uuid.UUID) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	ListPromoted(ctx context.Context) ([]models.Product, error)
	TopPricedAvailable(ctx context.Context, limit int) ([]models.Product, error)
	AnyDiscountedInStock(ctx context.Context) (bool, error)
	InCategory(ctx context.Context, id uuid.UUID, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product, categoryIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		if err := r.ReplaceCategories(ctx, p.ID, categoryIDs); err != nil {
			return err
		}
	}
	return r.enforceTutorialsRule(ctx, p.ID)
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return err
	}
	return r.enforceTutorialsRule(ctx, id)
}

func (r *productRepo) ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error {
	cats := make([]models.Category, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		cats = append(cats, models.Category{ID: cid})
	}
	p := models.Product{ID: id}
	if err := r.db.WithContext(ctx).Model(&p).Association("Categories").Replace(cats); err != nil {
		return err
	}
	return r.enforceTutorialsRule(ctx, id)
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Categories").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Categories").First(&p, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.CategorySlug != "" {
		q = q.Where(
			"id IN (?)",
			r.db.Table("product_categories AS pc").
				Select("pc.product_id").
				Joins("JOIN categories c ON c.id = pc.category_id").
				Where("c.slug = ?", f.CategorySlug),
		)
	}
	if f.ExcludeCategorySlug != "" {
		q = q.Where(
			"id NOT IN (?)",
			r.db.Table("product_categories AS pc").
				Select("pc.product_id").
				Joins("JOIN categories c ON c.id = pc.category_id").
				Where("c.slug = ?", f.ExcludeCategorySlug),
		)
	}
	if f.OnlySale {
		q = q.Where("discount > 0 AND in_stock = true")
	}
	if f.OnlyDisplayable {
		q = q.Where("in_stock = true OR show_after_sale = true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 60
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	// порядок витрины: в наличии, без резерва, новые сверху
	order := "in_stock DESC, reserved ASC, created_at DESC"
	if f.OnlySale {
		order = "discount DESC, created_at DESC"
	}

	var list []models.Product
	err := q.Order(order).Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *productRepo) ListPromoted(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("promoted = true AND in_stock = true AND reserved = false").
		Find(&list).Error
	return list, err
}

func (r *productRepo) TopPricedAvailable(ctx context.Context, limit int) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("promoted = false AND in_stock = true AND reserved = false").
		Order("base_price DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *productRepo) AnyDiscountedInStock(ctx context.Context) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("discount > 0 AND in_stock = true").
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *productRepo) InCategory(ctx context.Context, id uuid.UUID, slug string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Table("product_categories AS pc").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("pc.product_id = ? AND c.slug = ?", id, slug).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) enforceTutorialsRule(ctx context.Context, id uuid.UUID) error {
	ok, err := r.InCategory(ctx, id, models.CategorySlugTutorials)
	if err != nil || !ok {
		return err
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND reserved = true", id).
		Update("reserved", false).Error
}
