package service

import (
	"context"

	"beadshop/internal/models"

	"github.com/google/uuid"
)

// CatalogQuery selects a storefront listing. Empty slug means the main page.
// The slugs "sale" and "tutorials" get special treatment (see ListProducts).
type CatalogQuery struct {
	CategorySlug string
	Limit        int
	Offset       int
}

type ProductInput struct {
	Title         string
	Slug          string
	Description   string
	Memo          string
	ShowAfterSale bool
	InStock       bool
	Reserved      bool
	Promoted      bool
	BasePrice     int
	Discount      int
	LinkToVideo   string
	Size1         int
	Size2         *int
	Size3         *int
	HolePosition  models.HolePosition
	HoleSize      int16
	CategoryIDs   []uuid.UUID
}

// ProductPatch carries only the fields an admin actually changed.
type ProductPatch struct {
	Title         *string
	Slug          *string
	Description   *string
	Memo          *string
	ShowAfterSale *bool
	InStock       *bool
	Reserved      *bool
	Promoted      *bool
	BasePrice     *int
	Discount      *int
	LinkToVideo   *string
	CategoryIDs   []uuid.UUID
}

type CategoryInput struct {
	Title        string
	Slug         string
	ParentID     *uuid.UUID
	ViewPriority int
	Visibility   bool
	ShowAtHeader bool
}

type CategoryPatch struct {
	Title        *string
	ParentID     *uuid.UUID
	ClearParent  bool
	ViewPriority *int
	Visibility   *bool
	ShowAtHeader *bool
}

type CatalogService interface {
	ListProducts(ctx context.Context, q CatalogQuery) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	// GetCategoryBySlug returns (nil, nil) when the slug is unknown.
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	RootCategories(ctx context.Context, headerOnly bool) ([]models.Category, error)
	Branches(ctx context.Context, rootID uuid.UUID) ([]models.Category, error)
	PromoSelection(ctx context.Context) ([]models.Product, error)

	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
