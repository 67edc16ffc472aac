package service

import (
	"context"
	"math/rand"
	"strings"

	"beadshop/internal/models"
	"beadshop/internal/repository"

	"github.com/google/uuid"
)

const (
	promoListSize     = 8
	promoBackfillPool = 16 // сколько самых дорогих товаров участвует в добивке
)

type catalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListProducts(ctx context.Context, q CatalogQuery) ([]models.Product, int64, error) {
	f := repository.ProductListFilter{Limit: q.Limit, Offset: q.Offset}

	switch q.CategorySlug {
	case "":
		// main page: everything displayable except tutorials
		f.ExcludeCategorySlug = models.CategorySlugTutorials
		f.OnlyDisplayable = true
	case models.CategorySlugSale:
		// sale is virtual: membership is a discount, not a join row
		f.OnlySale = true
	case models.CategorySlugTutorials:
		f.CategorySlug = models.CategorySlugTutorials
	default:
		cat, err := s.repo.Categories.GetBySlug(ctx, q.CategorySlug)
		if err != nil {
			return nil, 0, err
		}
		if cat == nil {
			return nil, 0, ErrCategoryNotFound
		}
		f.CategorySlug = q.CategorySlug
		// уроки не показываются в обычных категориях, даже при двойном членстве
		f.ExcludeCategorySlug = models.CategorySlugTutorials
		f.OnlyDisplayable = true
	}

	return s.repo.Products.List(ctx, f)
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	p, err := s.repo.Products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.repo.Categories.GetBySlug(ctx, slug)
}

func (s *catalogService) RootCategories(ctx context.Context, headerOnly bool) ([]models.Category, error) {
	atHeader := headerOnly
	roots, err := s.repo.Categories.ListRoots(ctx, repository.RootFilter{
		ShowAtHeader: &atHeader,
		OnlyNonEmpty: true,
	})
	if err != nil {
		return nil, err
	}
	if headerOnly {
		return roots, nil
	}

	// виртуальная категория sale появляется, только когда есть что уценять
	hasSale, err := s.repo.Products.AnyDiscountedInStock(ctx)
	if err != nil {
		return nil, err
	}
	if hasSale {
		sale, err := s.repo.Categories.GetBySlug(ctx, models.CategorySlugSale)
		if err != nil {
			return nil, err
		}
		if sale != nil && sale.Visibility {
			roots = append([]models.Category{*sale}, roots...)
		}
	}
	return roots, nil
}

func (s *catalogService) Branches(ctx context.Context, rootID uuid.UUID) ([]models.Category, error) {
	return s.repo.Categories.ListChildren(ctx, rootID)
}

// PromoSelection picks up to 8 items for the promo strip: explicitly promoted
// products first, then a random draw from the 16 priciest available ones.
// Short catalogs are fine, the result is just shorter.
func (s *catalogService) PromoSelection(ctx context.Context) ([]models.Product, error) {
	promoted, err := s.repo.Products.ListPromoted(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Product
	if len(promoted) >= promoListSize {
		result = sample(promoted, promoListSize)
	} else {
		pool, err := s.repo.Products.TopPricedAvailable(ctx, promoBackfillPool)
		if err != nil {
			return nil, err
		}
		need := promoListSize - len(promoted)
		if need > len(pool) {
			need = len(pool)
		}
		result = append(append([]models.Product{}, promoted...), sample(pool, need)...)
	}

	rand.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result, nil
}

func sample(list []models.Product, n int) []models.Product {
	out := make([]models.Product, 0, n)
	for _, idx := range rand.Perm(len(list))[:n] {
		out = append(out, list[idx])
	}
	return out
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	if existing, err := s.repo.Products.GetBySlug(ctx, slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSlugAlreadyExists
	}

	p := &models.Product{
		Title:         strings.TrimSpace(in.Title),
		Slug:          slug,
		Description:   in.Description,
		Memo:          in.Memo,
		ShowAfterSale: in.ShowAfterSale,
		InStock:       in.InStock,
		Reserved:      in.Reserved,
		Promoted:      in.Promoted,
		BasePrice:     in.BasePrice,
		Discount:      in.Discount,
		LinkToVideo:   in.LinkToVideo,
		Size1:         in.Size1,
		Size2:         in.Size2,
		Size3:         in.Size3,
		HolePosition:  in.HolePosition,
		HoleSize:      in.HoleSize,
	}
	if p.HolePosition == "" {
		p.HolePosition = models.HoleHorizontal
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.Products.Create(ctx, p, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, p.ID)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil {
		fields["slug"] = strings.TrimSpace(*patch.Slug)
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Memo != nil {
		fields["memo"] = *patch.Memo
	}
	if patch.ShowAfterSale != nil {
		fields["show_after_sale"] = *patch.ShowAfterSale
	}
	// ручные правки резерва и наличия намеренно не сверяются со статусами
	// заказов: это способ поправить склад руками
	if patch.InStock != nil {
		fields["in_stock"] = *patch.InStock
	}
	if patch.Reserved != nil {
		fields["reserved"] = *patch.Reserved
	}
	if patch.Promoted != nil {
		fields["promoted"] = *patch.Promoted
	}
	if patch.BasePrice != nil {
		fields["base_price"] = *patch.BasePrice
	}
	if patch.Discount != nil {
		fields["discount"] = *patch.Discount
	}
	if patch.LinkToVideo != nil {
		fields["link_to_video"] = *patch.LinkToVideo
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Products.UpdateFields(ctx, id, fields); err != nil {
			return err
		}
		if patch.CategoryIDs != nil {
			return tx.Products.ReplaceCategories(ctx, id, patch.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(in.Slug)
	if existing, err := s.repo.Categories.GetBySlug(ctx, slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSlugAlreadyExists
	}

	c := &models.Category{
		Title:        strings.TrimSpace(in.Title),
		Slug:         slug,
		ParentID:     in.ParentID,
		ViewPriority: in.ViewPriority,
		Visibility:   in.Visibility,
		ShowAtHeader: in.ShowAtHeader,
	}
	if c.ViewPriority == 0 {
		c.ViewPriority = 1000
	}
	if in.ParentID != nil {
		parent, err := s.repo.Categories.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.ClearParent {
		fields["parent_id"] = nil
	} else if patch.ParentID != nil {
		if err := s.checkNoCycle(ctx, id, *patch.ParentID); err != nil {
			return nil, err
		}
		fields["parent_id"] = *patch.ParentID
	}
	if patch.ViewPriority != nil {
		fields["view_priority"] = *patch.ViewPriority
	}
	if patch.Visibility != nil {
		fields["visibility"] = *patch.Visibility
	}
	if patch.ShowAtHeader != nil {
		fields["show_at_header"] = *patch.ShowAtHeader
	}

	if err := s.repo.Categories.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Categories.GetByID(ctx, id)
}

// checkNoCycle walks up from the proposed parent and rejects the link when it
// would reach the category itself: parent pointers must stay a forest.
func (s *catalogService) checkNoCycle(ctx context.Context, id, parentID uuid.UUID) error {
	cur := parentID
	for i := 0; i < 128; i++ {
		if cur == id {
			return ErrCategoryCycle
		}
		parent, err := s.repo.Categories.GetByID(ctx, cur)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrCategoryNotFound
		}
		if parent.ParentID == nil {
			return nil
		}
		cur = *parent.ParentID
	}
	return ErrCategoryCycle
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
