package service_test

import (
	"context"
	"time"

	"beadshop/internal/models"
	"beadshop/internal/repository"

	"github.com/google/uuid"
)

// func-field mocks: tests fill in only the calls they expect,
// the rest panics on use.

type productRepoMock struct {
	CreateFn               func(ctx context.Context, p *models.Product, categoryIDs []uuid.UUID) error
	UpdateFieldsFn         func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	ReplaceCategoriesFn    func(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error
	GetByIDFn              func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlugFn            func(ctx context.Context, slug string) (*models.Product, error)
	ListFn                 func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	ListPromotedFn         func(ctx context.Context) ([]models.Product, error)
	TopPricedAvailableFn   func(ctx context.Context, limit int) ([]models.Product, error)
	AnyDiscountedInStockFn func(ctx context.Context) (bool, error)
	InCategoryFn           func(ctx context.Context, id uuid.UUID, slug string) (bool, error)
	DeleteFn               func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *productRepoMock) Create(ctx context.Context, p *models.Product, categoryIDs []uuid.UUID) error {
	return m.CreateFn(ctx, p, categoryIDs)
}
func (m *productRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return m.UpdateFieldsFn(ctx, id, fields)
}
func (m *productRepoMock) ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error {
	return m.ReplaceCategoriesFn(ctx, id, categoryIDs)
}
func (m *productRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *productRepoMock) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return m.GetBySlugFn(ctx, slug)
}
func (m *productRepoMock) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	return m.ListFn(ctx, f)
}
func (m *productRepoMock) ListPromoted(ctx context.Context) ([]models.Product, error) {
	return m.ListPromotedFn(ctx)
}
func (m *productRepoMock) TopPricedAvailable(ctx context.Context, limit int) ([]models.Product, error) {
	return m.TopPricedAvailableFn(ctx, limit)
}
func (m *productRepoMock) AnyDiscountedInStock(ctx context.Context) (bool, error) {
	return m.AnyDiscountedInStockFn(ctx)
}
func (m *productRepoMock) InCategory(ctx context.Context, id uuid.UUID, slug string) (bool, error) {
	return m.InCategoryFn(ctx, id, slug)
}
func (m *productRepoMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.DeleteFn(ctx, id)
}

type categoryRepoMock struct {
	CreateFn       func(ctx context.Context, c *models.Category) error
	UpdateFieldsFn func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlugFn    func(ctx context.Context, slug string) (*models.Category, error)
	ListRootsFn    func(ctx context.Context, f repository.RootFilter) ([]models.Category, error)
	ListChildrenFn func(ctx context.Context, parentID uuid.UUID) ([]models.Category, error)
	DeleteFn       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *categoryRepoMock) Create(ctx context.Context, c *models.Category) error {
	return m.CreateFn(ctx, c)
}
func (m *categoryRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return m.UpdateFieldsFn(ctx, id, fields)
}
func (m *categoryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *categoryRepoMock) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return m.GetBySlugFn(ctx, slug)
}
func (m *categoryRepoMock) ListRoots(ctx context.Context, f repository.RootFilter) ([]models.Category, error) {
	return m.ListRootsFn(ctx, f)
}
func (m *categoryRepoMock) ListChildren(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return m.ListChildrenFn(ctx, parentID)
}
func (m *categoryRepoMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.DeleteFn(ctx, id)
}

type sessionRepoMock struct {
	CreateFn          func(ctx context.Context, s *models.Session) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*models.Session, error)
	TouchFn           func(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteOlderThanFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *sessionRepoMock) Create(ctx context.Context, s *models.Session) error {
	return m.CreateFn(ctx, s)
}
func (m *sessionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *sessionRepoMock) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.TouchFn(ctx, id, at)
}
func (m *sessionRepoMock) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.DeleteOlderThanFn(ctx, cutoff)
}

type cartRepoMock struct {
	CreateFn          func(ctx context.Context, c *models.Cart) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	GetNewBySessionFn func(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error)
	UpdateStatusFn    func(ctx context.Context, id uuid.UUID, status models.CartStatus) error
	MarkStaleFn       func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *cartRepoMock) Create(ctx context.Context, c *models.Cart) error {
	return m.CreateFn(ctx, c)
}
func (m *cartRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *cartRepoMock) GetNewBySession(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {
	return m.GetNewBySessionFn(ctx, sessionID)
}
func (m *cartRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CartStatus) error {
	return m.UpdateStatusFn(ctx, id, status)
}
func (m *cartRepoMock) MarkStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.MarkStaleFn(ctx, cutoff)
}

type cartItemRepoMock struct {
	CreateIfAbsentFn         func(ctx context.Context, item *models.CartItem) error
	DeleteByCartAndProductFn func(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	ListByCartFn             func(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
}

func (m *cartItemRepoMock) CreateIfAbsent(ctx context.Context, item *models.CartItem) error {
	return m.CreateIfAbsentFn(ctx, item)
}
func (m *cartItemRepoMock) DeleteByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (int64, error) {
	return m.DeleteByCartAndProductFn(ctx, cartID, productID)
}
func (m *cartItemRepoMock) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	return m.ListByCartFn(ctx, cartID)
}
