package service

import (
	"context"

	"beadshop/internal/models"

	"github.com/google/uuid"
)

type CheckoutInput struct {
	Email         string
	Country       string
	Message       string
	AgreePolicies bool
}

type OrderListFilter struct {
	Status  *models.OrderStatus
	Country string
	Limit   int
	Offset  int
}

// BulkResult reports per-order outcomes of an admin bulk transition.
type BulkResult struct {
	Applied []uuid.UUID
	Failed  map[uuid.UUID]error
}

type OrderService interface {
	Checkout(ctx context.Context, cartID uuid.UUID, in CheckoutInput) (*models.Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	UpdateMemo(ctx context.Context, id uuid.UUID, memo string) error

	// Переходы статусов. Машина нарочно без охраны: любой статус можно
	// перевести в любой другой, побочные эффекты по товарам применяются всегда.
	Reserve(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Progress(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Order, error)

	BulkReserve(ctx context.Context, ids []uuid.UUID) BulkResult
	BulkProgress(ctx context.Context, ids []uuid.UUID) BulkResult
	BulkCancel(ctx context.Context, ids []uuid.UUID) BulkResult
	BulkComplete(ctx context.Context, ids []uuid.UUID) BulkResult
}
