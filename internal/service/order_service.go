package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"beadshop/internal/models"
	"beadshop/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo   *repository.Repository
	events Notifier
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events Notifier) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// transition describes one admin/checkout move of the order state machine and
// its side effect on every ordered product.
type transition struct {
	target  models.OrderStatus
	reserve bool // value written to product.reserved
	takeOff bool // additionally clears in_stock (продажа)
}

var (
	trReserve  = transition{target: models.OrderStatusReserved, reserve: true}
	trProgress = transition{target: models.OrderStatusWIP, reserve: true}
	trCancel   = transition{target: models.OrderStatusCanceled, reserve: false}
	trComplete = transition{target: models.OrderStatusCompleted, reserve: false, takeOff: true}
)

func (s *orderService) Checkout(ctx context.Context, cartID uuid.UUID, in CheckoutInput) (*models.Order, error) {
	if !in.AgreePolicies {
		return nil, ErrPoliciesNotAccepted
	}

	cart, err := s.repo.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if cart.Status != models.CartStatusNew {
		return nil, ErrCartNotNew
	}

	items, err := s.repo.CartItems.ListByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	// в заказ уходят только доступные позиции, остальные молча отбрасываются
	eligible := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product != nil && item.Product.Available() {
			eligible = append(eligible, item)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNothingToSell
	}

	now := s.now()
	order := &models.Order{
		CartID: &cart.ID,
		// исторический стартовый литерал, см. chk_orders_status_allowed
		Status:        models.OrderStatusCreated,
		CustomerEmail: strings.ToLower(strings.TrimSpace(in.Email)),
		Country:       capitalize(in.Country),
		Message:       in.Message,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// заказ, позиции, резерв товаров и смена статусов — одной транзакцией
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(eligible))
		for _, item := range eligible {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				// цена снимается заново с товара, не из корзины
				Price:     item.Product.Price(),
				CreatedAt: now,
			})
		}
		if err := tx.OrderItems.BulkCreate(ctx, orderItems); err != nil {
			return err
		}

		if err := applyTransition(ctx, tx, order.ID, trReserve); err != nil {
			return err
		}

		return tx.Carts.UpdateStatus(ctx, cart.ID, models.CartStatusOrder)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	// письма шлются после коммита; ошибка отправки отдаётся наверх как есть,
	// заказ при этом уже создан
	if s.events != nil {
		event := orderCreatedEvent(created)
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			return created, err
		}
		if err := s.events.PublishAdminOrderAlert(ctx, event); err != nil {
			return created, err
		}
	}
	return created, nil
}

func orderCreatedEvent(o *models.Order) OrderCreatedEvent {
	items := make([]OrderItemEvent, 0, len(o.Items))
	total := 0
	for _, it := range o.Items {
		title := ""
		if it.Product != nil {
			title = it.Product.Title
		}
		items = append(items, OrderItemEvent{Title: title, Price: it.Price})
		total += it.Price
	}
	return OrderCreatedEvent{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		Country:       o.Country,
		Items:         items,
		Total:         total,
		CreatedAt:     o.CreatedAt,
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status:  f.Status,
		Country: f.Country,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
}

func (s *orderService) UpdateMemo(ctx context.Context, id uuid.UUID, memo string) error {
	ok, err := s.repo.Orders.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return s.repo.Orders.UpdateMemo(ctx, id, memo)
}

func (s *orderService) Reserve(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.apply(ctx, id, trReserve)
}

func (s *orderService) Progress(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.apply(ctx, id, trProgress)
}

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.apply(ctx, id, trCancel)
}

func (s *orderService) Complete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.apply(ctx, id, trComplete)
}

// apply runs one transition atomically: all product side effects plus the
// final status write either land together or not at all.
func (s *orderService) apply(ctx context.Context, id uuid.UUID, tr transition) (*models.Order, error) {
	exists, err := s.repo.Orders.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return applyTransition(ctx, tx, id, tr)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Orders.GetByID(ctx, id)
}

func applyTransition(ctx context.Context, tx *repository.Repository, orderID uuid.UUID, tr transition) error {
	items, err := tx.OrderItems.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, item := range items {
		fields := map[string]any{"reserved": tr.reserve}
		if tr.takeOff {
			fields["in_stock"] = false
		}
		// UpdateFields снимает резерв с товаров категории tutorials
		if err := tx.Products.UpdateFields(ctx, item.ProductID, fields); err != nil {
			return err
		}
	}
	return tx.Orders.UpdateStatus(ctx, orderID, tr.target)
}

func (s *orderService) BulkReserve(ctx context.Context, ids []uuid.UUID) BulkResult {
	return s.bulk(ctx, ids, trReserve)
}

func (s *orderService) BulkProgress(ctx context.Context, ids []uuid.UUID) BulkResult {
	return s.bulk(ctx, ids, trProgress)
}

func (s *orderService) BulkCancel(ctx context.Context, ids []uuid.UUID) BulkResult {
	return s.bulk(ctx, ids, trCancel)
}

func (s *orderService) BulkComplete(ctx context.Context, ids []uuid.UUID) BulkResult {
	return s.bulk(ctx, ids, trComplete)
}

// bulk applies the transition per order: one transaction each, so a failure
// on one order does not roll back the rest.
func (s *orderService) bulk(ctx context.Context, ids []uuid.UUID, tr transition) BulkResult {
	res := BulkResult{Failed: map[uuid.UUID]error{}}
	for _, id := range ids {
		if _, err := s.apply(ctx, id, tr); err != nil {
			res.Failed[id] = err
			continue
		}
		res.Applied = append(res.Applied, id)
	}
	return res
}

// capitalize mirrors the storefront's country normalization: first letter
// upper, the rest lower.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
