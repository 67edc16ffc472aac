package service

import (
	"context"
	"time"

	"beadshop/internal/models"
	"beadshop/internal/repository"

	"github.com/google/uuid"
)

type cartService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCartService(repo *repository.Repository) CartService {
	return &cartService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *cartService) ResolveCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, uuid.UUID, error) {
	var sess *models.Session

	if sessionID != uuid.Nil {
		found, err := s.repo.Sessions.GetByID(ctx, sessionID)
		if err != nil {
			return nil, uuid.Nil, err
		}
		sess = found
	}
	if sess == nil {
		// новая или протухшая сессия: сохраняем, чтобы получить ключ
		sess = &models.Session{CreatedAt: s.now(), LastSeenAt: s.now()}
		if err := s.repo.Sessions.Create(ctx, sess); err != nil {
			return nil, uuid.Nil, err
		}
	} else {
		_ = s.repo.Sessions.Touch(ctx, sess.ID, s.now())
	}

	cart, err := s.repo.Carts.GetNewBySession(ctx, sess.ID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			SessionID: &sess.ID,
			Status:    models.CartStatusNew,
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		}
		if err := s.repo.Carts.Create(ctx, cart); err != nil {
			return nil, uuid.Nil, err
		}
	}
	return cart, sess.ID, nil
}

func (s *cartService) AddItem(ctx context.Context, cartID, productID uuid.UUID) error {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	return s.repo.CartItems.CreateIfAbsent(ctx, &models.CartItem{
		CartID:    cartID,
		ProductID: p.ID,
		Price:     p.Price(),
		CreatedAt: s.now(),
	})
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	// удаление отсутствующей позиции — no-op
	_, err = s.repo.CartItems.DeleteByCartAndProduct(ctx, cartID, p.ID)
	return err
}

func (s *cartService) Contents(ctx context.Context, cartID uuid.UUID) (*CartContents, error) {
	cart, err := s.repo.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	items, err := s.repo.CartItems.ListByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	contents := &CartContents{Cart: cart}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		switch {
		case item.Product.Available():
			contents.InStock = append(contents.InStock, item)
			// итог считается по текущей цене, не по снапшоту в корзине
			contents.Subtotal += item.Product.Price()
		case item.Product.InStock:
			contents.OnHold = append(contents.OnHold, item)
		default:
			contents.Sold = append(contents.Sold, item)
		}
	}
	return contents, nil
}
