package service

import (
	"context"

	"beadshop/internal/models"

	"github.com/google/uuid"
)

// CartContents is the cart page view: items grouped into still buyable,
// held by someone else's order, and already sold.
type CartContents struct {
	Cart     *models.Cart
	InStock  []models.CartItem
	OnHold   []models.CartItem
	Sold     []models.CartItem
	Subtotal int
}

type CartService interface {
	// ResolveCart returns the single NEW cart for the session, creating the
	// session row and the cart when absent. sessionID may be uuid.Nil.
	ResolveCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, uuid.UUID, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	Contents(ctx context.Context, cartID uuid.UUID) (*CartContents, error)
}
