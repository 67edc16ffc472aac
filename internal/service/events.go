package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	Title string `json:"title"`
	Price int    `json:"price"`
}

type OrderCreatedEvent struct {
	OrderID       uuid.UUID        `json:"order_id"`
	CustomerEmail string           `json:"customer_email"`
	Country       string           `json:"country"`
	Items         []OrderItemEvent `json:"items"`
	Total         int              `json:"total"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Notifier delivers the two checkout emails: confirmation to the customer
// and an alert to the shop owner.
type Notifier interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishAdminOrderAlert(ctx context.Context, e OrderCreatedEvent) error
}
