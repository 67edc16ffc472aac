package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the anonymous browser session a cart is bound to. Its ID doubles
// as the opaque cookie token.
type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt  time.Time `gorm:"not null;default:now()"`
	LastSeenAt time.Time `gorm:"not null;default:now()"`
}

func (Session) TableName() string { return "sessions" }

// Статус корзины — строковый тип (как OrderStatus)
type CartStatus string

const (
	CartStatusNew   CartStatus = "NEW"
	CartStatusOld   CartStatus = "OLD"
	CartStatusOrder CartStatus = "ORDER" // из корзины создан заказ, повторно не используется
)

type Cart struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	// корзина переживает удаление сессии
	SessionID *uuid.UUID `gorm:"type:uuid;index"`
	Status    CartStatus `gorm:"type:text;not null;default:'NEW';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (Cart) TableName() string { return "carts" }

// CartItem snapshots the product price at add time. One row per (cart, product).
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_cart_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product"`
	Price     int       `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string { return "cart_items" }

type OrderStatus string

// Заказ создаётся со статусом CREATED (исторический литерал вне админского
// набора, сохраняем как есть) и сразу при оформлении переводится в RESERVED.
const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusWIP       OrderStatus = "WIP"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
	OrderStatusReserved  OrderStatus = "RESERVED"
)

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	// заказ переживает удаление корзины
	CartID *uuid.UUID  `gorm:"type:uuid;index"`
	Status OrderStatus `gorm:"type:text;not null;default:'NEW';index"`

	// данные покупателя для выставления счёта
	CustomerEmail string `gorm:"type:text;not null"`
	Country       string `gorm:"type:text;not null"`
	Message       string `gorm:"type:text"`

	Memo string `gorm:"type:text"` // заметки продавца

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem fixes the product price at the moment the order was made.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product"`
	Price     int       `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (OrderItem) TableName() string { return "order_items" }
