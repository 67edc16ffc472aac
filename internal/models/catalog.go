package models

import (
	"time"

	"github.com/google/uuid"
)

// Слаги служебных категорий. Обе строки создаются миграцией и не удаляются.
const (
	CategorySlugTutorials = "tutorials" // товары из этой категории никогда не резервируются
	CategorySlugSale      = "sale"      // виртуальная категория, наполняется фильтром по скидке
)

// Category is a node of the catalog tree. Parent is nil for roots.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title    string     `gorm:"type:text;not null;uniqueIndex"`
	Slug     string     `gorm:"type:text;not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`

	// порядок отображения: меньше — выше
	ViewPriority int  `gorm:"not null;default:1000"`
	Visibility   bool `gorm:"not null;default:true"`
	ShowAtHeader bool `gorm:"not null;default:false"`

	Parent *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
}

func (Category) TableName() string { return "categories" }

type HolePosition string

const (
	HoleNone       HolePosition = "NO"
	HoleHorizontal HolePosition = "HOR"
	HoleVertical   HolePosition = "VERT"
	HoleDiagonal   HolePosition = "DIAG"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"type:text;not null"`
	Slug      string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;default:now();index"`

	Description string `gorm:"type:text"`
	Memo        string `gorm:"type:text"` // заметки для админа, наружу не отдаются

	// показывать ли карточку после продажи (in_stock=false)
	ShowAfterSale bool `gorm:"not null;default:true"`

	InStock  bool `gorm:"not null;default:true"`
	Reserved bool `gorm:"not null;default:false"`
	Promoted bool `gorm:"not null;default:false"`

	// BasePrice — целые USD, Discount — процент 0..100.
	// Итоговая цена всегда считается, в базе не хранится.
	BasePrice int `gorm:"not null;default:0"`
	Discount  int `gorm:"not null;default:0"`

	LinkToVideo string `gorm:"type:text"`

	// размеры в мм, обязателен только первый
	Size1 int  `gorm:"not null;default:0"`
	Size2 *int `gorm:""`
	Size3 *int `gorm:""`

	HolePosition HolePosition `gorm:"type:text;not null;default:'HOR'"`
	HoleSize     int16        `gorm:"not null;default:2"` // диаметр оправки

	Categories []Category `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

// Price returns the current price with the discount applied, rounded down.
func (p *Product) Price() int {
	return p.BasePrice * (100 - p.Discount) / 100
}

// Displayable reports whether the product belongs on public listings.
func (p *Product) Displayable() bool {
	return p.InStock || p.ShowAfterSale
}

// Available reports whether the product can still be put into an order.
func (p *Product) Available() bool {
	return p.InStock && !p.Reserved
}
