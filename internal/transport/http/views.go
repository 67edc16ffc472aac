package http

import (
	"strconv"
	"time"

	"beadshop/internal/models"

	"github.com/google/uuid"
)

// ProductView is the public shape of a product: computed price instead of the
// raw base/discount pair, no admin memo.
type ProductView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Price         int       `json:"price"`
	BasePrice     int       `json:"base_price"`
	Discount      int       `json:"discount"`
	InStock       bool      `json:"in_stock"`
	Reserved      bool      `json:"reserved"`
	Promoted      bool      `json:"promoted"`
	LinkToVideo   string    `json:"link_to_video,omitempty"`
	DisplaySize   string    `json:"display_size"`
	HolePosition  string    `json:"hole_position"`
	HoleSize      int16     `json:"hole_size"`
	CreatedAt     time.Time `json:"created_at"`
	CategorySlugs []string  `json:"categories,omitempty"`
}

func productView(p models.Product) ProductView {
	slugs := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		slugs = append(slugs, c.Slug)
	}
	return ProductView{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price(),
		BasePrice:     p.BasePrice,
		Discount:      p.Discount,
		InStock:       p.InStock,
		Reserved:      p.Reserved,
		Promoted:      p.Promoted,
		LinkToVideo:   p.LinkToVideo,
		DisplaySize:   displaySize(p),
		HolePosition:  string(p.HolePosition),
		HoleSize:      p.HoleSize,
		CreatedAt:     p.CreatedAt,
		CategorySlugs: slugs,
	}
}

func productViews(list []models.Product) []ProductView {
	out := make([]ProductView, 0, len(list))
	for _, p := range list {
		out = append(out, productView(p))
	}
	return out
}

// displaySize joins the provided dimensions: "12x8 mm", "12x8x3 mm".
func displaySize(p models.Product) string {
	s := ""
	for _, d := range []*int{&p.Size1, p.Size2, p.Size3} {
		if d == nil || *d == 0 {
			continue
		}
		if s != "" {
			s += "x"
		}
		s += strconv.Itoa(*d)
	}
	if s == "" {
		return ""
	}
	return s + " mm"
}

type CategoryView struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	ViewPriority int        `json:"view_priority"`
	ShowAtHeader bool       `json:"show_at_header"`
}

func categoryViews(list []models.Category) []CategoryView {
	out := make([]CategoryView, 0, len(list))
	for _, c := range list {
		out = append(out, CategoryView{
			ID:           c.ID,
			Title:        c.Title,
			Slug:         c.Slug,
			ParentID:     c.ParentID,
			ViewPriority: c.ViewPriority,
			ShowAtHeader: c.ShowAtHeader,
		})
	}
	return out
}

type CartItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	// цена на момент добавления
	SnapshotPrice int `json:"snapshot_price"`
	// текущая цена товара
	CurrentPrice int `json:"current_price"`
}

func cartItemViews(items []models.CartItem) []CartItemView {
	out := make([]CartItemView, 0, len(items))
	for _, it := range items {
		v := CartItemView{ProductID: it.ProductID, SnapshotPrice: it.Price}
		if it.Product != nil {
			v.Title = it.Product.Title
			v.Slug = it.Product.Slug
			v.CurrentPrice = it.Product.Price()
		}
		out = append(out, v)
	}
	return out
}
