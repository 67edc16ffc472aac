package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"beadshop/internal/models"
	"beadshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	catalog service.CatalogService
	orders  service.OrderService
	log     *zap.Logger
}

func NewAdminHandler(catalog service.CatalogService, orders service.OrderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, orders: orders, log: log}
}

type orderView struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	CustomerEmail string    `json:"customer_email"`
	Country       string    `json:"country"`
	Message       string    `json:"message,omitempty"`
	Memo          string    `json:"memo,omitempty"`
	Total         int       `json:"total"`
	Items         []gin.H   `json:"items,omitempty"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

func adminOrderView(o *models.Order) orderView {
	v := orderView{
		ID:            o.ID,
		Status:        string(o.Status),
		CustomerEmail: o.CustomerEmail,
		Country:       o.Country,
		Message:       o.Message,
		Memo:          o.Memo,
		CreatedAt:     o.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     o.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, it := range o.Items {
		v.Total += it.Price
		item := gin.H{"product_id": it.ProductID, "price": it.Price}
		if it.Product != nil {
			item["title"] = it.Product.Title
			item["reserved"] = it.Product.Reserved
			item["in_stock"] = it.Product.InStock
		}
		v.Items = append(v.Items, item)
	}
	return v
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	f := service.OrderListFilter{Country: c.Query("country")}
	if s := c.Query("status"); s != "" {
		status := models.OrderStatus(s)
		f.Status = &status
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		h.log.Error("list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, adminOrderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views, "total": total})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.log.Error("get order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, adminOrderView(ord))
}

type bulkOrdersRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// Bulk transitions mirror the admin list actions: reserve, progress,
// cancel, complete. Failures are reported per order.
func (h *AdminHandler) BulkReserve(c *gin.Context)  { h.bulk(c, h.orders.BulkReserve) }
func (h *AdminHandler) BulkProgress(c *gin.Context) { h.bulk(c, h.orders.BulkProgress) }
func (h *AdminHandler) BulkCancel(c *gin.Context)   { h.bulk(c, h.orders.BulkCancel) }
func (h *AdminHandler) BulkComplete(c *gin.Context) { h.bulk(c, h.orders.BulkComplete) }

func (h *AdminHandler) bulk(c *gin.Context, op func(ctx context.Context, ids []uuid.UUID) service.BulkResult) {
	var req bulkOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res := op(c.Request.Context(), req.OrderIDs)

	failed := gin.H{}
	for id, err := range res.Failed {
		failed[id.String()] = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{"applied": res.Applied, "failed": failed})
}

type memoRequest struct {
	Memo string `json:"memo"`
}

func (h *AdminHandler) UpdateOrderMemo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req memoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.orders.UpdateMemo(c.Request.Context(), id, req.Memo); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.log.Error("update order memo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type productRequest struct {
	Title         string      `json:"title" binding:"required"`
	Slug          string      `json:"slug" binding:"required"`
	Description   string      `json:"description"`
	Memo          string      `json:"memo"`
	ShowAfterSale *bool       `json:"show_after_sale"`
	InStock       *bool       `json:"in_stock"`
	Reserved      bool        `json:"reserved"`
	Promoted      bool        `json:"promoted"`
	BasePrice     int         `json:"base_price" binding:"min=0"`
	Discount      int         `json:"discount" binding:"min=0,max=100"`
	LinkToVideo   string      `json:"link_to_video"`
	Size1         int         `json:"size_1"`
	Size2         *int        `json:"size_2"`
	Size3         *int        `json:"size_3"`
	HolePosition  string      `json:"hole_position"`
	HoleSize      int16       `json:"hole_size"`
	CategoryIDs   []uuid.UUID `json:"category_ids"`
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := service.ProductInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Memo:          req.Memo,
		ShowAfterSale: req.ShowAfterSale == nil || *req.ShowAfterSale,
		InStock:       req.InStock == nil || *req.InStock,
		Reserved:      req.Reserved,
		Promoted:      req.Promoted,
		BasePrice:     req.BasePrice,
		Discount:      req.Discount,
		LinkToVideo:   req.LinkToVideo,
		Size1:         req.Size1,
		Size2:         req.Size2,
		Size3:         req.Size3,
		HolePosition:  models.HolePosition(req.HolePosition),
		HoleSize:      req.HoleSize,
		CategoryIDs:   req.CategoryIDs,
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrSlugAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "product with this slug already exists"})
			return
		}
		h.log.Error("create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, productView(*p))
}

type productPatchRequest struct {
	Title         *string     `json:"title"`
	Slug          *string     `json:"slug"`
	Description   *string     `json:"description"`
	Memo          *string     `json:"memo"`
	ShowAfterSale *bool       `json:"show_after_sale"`
	InStock       *bool       `json:"in_stock"`
	Reserved      *bool       `json:"reserved"`
	Promoted      *bool       `json:"promoted"`
	BasePrice     *int        `json:"base_price"`
	Discount      *int        `json:"discount"`
	LinkToVideo   *string     `json:"link_to_video"`
	CategoryIDs   []uuid.UUID `json:"category_ids"`
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req productPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Discount != nil && (*req.Discount < 0 || *req.Discount > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be within 0..100"})
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.ProductPatch{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Memo:          req.Memo,
		ShowAfterSale: req.ShowAfterSale,
		InStock:       req.InStock,
		Reserved:      req.Reserved,
		Promoted:      req.Promoted,
		BasePrice:     req.BasePrice,
		Discount:      req.Discount,
		LinkToVideo:   req.LinkToVideo,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.log.Error("update product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, productView(*p))
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.log.Error("delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type categoryRequest struct {
	Title        string     `json:"title" binding:"required"`
	Slug         string     `json:"slug" binding:"required"`
	ParentID     *uuid.UUID `json:"parent_id"`
	ViewPriority int        `json:"view_priority"`
	Visibility   *bool      `json:"visibility"`
	ShowAtHeader bool       `json:"show_at_header"`
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), service.CategoryInput{
		Title:        req.Title,
		Slug:         req.Slug,
		ParentID:     req.ParentID,
		ViewPriority: req.ViewPriority,
		Visibility:   req.Visibility == nil || *req.Visibility,
		ShowAtHeader: req.ShowAtHeader,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "category with this slug already exists"})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent category not found"})
		default:
			h.log.Error("create category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, categoryViews([]models.Category{*cat})[0])
}

type categoryPatchRequest struct {
	Title        *string    `json:"title"`
	ParentID     *uuid.UUID `json:"parent_id"`
	ClearParent  bool       `json:"clear_parent"`
	ViewPriority *int       `json:"view_priority"`
	Visibility   *bool      `json:"visibility"`
	ShowAtHeader *bool      `json:"show_at_header"`
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	var req categoryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, service.CategoryPatch{
		Title:        req.Title,
		ParentID:     req.ParentID,
		ClearParent:  req.ClearParent,
		ViewPriority: req.ViewPriority,
		Visibility:   req.Visibility,
		ShowAtHeader: req.ShowAtHeader,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		case errors.Is(err, service.ErrCategoryCycle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent link would form a cycle"})
		default:
			h.log.Error("update category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, categoryViews([]models.Category{*cat})[0])
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.log.Error("delete category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
