package http

import (
	"errors"
	"net/http"
	"strconv"

	"beadshop/internal/models"
	"beadshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StorefrontHandler struct {
	catalog service.CatalogService
	carts   service.CartService
	log     *zap.Logger
}

func NewStorefrontHandler(catalog service.CatalogService, carts service.CartService, log *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{catalog: catalog, carts: carts, log: log}
}

func (h *StorefrontHandler) MainPage(c *gin.Context) {
	h.listPage(c, "")
}

func (h *StorefrontHandler) CategoryPage(c *gin.Context) {
	h.listPage(c, c.Param("slug"))
}

func (h *StorefrontHandler) listPage(c *gin.Context, slug string) {
	ctx := c.Request.Context()

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	products, total, err := h.catalog.ListProducts(ctx, service.CatalogQuery{
		CategorySlug: slug,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.log.Error("list products", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	roots, err := h.catalog.RootCategories(ctx, false)
	if err != nil {
		h.log.Error("list root categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	header, err := h.catalog.RootCategories(ctx, true)
	if err != nil {
		h.log.Error("list header categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	promo, err := h.catalog.PromoSelection(ctx)
	if err != nil {
		h.log.Error("promo selection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{
		"products":          productViews(products),
		"total":             total,
		"roots":             categoryViews(roots),
		"header_categories": categoryViews(header),
		"promotions":        productViews(promo),
	}

	// подменю показываем только внутри категории
	if slug != "" && slug != models.CategorySlugSale {
		if cat, err := h.catalog.GetCategoryBySlug(ctx, slug); err == nil && cat != nil {
			rootID := cat.ID
			if cat.ParentID != nil {
				rootID = *cat.ParentID
			}
			if branches, err := h.catalog.Branches(ctx, rootID); err == nil {
				resp["branches"] = categoryViews(branches)
				resp["active_branch"] = cat.Slug
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHandler) ProductPage(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.catalog.GetProduct(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.log.Error("get product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	roots, err := h.catalog.RootCategories(ctx, false)
	if err != nil {
		h.log.Error("list root categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": productView(*p),
		"roots":   categoryViews(roots),
	})
}

func (h *StorefrontHandler) CartPage(c *gin.Context) {
	ctx := c.Request.Context()

	cart, sessID, err := h.carts.ResolveCart(ctx, sessionIDFromCookie(c))
	if err != nil {
		h.log.Error("resolve cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	setSessionCookie(c, sessID)

	contents, err := h.carts.Contents(ctx, cart.ID)
	if err != nil {
		h.log.Error("cart contents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := gin.H{
		"cart_id":        cart.ID,
		"status":         cart.Status,
		"items_in_stock": cartItemViews(contents.InStock),
		"items_on_hold":  cartItemViews(contents.OnHold),
		"items_sold":     cartItemViews(contents.Sold),
		"subtotal":       contents.Subtotal,
	}
	if msg := takeFlash(c); msg != "" {
		resp["flash"] = msg
	}
	c.JSON(http.StatusOK, resp)
}
