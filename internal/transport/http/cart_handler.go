package http

import (
	"context"
	"errors"
	"net/http"

	"beadshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts  service.CartService
	orders service.OrderService
	log    *zap.Logger
}

func NewCartHandler(carts service.CartService, orders service.OrderService, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, orders: orders, log: log}
}

type cartItemForm struct {
	ProductID  string `form:"product_id" binding:"required"`
	ReturnPath string `form:"return_path"`
}

// AddItem puts a product into the session cart and redirects back.
// A missing product is not an error for the user: redirect home.
func (h *CartHandler) AddItem(c *gin.Context) {
	h.mutateItem(c, h.carts.AddItem)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.mutateItem(c, h.carts.RemoveItem)
}

func (h *CartHandler) mutateItem(c *gin.Context, op func(ctx context.Context, cartID, productID uuid.UUID) error) {
	var form cartItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	productID, err := uuid.Parse(form.ProductID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := c.Request.Context()
	cart, sessID, err := h.carts.ResolveCart(ctx, sessionIDFromCookie(c))
	if err != nil {
		h.log.Error("resolve cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	setSessionCookie(c, sessID)

	if err := op(ctx, cart.ID, productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.log.Error("cart mutation", zap.String("product_id", form.ProductID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Redirect(http.StatusFound, returnPath(form.ReturnPath))
}

type makeOrderForm struct {
	Email      string `form:"customer_email" binding:"required,email"`
	Country    string `form:"country" binding:"required"`
	Message    string `form:"message" binding:"max=300"`
	Agree      string `form:"agree_with_policies" binding:"required"`
	ReturnPath string `form:"return_path"`
}

// MakeOrder turns the session cart into an order. Always redirects, outcome
// goes into the flash cookie.
func (h *CartHandler) MakeOrder(c *gin.Context) {
	var form makeOrderForm
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "Error occurred, try again later.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := c.Request.Context()
	cart, sessID, err := h.carts.ResolveCart(ctx, sessionIDFromCookie(c))
	if err != nil {
		h.log.Error("resolve cart", zap.Error(err))
		setFlash(c, "Error occurred, try again later.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	setSessionCookie(c, sessID)

	order, err := h.orders.Checkout(ctx, cart.ID, service.CheckoutInput{
		Email:         form.Email,
		Country:       form.Country,
		Message:       form.Message,
		AgreePolicies: form.Agree != "",
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotNew), errors.Is(err, service.ErrNothingToSell):
			setFlash(c, "No items to be sold!")
			c.Redirect(http.StatusFound, "/")
		case errors.Is(err, service.ErrPoliciesNotAccepted):
			setFlash(c, "Error occurred, try again later.")
			c.Redirect(http.StatusFound, "/")
		case order != nil:
			// заказ создан, упала только отправка писем
			h.log.Error("order email failed",
				zap.String("order_id", order.ID.String()), zap.Error(err))
			setFlash(c, "Order created. E-mail with details was sent. Please, wait for invoice")
			c.Redirect(http.StatusFound, returnPath(form.ReturnPath))
		default:
			h.log.Error("checkout failed", zap.Error(err))
			setFlash(c, "Error occurred, try again later.")
			c.Redirect(http.StatusFound, "/")
		}
		return
	}

	h.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("country", order.Country),
		zap.Int("items", len(order.Items)))
	setFlash(c, "Order created. E-mail with details was sent. Please, wait for invoice")
	c.Redirect(http.StatusFound, returnPath(form.ReturnPath))
}

func returnPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
