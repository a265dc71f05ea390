package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tillpoint/internal/application/service"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/request"
	"github.com/sangkips/tillpoint/internal/presentation/http/dto/response"
)

// CartHandler exposes the session cart and checkout
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the cart with its totals
func (h *CartHandler) Get(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	view, err := h.cartService.Get(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved", view)
}

// AddItem adds a product by id or barcode
func (h *CartHandler) AddItem(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.ProductID == 0 && req.Barcode == "" {
		response.BadRequest(c, "product_id or barcode is required")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), session, &service.AddItemInput{
		ProductID: req.ProductID,
		Barcode:   req.Barcode,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", view)
}

// UpdateQuantity sets a line quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), session, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

// UpdateItemDiscount sets a line discount
func (h *CartHandler) UpdateItemDiscount(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.UpdateItemDiscount(c.Request.Context(), session, productID, req.ToDiscount())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated", view)
}

// RemoveItem drops a line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), session, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", view)
}

// SetOrderDiscount sets the whole-order discount
func (h *CartHandler) SetOrderDiscount(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.SetOrderDiscount(c.Request.Context(), session, req.ToDiscount())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order discount updated", view)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	view, err := h.cartService.Clear(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", view)
}

// Checkout commits the cart as a sale
// @Summary Checkout
// @Description Commit the session cart. Send Idempotency-Key to make retries safe.
// @Tags sales
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	session, ok := GetSession(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	sale, err := h.cartService.Checkout(c.Request.Context(), session, &service.CommitSaleInput{
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		CustomerID:    req.CustomerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale completed", sale)
}
