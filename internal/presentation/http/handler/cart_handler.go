package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/presentation/http/dto/request"
	"github.com/devstore/sales-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// List handles listing carts
func (h *CartHandler) List(c *gin.Context) {
	carts, err := h.cartService.ListCarts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Carts retrieved successfully", carts)
}

// Create handles creating a cart
func (h *CartHandler) Create(c *gin.Context) {
	var req request.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.CreateCart(c.Request.Context(), &service.CartInput{
		UserID: req.UserID,
		Date:   req.Date,
		Items:  toCartItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cart created successfully", cart)
}

// Get handles getting a single cart
func (h *CartHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cart)
}

// Update handles replacing a cart's contents
func (h *CartHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	var req request.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateCart(c.Request.Context(), id, &service.CartInput{
		UserID: req.UserID,
		Date:   req.Date,
		Items:  toCartItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated successfully", cart)
}

// Delete handles deleting a cart
func (h *CartHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	if err := h.cartService.DeleteCart(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart deleted successfully", nil)
}

func toCartItemInputs(items []request.CartItemRequest) []service.CartItemInput {
	inputs := make([]service.CartItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.CartItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return inputs
}
