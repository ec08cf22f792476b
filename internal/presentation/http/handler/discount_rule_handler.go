package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/presentation/http/dto/request"
	"github.com/devstore/sales-api/internal/presentation/http/dto/response"
)

// DiscountRuleHandler handles discount rule HTTP requests
type DiscountRuleHandler struct {
	ruleService *service.DiscountRuleService
}

// NewDiscountRuleHandler creates a new discount rule handler
func NewDiscountRuleHandler(ruleService *service.DiscountRuleService) *DiscountRuleHandler {
	return &DiscountRuleHandler{ruleService: ruleService}
}

// List handles listing all discount rules
func (h *DiscountRuleHandler) List(c *gin.Context) {
	rules, err := h.ruleService.ListRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rules retrieved successfully", rules)
}

// Create handles creating a discount rule
func (h *DiscountRuleHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), &service.CreateRuleInput{
		MinQuantity:        req.MinQuantity,
		MaxQuantity:        req.MaxQuantity,
		DiscountPercentage: req.DiscountPercentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount rule created successfully", rule)
}

// Get handles getting a single discount rule
func (h *DiscountRuleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount rule ID")
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rule retrieved successfully", rule)
}

// Update handles updating a discount rule
func (h *DiscountRuleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount rule ID")
		return
	}

	var req request.UpdateDiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), id, &service.UpdateRuleInput{
		MinQuantity:        req.MinQuantity,
		MaxQuantity:        req.MaxQuantity,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rule updated successfully", rule)
}
