package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/domain/enum"
	"github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/internal/presentation/http/dto/request"
	"github.com/devstore/sales-api/internal/presentation/http/dto/response"
	"github.com/devstore/sales-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.SaleStatus(statusInt)
			params.Status = &status
		}
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := strconv.Atoi(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		if branchID, err := strconv.Atoi(branchIDStr); err == nil {
			params.BranchID = &branchID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		SaleNumber:        req.SaleNumber,
		SaleDate:          req.SaleDate,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		BranchID:          req.BranchID,
		BranchDescription: req.BranchDescription,
		Items:             toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Update handles replacing a sale's header and items
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), id, &service.UpdateSaleInput{
		SaleNumber:        req.SaleNumber,
		SaleDate:          req.SaleDate,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		BranchID:          req.BranchID,
		BranchDescription: req.BranchDescription,
		Items:             toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles deleting a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}

// Cancel handles cancelling a whole sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}

// AddItem handles adding an item to an existing sale
func (h *SaleHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.SaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.AddSaleItem(c.Request.Context(), id, &service.SaleItemInput{
		ProductID:          req.ProductID,
		ProductDescription: req.ProductDescription,
		Quantity:           req.Quantity,
		UnitPrice:          req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale item added successfully", sale)
}

// UpdateItem handles changing an item's quantity
func (h *SaleHandler) UpdateItem(c *gin.Context) {
	saleID, itemID, ok := parseSaleItemIDs(c)
	if !ok {
		return
	}

	var req request.UpdateSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSaleItem(c.Request.Context(), saleID, itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale item updated successfully", sale)
}

// RemoveItem handles removing an item from a sale
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	saleID, itemID, ok := parseSaleItemIDs(c)
	if !ok {
		return
	}

	sale, err := h.saleService.RemoveSaleItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale item removed successfully", sale)
}

// CancelItem handles cancelling a single sale item
func (h *SaleHandler) CancelItem(c *gin.Context) {
	saleID, itemID, ok := parseSaleItemIDs(c)
	if !ok {
		return
	}

	sale, err := h.saleService.CancelSaleItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale item cancelled successfully", sale)
}

func parseSaleItemIDs(c *gin.Context) (saleID, itemID uuid.UUID, ok bool) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err = uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale item ID")
		return uuid.Nil, uuid.Nil, false
	}
	return saleID, itemID, true
}

func toItemInputs(items []request.SaleItemRequest) []service.SaleItemInput {
	inputs := make([]service.SaleItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.SaleItemInput{
			ProductID:          item.ProductID,
			ProductDescription: item.ProductDescription,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
		}
	}
	return inputs
}
