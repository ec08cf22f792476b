package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/event"
	"github.com/devstore/sales-api/internal/domain/repository"
	domainservice "github.com/devstore/sales-api/internal/domain/service"
	"github.com/devstore/sales-api/pkg/apperror"
	"github.com/devstore/sales-api/pkg/pagination"
)

// SaleService handles sale-related operations. It owns all I/O around the
// Sale aggregate: loading, persisting, and event publication. The aggregate
// itself stays pure; events are published only after a successful save and
// publication failures never undo the committed change.
type SaleService struct {
	saleRepo        repository.SaleRepository
	discountService *domainservice.SaleDiscountService
	publisher       event.Publisher
	logger          *log.Entry
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	discountService *domainservice.SaleDiscountService,
	publisher event.Publisher,
) *SaleService {
	return &SaleService{
		saleRepo:        saleRepo,
		discountService: discountService,
		publisher:       publisher,
		logger:          log.WithField("component", "sale-service"),
	}
}

// SaleItemInput represents an item in a create/update sale request
type SaleItemInput struct {
	ProductID          int
	ProductDescription string
	Quantity           int
	UnitPrice          decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	SaleNumber        string
	SaleDate          time.Time
	CustomerID        int
	CustomerName      string
	BranchID          int
	BranchDescription string
	Items             []SaleItemInput
}

// CreateSale builds the sale aggregate, prices every item through the
// discount service, validates, persists, and publishes SaleCreated.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	existing, err := s.saleRepo.GetBySaleNumber(ctx, input.SaleNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Sale with number " + input.SaleNumber + " already exists")
	}

	sale := entity.NewSale(
		input.SaleNumber,
		input.SaleDate,
		input.CustomerID,
		input.CustomerName,
		input.BranchID,
		input.BranchDescription,
	)

	for _, item := range input.Items {
		if _, err := sale.AddItem(ctx, s.discountService, item.ProductID, item.ProductDescription, item.Quantity, item.UnitPrice); err != nil {
			return nil, mapSaleError(err)
		}
	}

	if violations := sale.Validate(); len(violations) > 0 {
		return nil, apperror.NewValidationError(toFieldErrors(violations))
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleCreated, sale))
	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleInput represents the update sale input. Items replace the sale's
// current item list wholesale.
type UpdateSaleInput struct {
	SaleNumber        string
	SaleDate          time.Time
	CustomerID        int
	CustomerName      string
	BranchID          int
	BranchDescription string
	Items             []SaleItemInput
}

// UpdateSale replaces the sale's header fields and items, re-pricing every
// item, and publishes SaleModified.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	sale.SaleNumber = input.SaleNumber
	sale.SaleDate = input.SaleDate
	sale.CustomerID = input.CustomerID
	sale.CustomerName = input.CustomerName
	sale.BranchID = input.BranchID
	sale.BranchDescription = input.BranchDescription

	sale.Items = nil
	for _, item := range input.Items {
		if _, err := sale.AddItem(ctx, s.discountService, item.ProductID, item.ProductDescription, item.Quantity, item.UnitPrice); err != nil {
			return nil, mapSaleError(err)
		}
	}

	if violations := sale.Validate(); len(violations) > 0 {
		return nil, apperror.NewValidationError(toFieldErrors(violations))
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleModified, sale))
	return sale, nil
}

// DeleteSale removes a sale entirely
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return err
	}
	return s.saleRepo.Delete(ctx, sale.ID)
}

// CancelSale cancels the whole sale and publishes SaleCancelled. Items keep
// their individual cancellation flags.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.Cancel(); err != nil {
		return nil, mapSaleError(err)
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleCancelled, sale))
	return sale, nil
}

// CancelSaleItem cancels a single item, recalculates the sale total, and
// publishes ItemCancelled.
func (s *SaleService) CancelSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	item, err := sale.CancelItem(itemID)
	if err != nil {
		return nil, mapSaleError(err)
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewItemCancelledEvent(sale, item))
	return sale, nil
}

// AddSaleItem appends a new priced item to an existing sale.
func (s *SaleService) AddSaleItem(ctx context.Context, saleID uuid.UUID, input *SaleItemInput) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if _, err := sale.AddItem(ctx, s.discountService, input.ProductID, input.ProductDescription, input.Quantity, input.UnitPrice); err != nil {
		return nil, mapSaleError(err)
	}

	if violations := sale.Validate(); len(violations) > 0 {
		return nil, apperror.NewValidationError(toFieldErrors(violations))
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleModified, sale))
	return sale, nil
}

// UpdateSaleItem changes an item's quantity, re-pricing it for the new value.
func (s *SaleService) UpdateSaleItem(ctx context.Context, saleID, itemID uuid.UUID, quantity int) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.UpdateItem(ctx, s.discountService, itemID, quantity); err != nil {
		return nil, mapSaleError(err)
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleModified, sale))
	return sale, nil
}

// RemoveSaleItem deletes a non-cancelled item from the sale.
func (s *SaleService) RemoveSaleItem(ctx context.Context, saleID, itemID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.RemoveItem(itemID); err != nil {
		return nil, mapSaleError(err)
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, mapSaleError(err)
	}

	s.publish(ctx, event.NewSaleEvent(event.TypeSaleModified, sale))
	return sale, nil
}

// publish delivers the event best-effort. Failures are logged and swallowed:
// the domain change is already committed.
func (s *SaleService) publish(ctx context.Context, ev event.SaleEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": ev.Type,
			"sale_id":    ev.SaleID,
		}).Warn("failed to publish sale event")
	}
}

func toFieldErrors(violations []entity.ValidationError) []apperror.FieldError {
	fieldErrors := make([]apperror.FieldError, len(violations))
	for i, v := range violations {
		fieldErrors[i] = apperror.FieldError{Field: v.Field, Message: v.Message}
	}
	return fieldErrors
}

// mapSaleError translates domain sentinel errors into HTTP-aware app errors.
func mapSaleError(err error) error {
	switch {
	case errors.Is(err, entity.ErrItemNotFound):
		return apperror.NewNotFoundError("Sale item")
	case errors.Is(err, entity.ErrSaleAlreadyCancelled):
		return apperror.NewInvalidStateError("Sale is already cancelled")
	case errors.Is(err, entity.ErrSaleCancelled):
		return apperror.NewInvalidStateError("Cannot modify a cancelled sale")
	case errors.Is(err, entity.ErrItemAlreadyCancelled):
		return apperror.NewInvalidStateError("Sale item is already cancelled")
	case errors.Is(err, entity.ErrItemCancelled):
		return apperror.NewInvalidStateError("Cannot modify a cancelled sale item")
	case errors.Is(err, entity.ErrQuantityOutOfRange):
		return apperror.NewBadRequestError("It's not possible to sell above 20 identical items")
	case errors.Is(err, entity.ErrDiscountOutOfRange):
		return apperror.NewBadRequestError("Discount percentage must be between 0 and 100")
	case errors.Is(err, entity.ErrDuplicateSaleNumber):
		return apperror.NewConflictError("Sale number already exists")
	case errors.Is(err, entity.ErrVersionConflict):
		return apperror.NewConflictError("Sale was modified by a concurrent request, please retry")
	}
	return err
}
