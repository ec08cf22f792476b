package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/event"
	"github.com/devstore/sales-api/internal/domain/repository"
	domainservice "github.com/devstore/sales-api/internal/domain/service"
	"github.com/devstore/sales-api/pkg/apperror"
)

// memorySaleRepo is an in-memory SaleRepository with the same optimistic
// locking behavior as the database-backed one.
type memorySaleRepo struct {
	mu    sync.Mutex
	sales map[uuid.UUID]*entity.Sale

	failUpdate error
}

func newMemorySaleRepo() *memorySaleRepo {
	return &memorySaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (r *memorySaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return entity.ErrDuplicateSaleNumber
		}
	}
	copied := *sale
	r.sales[sale.ID] = &copied
	return nil
}

func (r *memorySaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	copied.Items = append([]entity.SaleItem(nil), sale.Items...)
	return &copied, nil
}

func (r *memorySaleRepo) GetBySaleNumber(_ context.Context, saleNumber string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sale := range r.sales {
		if sale.SaleNumber == saleNumber {
			copied := *sale
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memorySaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sales[sale.ID]
	if !ok {
		return entity.ErrSaleNotFound
	}
	if stored.Version != sale.Version {
		return entity.ErrVersionConflict
	}
	copied := *sale
	copied.Version = sale.Version + 1
	r.sales[sale.ID] = &copied
	sale.Version = copied.Version
	return nil
}

func (r *memorySaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sales, id)
	return nil
}

func (r *memorySaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sales := make([]entity.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		sales = append(sales, *sale)
	}
	return sales, int64(len(sales)), nil
}

// capturingPublisher records published events and optionally fails.
type capturingPublisher struct {
	mu     sync.Mutex
	events []event.SaleEvent
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, ev event.SaleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *capturingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]event.Type, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

func newTestService() (*service.SaleService, *memorySaleRepo, *capturingPublisher) {
	repo := newMemorySaleRepo()
	publisher := &capturingPublisher{}
	svc := service.NewSaleService(repo, domainservice.NewDefaultDiscountService(), publisher)
	return svc, repo, publisher
}

func createInput(saleNumber string) *service.CreateSaleInput {
	return &service.CreateSaleInput{
		SaleNumber:        saleNumber,
		SaleDate:          time.Now().UTC(),
		CustomerID:        7,
		CustomerName:      "Jane Roe",
		BranchID:          3,
		BranchDescription: "Harbor Branch",
		Items: []service.SaleItemInput{
			{ProductID: 1, ProductDescription: "Widget", Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: 2, ProductDescription: "Gadget", Quantity: 2, UnitPrice: decimal.NewFromInt(30)},
		},
	}
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()
	svc, repo, publisher := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	// qty 5 at 100 earns 10% (450), qty 2 at 30 earns nothing (60).
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(510)),
		"total = %s, want 510", sale.TotalAmount)

	stored, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 2)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, event.TypeSaleCreated, publisher.events[0].Type)
	assert.Equal(t, sale.ID, publisher.events[0].SaleID)
}

func TestCreateSaleDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	_, err = svc.CreateSale(ctx, createInput("SALE-100"))
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateSaleQuantityOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, repo, publisher := newTestService()

	input := createInput("SALE-100")
	input.Items[0].Quantity = 21

	_, err := svc.CreateSale(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	assert.Empty(t, repo.sales, "rejected sale must not be persisted")
	assert.Empty(t, publisher.events)
}

func TestCreateSaleValidationFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	input := createInput("SALE-100")
	input.CustomerName = ""

	_, err := svc.CreateSale(ctx, input)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.NotEmpty(t, appErr.Errors)
}

func TestGetSaleNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.GetSale(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCancelSale(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	cancelled, err := svc.CancelSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.True(t, cancelled.TotalAmount.Equal(sale.TotalAmount), "cancel must not rewrite the total")

	assert.Equal(t, []event.Type{event.TypeSaleCreated, event.TypeSaleCancelled}, publisher.types())

	// Second cancel is rejected against the frozen state.
	_, err = svc.CancelSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelSaleItem(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)
	itemID := sale.Items[0].ID

	updated, err := svc.CancelSaleItem(ctx, sale.ID, itemID)
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(60)),
		"total = %s, want 60 after cancelling the discounted item", updated.TotalAmount)

	require.Len(t, publisher.events, 2)
	last := publisher.events[1]
	assert.Equal(t, event.TypeItemCancelled, last.Type)
	require.NotNil(t, last.ItemID)
	assert.Equal(t, itemID, *last.ItemID)
}

func TestAddAndUpdateAndRemoveSaleItem(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	updated, err := svc.AddSaleItem(ctx, sale.ID, &service.SaleItemInput{
		ProductID: 3, ProductDescription: "Sprocket", Quantity: 10, UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 3)
	// 510 + (100 - 20% = 80)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(590)))

	itemID := updated.Items[2].ID
	updated, err = svc.UpdateSaleItem(ctx, sale.ID, itemID, 3)
	require.NoError(t, err)
	// Sprocket drops to 3 units, losing its discount: 510 + 30.
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(540)))

	updated, err = svc.RemoveSaleItem(ctx, sale.ID, itemID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(510)))

	assert.Equal(t, []event.Type{
		event.TypeSaleCreated,
		event.TypeSaleModified,
		event.TypeSaleModified,
		event.TypeSaleModified,
	}, publisher.types())
}

func TestUpdateSaleReplacesItems(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	updated, err := svc.UpdateSale(ctx, sale.ID, &service.UpdateSaleInput{
		SaleNumber:        "SALE-100",
		SaleDate:          sale.SaleDate,
		CustomerID:        7,
		CustomerName:      "Jane Roe",
		BranchID:          3,
		BranchDescription: "Harbor Branch",
		Items: []service.SaleItemInput{
			{ProductID: 9, ProductDescription: "Cog", Quantity: 15, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(600)),
		"total = %s, want 600", updated.TotalAmount)
	assert.Equal(t, event.TypeSaleModified, publisher.events[len(publisher.events)-1].Type)
}

func TestVersionConflictMapsToConflict(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	repo.failUpdate = entity.ErrVersionConflict

	_, err = svc.CancelSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	repo := newMemorySaleRepo()
	publisher := &capturingPublisher{err: errors.New("broker unreachable")}
	svc := service.NewSaleService(repo, domainservice.NewDefaultDiscountService(), publisher)

	sale, err := svc.CreateSale(ctx, createInput("SALE-100"))
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored, "sale must be persisted even when publishing fails")
}
