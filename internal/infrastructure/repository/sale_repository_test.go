package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/enum"
	domainRepo "github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/internal/infrastructure/repository"
	"github.com/devstore/sales-api/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entity.Sale{}, &entity.SaleItem{}, &entity.DiscountRule{}))
	return db
}

func storedSale(t *testing.T, repo domainRepo.SaleRepository, saleNumber string) *entity.Sale {
	t.Helper()
	ctx := context.Background()

	sale := entity.NewSale(saleNumber, time.Now().UTC(), 1, "John Doe", 1, "Downtown Branch")
	item := entity.NewSaleItem(1, "Widget", 5, decimal.NewFromInt(100))
	require.NoError(t, item.ApplyDiscount(decimal.NewFromInt(10)))
	item.SaleID = sale.ID
	sale.Items = append(sale.Items, *item)
	sale.CalculateTotalAmount()

	require.NoError(t, repo.Create(ctx, sale))
	return sale
}

func TestSaleRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	sale := storedSale(t, repo, "SALE-001")

	loaded, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "SALE-001", loaded.SaleNumber)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, enum.SaleStatusActive, loaded.Status)

	bySaleNumber, err := repo.GetBySaleNumber(ctx, "SALE-001")
	require.NoError(t, err)
	require.NotNil(t, bySaleNumber)
	assert.Equal(t, sale.ID, bySaleNumber.ID)
}

func TestSaleRepositoryGetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	sale := entity.NewSale("SALE-404", time.Now().UTC(), 1, "John Doe", 1, "Downtown Branch")
	loaded, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	byNumber, err := repo.GetBySaleNumber(ctx, "SALE-404")
	require.NoError(t, err)
	assert.Nil(t, byNumber)
}

func TestSaleRepositoryDuplicateSaleNumber(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	storedSale(t, repo, "SALE-001")

	dup := entity.NewSale("SALE-001", time.Now().UTC(), 2, "Jane Roe", 1, "Downtown Branch")
	item := entity.NewSaleItem(2, "Gadget", 2, decimal.NewFromInt(30))
	item.SaleID = dup.ID
	dup.Items = append(dup.Items, *item)
	dup.CalculateTotalAmount()

	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, entity.ErrDuplicateSaleNumber)
}

func TestSaleRepositoryUpdateReplacesItemsAndBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	sale := storedSale(t, repo, "SALE-001")
	loaded, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)

	replacement := entity.NewSaleItem(9, "Cog", 15, decimal.NewFromInt(50))
	require.NoError(t, replacement.ApplyDiscount(decimal.NewFromInt(20)))
	replacement.SaleID = loaded.ID
	loaded.Items = []entity.SaleItem{*replacement}
	loaded.CalculateTotalAmount()

	versionBefore := loaded.Version
	require.NoError(t, repo.Update(ctx, loaded))
	assert.Equal(t, versionBefore+1, loaded.Version)

	reloaded, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 9, reloaded.Items[0].ProductID)
	assert.True(t, reloaded.TotalAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, versionBefore+1, reloaded.Version)
}

func TestSaleRepositoryConcurrentUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	sale := storedSale(t, repo, "SALE-001")

	// Two readers load the same version.
	first, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)

	require.NoError(t, first.Cancel())
	require.NoError(t, repo.Update(ctx, first))

	// The stale writer must lose.
	second.CustomerName = "Someone Else"
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, entity.ErrVersionConflict)
	assert.True(t, entity.IsVersionConflict(err))
}

func TestSaleRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewSaleRepository(db)

	sale := storedSale(t, repo, "SALE-001")
	require.NoError(t, repo.Delete(ctx, sale.ID))

	loaded, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	var itemCount int64
	require.NoError(t, db.Model(&entity.SaleItem{}).Where("sale_id = ?", sale.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount, "items must not outlive their sale")
}

func TestSaleRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSaleRepository(newTestDB(t))

	active := storedSale(t, repo, "SALE-001")
	cancelled := storedSale(t, repo, "SALE-002")

	loaded, err := repo.GetByID(ctx, cancelled.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.Cancel())
	require.NoError(t, repo.Update(ctx, loaded))

	status := enum.SaleStatusActive
	sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Status:     &status,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sales, 1)
	assert.Equal(t, active.ID, sales[0].ID)

	customerID := 1
	sales, total, err = repo.List(ctx, &domainRepo.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		CustomerID: &customerID,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, sales, 2)
}
