package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/enum"
	"github.com/devstore/sales-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations.
// Update applies optimistic locking on the sale's Version column and returns
// entity.ErrVersionConflict when a concurrent writer got there first.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.SaleStatus
	CustomerID *int
	BranchID   *int
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
