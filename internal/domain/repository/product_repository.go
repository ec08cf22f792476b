package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}
