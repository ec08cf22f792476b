package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/domain/entity"
)

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Cart, error)
}
