package repository

import (
	"context"

	"github.com/devstore/sales-api/internal/domain/entity"
)

// IdempotencyRepository stores processed request keys for replay protection
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
