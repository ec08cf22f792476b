package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devstore/sales-api/internal/domain/entity"
	domainRepo "github.com/devstore/sales-api/internal/domain/repository"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

// Update replaces the cart row and its items with the given state.
func (r *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].CartID = cart.ID
		}
		return tx.Save(cart).Error
	})
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Cart{}, "id = ?", id).Error
	})
}

func (r *cartRepository) List(ctx context.Context) ([]entity.Cart, error) {
	var carts []entity.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&carts).Error
	return carts, err
}
