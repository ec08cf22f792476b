package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/pkg/apperror"
)

// CartService handles shopping cart operations
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// CartItemInput represents a product entry in a cart request
type CartItemInput struct {
	ProductID int
	Quantity  int
}

// CartInput represents the create/update cart input
type CartInput struct {
	UserID int
	Date   time.Time
	Items  []CartItemInput
}

// CreateCart creates a new cart
func (s *CartService) CreateCart(ctx context.Context, input *CartInput) (*entity.Cart, error) {
	cart := &entity.Cart{
		UserID: input.UserID,
		Date:   input.Date,
		Items:  toCartItems(input.Items),
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart retrieves a cart by ID
func (s *CartService) GetCart(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// ListCarts lists all carts
func (s *CartService) ListCarts(ctx context.Context) ([]entity.Cart, error) {
	return s.cartRepo.List(ctx)
}

// UpdateCart replaces a cart's contents
func (s *CartService) UpdateCart(ctx context.Context, id uuid.UUID, input *CartInput) (*entity.Cart, error) {
	cart, err := s.GetCart(ctx, id)
	if err != nil {
		return nil, err
	}

	cart.UserID = input.UserID
	cart.Date = input.Date
	cart.Items = toCartItems(input.Items)

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// DeleteCart removes a cart
func (s *CartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCart(ctx, id); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, id)
}

func toCartItems(inputs []CartItemInput) []entity.CartItem {
	items := make([]entity.CartItem, len(inputs))
	for i, in := range inputs {
		items[i] = entity.CartItem{ProductID: in.ProductID, Quantity: in.Quantity}
	}
	return items
}
