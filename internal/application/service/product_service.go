package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devstore/sales-api/internal/domain/entity"
	"github.com/devstore/sales-api/internal/domain/repository"
	"github.com/devstore/sales-api/pkg/apperror"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists all products
func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// ListProductsByCategory lists products in a given category
func (s *ProductService) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return s.productRepo.ListByCategory(ctx, category)
}

// ListCategories lists the distinct product categories
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Price = input.Price
	product.Description = input.Description
	product.Category = input.Category
	product.Image = input.Image

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
