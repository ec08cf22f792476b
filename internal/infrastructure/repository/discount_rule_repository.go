package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devstore/sales-api/internal/domain/entity"
	domainRepo "github.com/devstore/sales-api/internal/domain/repository"
)

type discountRuleRepository struct {
	db *gorm.DB
}

// NewDiscountRuleRepository creates a new discount rule repository
func NewDiscountRuleRepository(db *gorm.DB) domainRepo.DiscountRuleRepository {
	return &discountRuleRepository{db: db}
}

func (r *discountRuleRepository) Create(ctx context.Context, rule *entity.DiscountRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *discountRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRule, error) {
	var rule entity.DiscountRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *discountRuleRepository) Update(ctx context.Context, rule *entity.DiscountRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *discountRuleRepository) GetActiveRules(ctx context.Context) ([]entity.DiscountRule, error) {
	var rules []entity.DiscountRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("min_quantity ASC").
		Find(&rules).Error
	return rules, err
}

// GetApplicableRule returns the active rule covering the quantity. When rule
// ranges overlap, the one with the highest min_quantity wins.
func (r *discountRuleRepository) GetApplicableRule(ctx context.Context, quantity int) (*entity.DiscountRule, error) {
	var rule entity.DiscountRule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND min_quantity <= ? AND max_quantity >= ?", true, quantity, quantity).
		Order("min_quantity DESC").
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *discountRuleRepository) List(ctx context.Context) ([]entity.DiscountRule, error) {
	var rules []entity.DiscountRule
	err := r.db.WithContext(ctx).Order("min_quantity ASC").Find(&rules).Error
	return rules, err
}
