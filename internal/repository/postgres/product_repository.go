package postgres

import (
	"context"
	"errors"
	"fmt"
	"modshop/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, errors.New("product not found")
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// CheapestInCategory returns the lowest-priced product in the category,
// excluding the given slug. (nil, nil) when no product remains.
func (r *ProductRepository) CheapestInCategory(ctx context.Context, category, excludeSlug string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	query := r.DB.WithContext(ctx).Where("category = ?", category)
	if excludeSlug != "" {
		query = query.Where("slug <> ?", excludeSlug)
	}

	err := query.Order("price ASC").First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cheapest product: %w", err)
	}

	return &product, nil
}
