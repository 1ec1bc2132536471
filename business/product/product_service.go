package product

import (
	"context"
	"errors"
	"fmt"
	"modshop/domain"
	"modshop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
	CheapestInCategory(ctx context.Context, category, excludeSlug string) (*domain.Product, error)
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		logger.Error("invalid product slug")
		return nil, errors.New("invalid product slug")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product by slug")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		logger.Error("failed to find product by slug", "slug", slug, "error", err)
		return nil, err
	}

	return &product, nil
}

// CheapestInCategory returns the cheapest product in the category after
// excluding the given slug, or nil when the category is empty.
func (s *productService) CheapestInCategory(ctx context.Context, category, excludeSlug string) (*domain.Product, error) {
	if category == "" {
		logger.Error("invalid category")
		return nil, errors.New("category is required")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get cheapest in category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.CheapestInCategory(ctx, category, excludeSlug)
	if err != nil {
		logger.Error("failed to find cheapest in category", "category", category, "error", err)
		return nil, err
	}

	return product, nil
}
