package nudge

import (
	"context"
	"errors"
	"modshop/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheaperAlternative_ReturnsCheaperProduct(t *testing.T) {
	catalog := &fakeCatalog{product: &domain.Product{
		Slug:        "basic-tee",
		Title:       "Basic Tee",
		Price:       12,
		Image:       "/img/basic-tee.jpg",
		Category:    "clothing",
		Description: "Plain cotton tee",
	}}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Red T-Shirt", Price: 20, Quantity: 1, Slug: "red-t-shirt"})

	assert.Equal(t, "Basic Tee", got.Name)
	assert.Equal(t, 12.0, got.Price)
	assert.Equal(t, "basic-tee", got.Slug)
	assert.Equal(t, "/img/basic-tee.jpg", got.Image)
	assert.Equal(t, "clothing", got.Category)
	assert.Equal(t, "Plain cotton tee", got.Description)
	assert.False(t, got.IsAlreadyCheapest)
}

func TestCheaperAlternative_ExplicitCategorySkipsClassifier(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Mystery Gadget", Price: 40, Quantity: 1, Category: "household"})

	require.Equal(t, 1, catalog.calls)
	assert.Equal(t, "household", catalog.category)
}

func TestCheaperAlternative_AlreadyCheapest(t *testing.T) {
	// The catalog's best in-category price is not lower than the item's.
	catalog := &fakeCatalog{product: &domain.Product{
		Slug: "pricey-tee", Title: "Pricey Tee", Price: 25, Category: "clothing",
	}}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Red T-Shirt", Price: 20, Quantity: 1, Slug: "red-t-shirt"})

	assert.Equal(t, "Already the cheapest option", got.Name)
	assert.Equal(t, 20.0, got.Price)
	assert.Equal(t, "clothing", got.Category)
	assert.True(t, got.IsAlreadyCheapest)
	assert.Empty(t, got.Slug)
}

func TestCheaperAlternative_TiedPriceIsAlreadyCheapest(t *testing.T) {
	catalog := &fakeCatalog{product: &domain.Product{
		Slug: "other-tee", Title: "Other Tee", Price: 20, Category: "clothing",
	}}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Red T-Shirt", Price: 20, Quantity: 1})

	assert.True(t, got.IsAlreadyCheapest)
}

func TestCheaperAlternative_UnclassifiableTitleFallsBack(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Mystery Gadget", Price: 40, Quantity: 1})

	assert.Zero(t, catalog.calls)
	assert.Equal(t, "Budget-Friendly Alternative", got.Name)
	assert.InDelta(t, 28.0, got.Price, 1e-9)
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Slug)
}

func TestCheaperAlternative_FallbackPriceIsFloored(t *testing.T) {
	svc := newTestService(newFakeStatsRepo(), &fakeCatalog{}, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Mystery Gadget", Price: 4, Quantity: 1})

	// max(5, 4*0.7)
	assert.Equal(t, 5.0, got.Price)
}

func TestCheaperAlternative_CatalogErrorFallsBack(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog unavailable")}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Red T-Shirt", Price: 20, Quantity: 1})

	assert.Equal(t, "Budget-Friendly Alternative", got.Name)
	assert.InDelta(t, 14.0, got.Price, 1e-9)
}

func TestCheaperAlternative_EmptyCategoryFallsBack(t *testing.T) {
	// Catalog has nothing left in the category after exclusion.
	catalog := &fakeCatalog{}
	svc := newTestService(newFakeStatsRepo(), catalog, nil)

	got := svc.CheaperAlternative(context.Background(),
		domain.CartItem{Title: "Red T-Shirt", Price: 20, Quantity: 1, Slug: "red-t-shirt"})

	require.Equal(t, 1, catalog.calls)
	assert.Equal(t, "Budget-Friendly Alternative", got.Name)
}
