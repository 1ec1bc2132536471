package rest

import (
	"context"
	"net/http"

	"modshop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	CheapestInCategory(ctx context.Context, category, excludeSlug string) (*domain.Product, error)
}

type ProductHandler struct {
	productService ProductService
	validate       *validator.Validate
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

type CheapestQuery struct {
	Category string `query:"category" validate:"required"`
	Exclude  string `query:"exclude"`
}

// GET /api/v1/products
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	products, err := h.productService.GetAllProducts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// GET /api/v1/products/cheapest?category=clothing&exclude=red-t-shirt
func (h *ProductHandler) GetCheapestInCategory(c echo.Context) error {
	var q CheapestQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product, err := h.productService.CheapestInCategory(c.Request().Context(), q.Category, q.Exclude)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if product == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

// GET /api/v1/products/:slug
func (h *ProductHandler) GetProductBySlug(c echo.Context) error {
	slug := c.Param("slug")

	product, err := h.productService.GetProductBySlug(c.Request().Context(), slug)
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}
