package rest

import (
	"context"
	"net/http"
	"strconv"

	"modshop/business/nudge"
	"modshop/domain"
	"modshop/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	NudgeHandler struct {
		validate     *validator.Validate
		nudgeService NudgeService
	}

	NudgeService interface {
		TriggerNudge(ctx context.Context, userID uint, cartItems []domain.CartItem, cartTotal float64) (domain.NudgeResponse, error)
		GetBlockNudge(cartTotal float64) domain.NudgeResponse
		RecordInteraction(ctx context.Context, userID uint, nudgeType domain.NudgeType, accepted bool, opts nudge.InteractionOptions) error
		RecentInteractions(ctx context.Context, userID uint, limit int) ([]domain.NudgeEvent, error)
		Stats(ctx context.Context, userID uint) (*domain.UserNudgeStats, error)
	}

	CartItemPayload struct {
		Title    string  `json:"title" validate:"required"`
		Price    float64 `json:"price" validate:"gte=0"`
		Quantity int     `json:"quantity" validate:"gte=1"`
		Slug     string  `json:"slug"`
		Category string  `json:"category"`
	}

	TriggerNudgeRequest struct {
		Items     []CartItemPayload `json:"items" validate:"dive"`
		CartTotal float64           `json:"cart_total" validate:"gte=0"`
	}

	InteractionRequest struct {
		Type             string   `json:"type" validate:"required,oneof=gentle alternative block"`
		Accepted         bool     `json:"accepted"`
		CurrentItemPrice *float64 `json:"current_item_price"`
		AlternativePrice *float64 `json:"alternative_price"`
		CartTotal        *float64 `json:"cart_total"`
	}
)

func NewNudgeHandler(svc NudgeService) *NudgeHandler {
	return &NudgeHandler{
		validate:     validator.New(),
		nudgeService: svc,
	}
}

// POST /api/v1/nudges/trigger
func (h *NudgeHandler) Trigger(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	timer := prometheus.NewTimer(metrics.NudgeTriggerLatency)
	defer timer.ObserveDuration()
	metrics.NudgeTriggerRequests.Inc()

	var req TriggerNudgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.CartItem{
			Title:    it.Title,
			Price:    it.Price,
			Quantity: it.Quantity,
			Slug:     it.Slug,
			Category: it.Category,
		})
	}

	resp, err := h.nudgeService.TriggerNudge(c.Request().Context(), userID, items, req.CartTotal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(resp))
}

// GET /api/v1/nudges/block?total=123.45
func (h *NudgeHandler) Block(c echo.Context) error {
	if _, ok := c.Get("user_id").(uint); !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	total := 0.0
	if raw := c.QueryParam("total"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid total"})
		}
		total = parsed
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.nudgeService.GetBlockNudge(total)))
}

// POST /api/v1/nudges/interactions
func (h *NudgeHandler) RecordInteraction(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	opts := nudge.InteractionOptions{
		CurrentItemPrice: req.CurrentItemPrice,
		AlternativePrice: req.AlternativePrice,
		CartTotal:        req.CartTotal,
	}

	err := h.nudgeService.RecordInteraction(
		c.Request().Context(),
		userID,
		domain.NudgeType(req.Type),
		req.Accepted,
		opts,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}

// GET /api/v1/nudges/interactions?limit=20
func (h *NudgeHandler) ListInteractions(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	events, err := h.nudgeService.RecentInteractions(c.Request().Context(), userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

// GET /api/v1/nudges/stats
func (h *NudgeHandler) Stats(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	stats, err := h.nudgeService.Stats(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}
