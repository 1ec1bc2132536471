package nudge

import (
	"context"
	"fmt"
	"modshop/domain"
	"modshop/pkg/logger"
	"strconv"
	"sync"
	"time"

	"gorm.io/datatypes"
)

const defaultCatalogTimeout = 2 * time.Second

// ---- Repository interfaces ----

// StatsRepository is the persistent key-value store holding the per-user
// nudge counters. GetStats must return a zero-valued default record (never
// an error) for users with no or unreadable history.
type StatsRepository interface {
	GetStats(ctx context.Context, userID uint) (*domain.UserNudgeStats, error)
	SaveStats(ctx context.Context, userID uint, stats *domain.UserNudgeStats) error
}

// ProductCatalog answers the cheapest-in-category query, excluding a slug so
// an item is never suggested as its own alternative. A category with no
// remaining products yields (nil, nil).
type ProductCatalog interface {
	CheapestInCategory(ctx context.Context, category, excludeSlug string) (*domain.Product, error)
}

// NudgeEventRepository appends interaction rows to the audit log and reads
// them back for inspection, newest first.
type NudgeEventRepository interface {
	SaveEvent(ctx context.Context, event domain.NudgeEvent) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.NudgeEvent, error)
}

// InteractionOptions carries the optional amounts attached to a recorded
// interaction. Nil means the caller did not provide the value.
type InteractionOptions struct {
	CurrentItemPrice *float64
	AlternativePrice *float64
	CartTotal        *float64
}

// ---- Usecase / Service ----

type NudgeService struct {
	statsRepo      StatsRepository
	catalog        ProductCatalog
	eventRepo      NudgeEventRepository
	catalogTimeout time.Duration

	// The stats load-modify-save cycle is not atomic; serialize writers
	// within the process.
	mu sync.Mutex
}

func NewNudgeService(
	statsRepo StatsRepository,
	catalog ProductCatalog,
	eventRepo NudgeEventRepository,
	catalogTimeout time.Duration,
) *NudgeService {
	if catalogTimeout <= 0 {
		catalogTimeout = defaultCatalogTimeout
	}
	return &NudgeService{
		statsRepo:      statsRepo,
		catalog:        catalog,
		eventRepo:      eventRepo,
		catalogTimeout: catalogTimeout,
	}
}

// TriggerNudge picks an arm for the current checkout attempt and builds the
// response the presentation layer renders. Only the alternative branch
// touches the product catalog.
func (s *NudgeService) TriggerNudge(
	ctx context.Context,
	userID uint,
	cartItems []domain.CartItem,
	cartTotal float64,
) (domain.NudgeResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.NudgeResponse{}, fmt.Errorf("context error: %w", err)
	}

	stats := s.loadStats(ctx, userID)
	arm := selectNudge(stats, cartItems)

	tid := TraceIDFromContext(ctx)
	logger.Debug("nudge_trigger",
		"trace_id", tid,
		"user_id", userID,
		"arm", string(arm),
		"cart_items", len(cartItems),
		"cart_total", cartTotal,
		"total_shown", stats.TotalShown(),
	)

	NudgeSelectionsTotal.WithLabelValues(string(arm)).Inc()

	switch arm {
	case domain.NudgeGentle:
		title := "this item"
		if len(cartItems) > 0 && cartItems[0].Title != "" {
			title = cartItems[0].Title
		}
		return domain.NudgeResponse{
			Type: domain.NudgeGentle,
			Data: &domain.NudgeData{ProductTitle: title},
		}, nil

	case domain.NudgeAlternative:
		item := cartItems[0]
		alt := s.CheaperAlternative(ctx, item)

		currentProduct := item.Title
		if currentProduct == "" {
			currentProduct = "Current item"
		}

		return domain.NudgeResponse{
			Type: domain.NudgeAlternative,
			Data: &domain.NudgeData{
				CurrentProduct:      currentProduct,
				CurrentPrice:        item.Price,
				AlternativeProduct:  alt.Name,
				AlternativePrice:    alt.Price,
				AlternativeSlug:     alt.Slug,
				AlternativeImage:    alt.Image,
				AlternativeCategory: alt.Category,
				IsAlreadyCheapest:   alt.IsAlreadyCheapest,
			},
		}, nil

	case domain.NudgeBlock:
		return s.GetBlockNudge(cartTotal), nil

	default:
		return domain.NudgeResponse{Type: domain.NudgeNone}, nil
	}
}

// GetBlockNudge scales the checkout-block countdown with the basket value:
// round(total/10)*5 seconds, clamped to [10, 60].
func (s *NudgeService) GetBlockNudge(cartTotal float64) domain.NudgeResponse {
	duration := blockDuration(cartTotal)
	return domain.NudgeResponse{
		Type: domain.NudgeBlock,
		Data: &domain.NudgeData{Duration: duration},
	}
}

// RecordInteraction mutates the user's counters for one nudge outcome and
// persists the full record. The reward (savings) credited per arm:
//
//	gentle      accepted        -> the skipped item's price
//	alternative accepted        -> max(0, current - alternative), both prices required
//	block       always complete -> the whole cart total
//
// Missing option values silently skip the accepted/savings credit; shown is
// still counted.
func (s *NudgeService) RecordInteraction(
	ctx context.Context,
	userID uint,
	nudgeType domain.NudgeType,
	accepted bool,
	opts InteractionOptions,
) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if !nudgeType.IsArm() {
		return fmt.Errorf("unknown nudge type: %s", nudgeType)
	}

	s.mu.Lock()
	stats := s.loadStats(ctx, userID)
	savings := applyInteraction(stats, nudgeType, accepted, opts)

	if err := s.statsRepo.SaveStats(ctx, userID, stats); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to save nudge stats: %w", err)
	}
	s.mu.Unlock()

	NudgeInteractionsTotal.
		WithLabelValues(string(nudgeType), strconv.FormatBool(accepted)).
		Inc()

	s.logEvent(ctx, userID, nudgeType, accepted, savings, opts)

	return nil
}

// Stats exposes the caller's current counters for inspection.
func (s *NudgeService) Stats(ctx context.Context, userID uint) (*domain.UserNudgeStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.loadStats(ctx, userID), nil
}

// RecentInteractions returns the user's newest interaction log rows. Without
// an event repository wired there is no history to return.
func (s *NudgeService) RecentInteractions(ctx context.Context, userID uint, limit int) ([]domain.NudgeEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.eventRepo == nil {
		return []domain.NudgeEvent{}, nil
	}

	events, err := s.eventRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load nudge events: %w", err)
	}
	return events, nil
}

// loadStats never fails: a missed read means no prior history.
func (s *NudgeService) loadStats(ctx context.Context, userID uint) *domain.UserNudgeStats {
	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err != nil || stats == nil {
		if err != nil {
			logger.Error("failed to load nudge stats, starting from zero",
				"user_id", userID, "error", err)
		}
		return domain.NewUserNudgeStats()
	}
	return stats
}

// applyInteraction performs the per-arm counter mutation and returns the
// savings credited by this interaction.
func applyInteraction(
	stats *domain.UserNudgeStats,
	nudgeType domain.NudgeType,
	accepted bool,
	opts InteractionOptions,
) float64 {
	arm, _ := stats.Arm(nudgeType)
	arm.Shown++

	switch nudgeType {
	case domain.NudgeGentle:
		if accepted {
			arm.Accepted++
			credit := 0.0
			if opts.CurrentItemPrice != nil {
				credit = *opts.CurrentItemPrice
			}
			arm.Savings += credit
			return credit
		}

	case domain.NudgeAlternative:
		// A zero current price counts as missing, matching the reference
		// behavior; a zero alternative price is a valid free alternative.
		if accepted &&
			opts.CurrentItemPrice != nil && *opts.CurrentItemPrice != 0 &&
			opts.AlternativePrice != nil {
			arm.Accepted++
			credit := *opts.CurrentItemPrice - *opts.AlternativePrice
			if credit < 0 {
				credit = 0
			}
			arm.Savings += credit
			return credit
		}

	case domain.NudgeBlock:
		// A block countdown always finishes; there is no reject path.
		arm.Completed++
		credit := 0.0
		if opts.CartTotal != nil {
			credit = *opts.CartTotal
		}
		arm.Savings += credit
		return credit
	}

	return 0
}

func (s *NudgeService) logEvent(
	ctx context.Context,
	userID uint,
	nudgeType domain.NudgeType,
	accepted bool,
	savings float64,
	opts InteractionOptions,
) {
	if s.eventRepo == nil {
		return
	}

	eventCtx := datatypes.JSONMap{}
	if opts.CurrentItemPrice != nil {
		eventCtx["current_item_price"] = *opts.CurrentItemPrice
	}
	if opts.AlternativePrice != nil {
		eventCtx["alternative_price"] = *opts.AlternativePrice
	}
	if opts.CartTotal != nil {
		eventCtx["cart_total"] = *opts.CartTotal
	}

	event := domain.NudgeEvent{
		UserID:    userID,
		NudgeType: string(nudgeType),
		Accepted:  accepted,
		Savings:   savings,
		CreatedAt: time.Now(),
		Context:   eventCtx,
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		logger.Error("failed to save nudge event",
			"user_id", userID, "nudge_type", string(nudgeType), "error", err)
	}
}
