package postgres

import (
	"context"
	"fmt"
	"modshop/domain"

	"gorm.io/gorm"
)

// NudgeEventRepository appends interaction rows to the nudge_events table.
type NudgeEventRepository struct {
	DB *gorm.DB
}

func NewNudgeEventRepository(db *gorm.DB) *NudgeEventRepository {
	return &NudgeEventRepository{
		DB: db,
	}
}

func (r *NudgeEventRepository) SaveEvent(ctx context.Context, event domain.NudgeEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to save nudge event: %w", err)
	}

	return nil
}

// FindByUser returns the most recent interactions for a user, newest first.
func (r *NudgeEventRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.NudgeEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var events []domain.NudgeEvent
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find nudge events: %w", err)
	}

	return events, nil
}
