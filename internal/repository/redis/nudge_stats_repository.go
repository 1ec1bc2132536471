package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"modshop/domain"
	"modshop/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// NudgeStatsRepository is the persistent key-value store for per-user nudge
// counters. One serialized record per user under a fixed key prefix.
type NudgeStatsRepository struct {
	client *redis.Client
}

func NewNudgeStatsRepository(client *redis.Client) *NudgeStatsRepository {
	return &NudgeStatsRepository{
		client: client,
	}
}

func statsKey(userID uint) string {
	return fmt.Sprintf("nudge:stats:user:%d", userID)
}

// GetStats loads the user's record. Absent, unparseable, or
// schema-mismatched records load as the all-zero default; only transport
// errors are returned.
func (r *NudgeStatsRepository) GetStats(ctx context.Context, userID uint) (*domain.UserNudgeStats, error) {
	key := statsKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.NewUserNudgeStats(), nil
		}
		return nil, fmt.Errorf("failed to get nudge stats from Redis: %w", err)
	}

	var stats domain.UserNudgeStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		logger.Warn("corrupt nudge stats record, resetting to defaults",
			"user_id", userID, "error", err)
		return domain.NewUserNudgeStats(), nil
	}

	if stats.Version != domain.StatsSchemaVersion {
		logger.Warn("nudge stats schema mismatch, resetting to defaults",
			"user_id", userID, "version", stats.Version)
		return domain.NewUserNudgeStats(), nil
	}

	return &stats, nil
}

// SaveStats overwrites the full record. No partial updates, no TTL.
func (r *NudgeStatsRepository) SaveStats(ctx context.Context, userID uint, stats *domain.UserNudgeStats) error {
	stats.Version = domain.StatsSchemaVersion

	jsonData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal nudge stats: %w", err)
	}

	if err := r.client.Set(ctx, statsKey(userID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to store nudge stats in Redis: %w", err)
	}

	return nil
}
