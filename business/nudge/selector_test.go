package nudge

import (
	"modshop/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWithOneItem() []domain.CartItem {
	return []domain.CartItem{{Title: "Red T-Shirt", Price: 20, Quantity: 1, Slug: "red-t-shirt"}}
}

func TestSelectNudge_EmptyCartReturnsNone(t *testing.T) {
	stats := domain.NewUserNudgeStats()
	stats.Gentle = domain.ArmStats{Shown: 10, Savings: 100}

	got := selectNudge(stats, nil)
	require.Equal(t, domain.NudgeNone, got)

	got = selectNudge(stats, []domain.CartItem{})
	require.Equal(t, domain.NudgeNone, got)
}

func TestSelectNudge_ColdStartExploresAllArms(t *testing.T) {
	stats := domain.NewUserNudgeStats()
	seen := make(map[domain.NudgeType]int)

	for i := 0; i < 300; i++ {
		arm := selectNudge(stats, cartWithOneItem())
		require.Contains(t,
			[]domain.NudgeType{domain.NudgeGentle, domain.NudgeAlternative, domain.NudgeBlock},
			arm,
		)
		seen[arm]++
	}

	// Every arm must be reachable under pure exploration.
	assert.Len(t, seen, 3)
}

func TestSelectNudge_ExploitsHighestMeanReward(t *testing.T) {
	stats := &domain.UserNudgeStats{
		Version:     domain.StatsSchemaVersion,
		Gentle:      domain.ArmStats{Shown: 10, Savings: 50},
		Alternative: domain.ArmStats{Shown: 10, Savings: 20},
		Block:       domain.ArmStats{Shown: 10, Savings: 5},
	}

	// Equal pull counts mean equal exploration bonuses; the highest mean
	// (gentle, 5.0 per pull) must win.
	for i := 0; i < 20; i++ {
		require.Equal(t, domain.NudgeGentle, selectNudge(stats, cartWithOneItem()))
	}
}

func TestSelectNudge_TieBreakPrefersBlockThenAlternative(t *testing.T) {
	// All arms identical: exact three-way tie, block wins.
	stats := &domain.UserNudgeStats{
		Version:     domain.StatsSchemaVersion,
		Gentle:      domain.ArmStats{Shown: 10},
		Alternative: domain.ArmStats{Shown: 10},
		Block:       domain.ArmStats{Shown: 10},
	}
	require.Equal(t, domain.NudgeBlock, selectNudge(stats, cartWithOneItem()))

	// Block strictly worse, gentle and alternative tied: alternative wins.
	stats = &domain.UserNudgeStats{
		Version:     domain.StatsSchemaVersion,
		Gentle:      domain.ArmStats{Shown: 10},
		Alternative: domain.ArmStats{Shown: 10},
		Block:       domain.ArmStats{Shown: 40},
	}
	require.Equal(t, domain.NudgeAlternative, selectNudge(stats, cartWithOneItem()))
}

func TestSelectNudge_UnshownArmHasUnboundedPriority(t *testing.T) {
	// Block has never been shown while the others have strong means; the
	// unshown arm still wins.
	stats := &domain.UserNudgeStats{
		Version:     domain.StatsSchemaVersion,
		Gentle:      domain.ArmStats{Shown: 50, Savings: 500},
		Alternative: domain.ArmStats{Shown: 50, Savings: 400},
	}
	require.Equal(t, domain.NudgeBlock, selectNudge(stats, cartWithOneItem()))

	// Two unshown arms: priority order decides, block before alternative.
	stats = &domain.UserNudgeStats{
		Version: domain.StatsSchemaVersion,
		Gentle:  domain.ArmStats{Shown: 100, Savings: 900},
	}
	require.Equal(t, domain.NudgeBlock, selectNudge(stats, cartWithOneItem()))
}

func TestBlockDuration(t *testing.T) {
	tests := []struct {
		name      string
		cartTotal float64
		want      int
	}{
		{"zero total clamps to minimum", 0, 10},
		{"small total rounds to minimum", 15, 10},
		{"mid total scales", 100, 50},
		{"rounding to nearest quotient", 94, 45},
		{"large total clamps to maximum", 1000, 60},
		{"just over the cap", 125, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockDuration(tt.cartTotal))
		})
	}
}
