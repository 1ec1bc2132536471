package domain

import (
	"time"

	"gorm.io/datatypes"
)

// NudgeType is the decision variable of the nudge bandit. The "none"
// sentinel means no nudge is shown for this checkout attempt.
type NudgeType string

const (
	NudgeNone        NudgeType = "none"
	NudgeGentle      NudgeType = "gentle"
	NudgeAlternative NudgeType = "alternative"
	NudgeBlock       NudgeType = "block"
)

// NudgeArms lists the selectable arms, highest tie-break priority first.
var NudgeArms = []NudgeType{NudgeBlock, NudgeAlternative, NudgeGentle}

// IsArm reports whether t is one of the three selectable arms.
func (t NudgeType) IsArm() bool {
	return t == NudgeGentle || t == NudgeAlternative || t == NudgeBlock
}

// StatsSchemaVersion tags the persisted UserNudgeStats record. Records with
// a different version load as zero-valued defaults.
const StatsSchemaVersion = 1

// ArmStats holds the per-arm counters. Savings is the cumulative reward:
// currency credited to the arm when its nudge reduced spending. Completed is
// only tracked for the block arm (a block countdown has no reject path).
type ArmStats struct {
	Shown     int     `json:"shown"`
	Accepted  int     `json:"accepted"`
	Completed int     `json:"completed"`
	Savings   float64 `json:"savings"`
}

// UserNudgeStats is the full persisted record for one user: exactly one
// entry per selectable arm, none for the "none" sentinel.
type UserNudgeStats struct {
	Version     int      `json:"version"`
	Gentle      ArmStats `json:"gentle"`
	Alternative ArmStats `json:"alternative"`
	Block       ArmStats `json:"block"`
}

// NewUserNudgeStats returns the all-zero default record.
func NewUserNudgeStats() *UserNudgeStats {
	return &UserNudgeStats{Version: StatsSchemaVersion}
}

// Arm returns the counters for the given arm. The second return is false
// for "none" or unknown types.
func (s *UserNudgeStats) Arm(t NudgeType) (*ArmStats, bool) {
	switch t {
	case NudgeGentle:
		return &s.Gentle, true
	case NudgeAlternative:
		return &s.Alternative, true
	case NudgeBlock:
		return &s.Block, true
	default:
		return nil, false
	}
}

// TotalShown sums shown across all three arms.
func (s *UserNudgeStats) TotalShown() int {
	return s.Gentle.Shown + s.Alternative.Shown + s.Block.Shown
}

// CartItem is a read-only snapshot of one cart entry, owned by the cart
// collaborator. Slug and Category may be empty.
type CartItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Slug     string  `json:"slug,omitempty"`
	Category string  `json:"category,omitempty"`
}

// AlternativeSuggestion is produced fresh by the cheapest-alternative
// resolver; it is never persisted.
type AlternativeSuggestion struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Slug              string  `json:"slug,omitempty"`
	Image             string  `json:"image,omitempty"`
	Category          string  `json:"category,omitempty"`
	Description       string  `json:"description,omitempty"`
	IsAlreadyCheapest bool    `json:"is_already_cheapest,omitempty"`
}

// NudgeData is the nudge-specific payload of a NudgeResponse. Which fields
// are set depends on the nudge type.
type NudgeData struct {
	ProductTitle        string  `json:"product_title,omitempty"`
	CurrentProduct      string  `json:"current_product,omitempty"`
	CurrentPrice        float64 `json:"current_price,omitempty"`
	AlternativeProduct  string  `json:"alternative_product,omitempty"`
	AlternativePrice    float64 `json:"alternative_price,omitempty"`
	AlternativeSlug     string  `json:"alternative_slug,omitempty"`
	AlternativeImage    string  `json:"alternative_image,omitempty"`
	AlternativeCategory string  `json:"alternative_category,omitempty"`
	Duration            int     `json:"duration,omitempty"`
	IsAlreadyCheapest   bool    `json:"is_already_cheapest,omitempty"`
}

// NudgeResponse is the externally visible decision artifact, consumed once
// by the presentation layer.
type NudgeResponse struct {
	Type NudgeType  `json:"type"`
	Data *NudgeData `json:"data,omitempty"`
}

// NudgeEvent is the append-only interaction log row, one per recorded
// nudge outcome.
type NudgeEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null" json:"user_id"`
	NudgeType string            `gorm:"column:nudge_type;not null" json:"nudge_type"`
	Accepted  bool              `gorm:"column:accepted" json:"accepted"`
	Savings   float64           `gorm:"column:savings" json:"savings"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (NudgeEvent) TableName() string {
	return "nudge_events"
}
