package models

import (
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
)

// Reason is why a glass unit is being reported
type Reason string

const (
	ReasonScratched  Reason = "Scratched"
	ReasonProduction Reason = "KV Production Issue"
	ReasonBroken     Reason = "Broken"
	ReasonMissing    Reason = "Missing"
)

const (
	DefaultReason   = ReasonScratched
	DefaultQuantity = 1
)

// Reasons lists the accepted report reasons in display order
var Reasons = []Reason{ReasonScratched, ReasonProduction, ReasonBroken, ReasonMissing}

// ParseReason matches s against the accepted reasons. An empty string selects
// DefaultReason.
func ParseReason(s string) (Reason, bool) {
	if s == "" {
		return DefaultReason, true
	}
	for _, r := range Reasons {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// LabelBatch is a group of damaged glass units reported together
type LabelBatch struct {
	ID        string      `json:"id"`
	Items     []LabelItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// LabelItem is one photographed label and what was read from it
type LabelItem struct {
	ID             string         `json:"id"`
	ImagePath      string         `json:"image_path,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	ImageWidth     int            `json:"image_width,omitempty"`
	ImageHeight    int            `json:"image_height,omitempty"`
	Reason         Reason         `json:"reason"`
	Notes          string         `json:"notes,omitempty"`
	Qty            int            `json:"qty"`
	Provider       string         `json:"provider,omitempty"`
	Model          string         `json:"model,omitempty"`
	Transcript     string         `json:"transcript"`
	Fields         labels.Fields  `json:"fields"`
	Issues         []labels.Issue `json:"issues,omitempty"`
	ProcessingTime time.Duration  `json:"processing_time_ns"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NeedsReview reports whether any field of the item should be checked by hand
func (i LabelItem) NeedsReview() bool {
	return len(i.Issues) > 0
}
