package models

import "time"

// Run statuses.
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// CheckRun is the lifecycle record of one full price check.
type CheckRun struct {
	RunCode        string     `json:"run_code"`
	Status         string     `json:"status"`
	Phase          string     `json:"phase"`
	Progress       float64    `json:"progress"`
	TotalProducts  int        `json:"total_products"`
	ViolationCount int        `json:"violation_count"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// StoredRun is a completed run together with its full evaluated product set.
// The product slice is written once when the run finishes and never mutated;
// a re-run produces a new StoredRun under a new code.
type StoredRun struct {
	Run      CheckRun           `json:"run"`
	Products []EvaluatedProduct `json:"products"`
}

// Summary holds the scorecard statistics computed over the unfiltered
// evaluated set.
type Summary struct {
	TotalProducts  int            `json:"total_products"`
	ViolationCount int            `json:"violation_count"`
	ViolationRate  float64        `json:"violation_rate"`
	ByChannel      []ChannelCount `json:"violations_by_channel"`
	ByBrand        []BrandCount   `json:"violations_by_brand"`
	TopBrand       string         `json:"top_violating_brand"`
	TopBrandCount  int            `json:"top_violating_brand_count"`
}

type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}
