// internal/models/assessment.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// BreakdownEntry explains one factor's signed contribution to the score.
type BreakdownEntry struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
	Type   string  `json:"type"` // "positive" or "negative"
}

// ScoreResult is the output of one readiness assessment. Stored instances
// are immutable history rows, ordered by creation time.
type ScoreResult struct {
	Score        float64          `json:"score"`
	APR          float64          `json:"apr"`
	Breakdown    []BreakdownEntry `json:"breakdown"`
	DebtToIncome float64          `json:"debtToIncome"`
}

// AssessmentRecord is a persisted ScoreResult belonging to one user.
type AssessmentRecord struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Result    ScoreResult `json:"result"`
	CreatedAt time.Time   `json:"createdAt"`
}
