// internal/store/assessment_repo.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"loanpath-api/internal/common/database"
	"loanpath-api/internal/models"
)

// AssessmentRepo persists score history. Rows are append-only.
type AssessmentRepo struct {
	db *database.PostgresClient
}

func NewAssessmentRepo(db *database.PostgresClient) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

func (r *AssessmentRepo) Insert(ctx context.Context, rec models.AssessmentRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encoding assessment result: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO assessment_history (id, user_id, result, created_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.UserID, payload, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}
	return nil
}

// ListRecent returns the user's newest assessments first, capped at limit.
func (r *AssessmentRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.AssessmentRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, result, created_at
		 FROM assessment_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying assessment history: %w", err)
	}
	defer rows.Close()

	records := make([]models.AssessmentRecord, 0, limit)
	for rows.Next() {
		var rec models.AssessmentRecord
		var payload []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning assessment row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			return nil, fmt.Errorf("decoding assessment result: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessment rows: %w", err)
	}
	return records, nil
}
