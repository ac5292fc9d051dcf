package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity is one entry of a lead's append-only audit trail.
type Activity struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Action    string
	Meta      map[string]interface{}
	CreatedAt time.Time
}

// AddActivity records an audit trail entry for a lead.
func (r *Repository) AddActivity(ctx context.Context, leadID uuid.UUID, action string, meta map[string]interface{}) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO lead_activities (lead_id, action, meta)
		VALUES ($1, $2, $3)
	`, leadID, action, metaJSON)
	return err
}

// ListActivities returns a lead's audit trail, newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, action, meta, created_at
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var activity Activity
		var metaJSON []byte
		if err := rows.Scan(&activity.ID, &activity.LeadID, &activity.Action, &metaJSON, &activity.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &activity.Meta); err != nil {
				return nil, err
			}
		}
		activities = append(activities, activity)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return activities, nil
}
