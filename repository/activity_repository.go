package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// ActivityRepository appends events to the activity log
type ActivityRepository struct {
	base
}

func NewActivityRepository(db *sqlx.DB, log *zap.SugaredLogger) *ActivityRepository {
	return &ActivityRepository{base: newBase(db, log)}
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)

// Insert writes e. Replaying the same event id is a no-op.
func (r *ActivityRepository) Insert(ctx context.Context, e *models.ActivityEvent) error {
	query := `
		INSERT INTO activity_logs (event_id, event_type, entity_type, entity_id, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, e.EventID, e.EventType, e.EntityType, e.EntityID, []byte(e.Payload)); err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	r.log.Debugf("activity %s %s/%d logged", e.EventType, e.EntityType, e.EntityID)
	return nil
}
