package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dealdesk/models"
)

// newActivityEvent tags payload with a fresh event id so that a replay is recorded once
func newActivityEvent(eventType, entityType string, entityID int64, payload any) (*models.ActivityEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &models.ActivityEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    data,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
