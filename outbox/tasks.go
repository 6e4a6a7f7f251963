// Package outbox replays best-effort steps of a submission that failed inline
package outbox

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"dealdesk/models"
)

// Task types
const (
	TypeVehiclePriceSync = "deal:vehicle_price_sync"
	TypeDealAttachments  = "deal:attachments"
	TypeActivityLog      = "activity:log"
	TypeLedgerRecord     = "ledger:record"
)

const QueueName = "dealdesk_retry"

type PriceSyncPayload struct {
	VehicleID int64   `json:"vehicleId"`
	Price     float64 `json:"price"`
}

type AttachmentsPayload struct {
	DealID      int64              `json:"dealId"`
	Attachments models.Attachments `json:"attachments"`
}

type ActivityPayload struct {
	Event models.ActivityEvent `json:"event"`
}

type LedgerPayload struct {
	DealID     int64   `json:"dealId"`
	CustomerID int64   `json:"customerId"`
	Amount     float64 `json:"amount"`
	Label      string  `json:"label"`
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

// decode unmarshals a task payload; a malformed payload is never retried
func decode(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
