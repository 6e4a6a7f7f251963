package models

import (
	"encoding/json"
	"time"
)

// LedgerEntry represents one movement on a customer's running account
type LedgerEntry struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	DealID     int64     `json:"dealId" db:"deal_id"`
	Amount     float64   `json:"amount" db:"amount"`
	Label      string    `json:"label" db:"label"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ActivityEvent is a tagged event written to the activity log
type ActivityEvent struct {
	EventID    string          `json:"eventId" db:"event_id"`
	EventType  string          `json:"eventType" db:"event_type"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   int64           `json:"entityId" db:"entity_id"`
	Payload    json.RawMessage `json:"payload" db:"payload"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// Activity event types
const (
	ActivityDealCreated      = "deal_created"
	ActivityBookingConfirmed = "booking_confirmed"
)
