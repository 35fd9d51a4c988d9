package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeOpened  EventType = "opened"
	EventTypeReset   EventType = "reset"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeCategory    EntityType = "category"
	EntityTypeRecurring   EntityType = "recurring"
	EntityTypeLedger      EntityType = "ledger"
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeBudget      EntityType = "budget"
)

// Event represents a message sent to subscribers
// Format: { type, entity, month, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`            // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`          // Entity type e.g. "transaction"
	Month     string      `json:"month,omitempty"` // MonthKey the event belongs to; empty for budget-wide events
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ForMonth returns a copy of e scoped to month
func (e Event) ForMonth(month fmt.Stringer) Event {
	e.Month = month.String()
	return e
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// RecurringCreated creates a recurring.created event
func RecurringCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeRecurring, payload)
}

// LedgerOpened creates a ledger.opened event for month
func LedgerOpened(month fmt.Stringer, payload interface{}) Event {
	return NewEvent(EventTypeOpened, EntityTypeLedger, payload).ForMonth(month)
}

// TransactionCreated creates a transaction.created event for month
func TransactionCreated(month fmt.Stringer, payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload).ForMonth(month)
}

// BudgetReset creates a budget.reset event
func BudgetReset() Event {
	return NewEvent(EventTypeReset, EntityTypeBudget, nil)
}
