package events

import (
	"context"
	"sync"

	"paymaster/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeReceiptRecorded EventType = "receipt_recorded"
	EventTypePayoutCompleted EventType = "payout_completed"
	EventTypeWeekReset       EventType = "week_reset"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ReceiptRecordedEvent represents a receipt contribution that was committed
// to the ledger. ChannelID is the proof channel the receipt arrived in, so
// subscribers can acknowledge it there.
type ReceiptRecordedEvent struct {
	UserID    int64
	ChannelID string
	Numbers   []float64
	Total     float64
}

func (e ReceiptRecordedEvent) Type() EventType {
	return EventTypeReceiptRecorded
}

// PayoutCompletedEvent represents a finished weekly payout run
type PayoutCompletedEvent struct {
	Trigger   models.PayoutTrigger
	UsersPaid int
	TotalPaid float64
}

func (e PayoutCompletedEvent) Type() EventType {
	return EventTypePayoutCompleted
}

// WeekResetEvent represents an admin clearing the current week without payout
type WeekResetEvent struct {
	RequestedBy int64
}

func (e WeekResetEvent) Type() EventType {
	return EventTypeWeekReset
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus over the real one
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits pending events; called after a successful commit. Emission
// uses a background context so handlers outlive the transaction context.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
