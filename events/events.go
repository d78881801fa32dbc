package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeMatchAutoScheduled       EventType = "match_auto_scheduled"
	EventTypeDeadlineCheckCompleted   EventType = "deadline_check_completed"
	EventTypeWeeklyAnnouncementPosted EventType = "weekly_announcement_posted"
	EventTypeProposalStatusChanged    EventType = "proposal_status_changed"
)

// AllEventTypes lists every event type, in declaration order
var AllEventTypes = []EventType{
	EventTypeMatchAutoScheduled,
	EventTypeDeadlineCheckCompleted,
	EventTypeWeeklyAnnouncementPosted,
	EventTypeProposalStatusChanged,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// Publisher accepts events for delivery
type Publisher interface {
	Publish(event Event) error
}

// MatchAutoScheduledEvent is emitted when the deadline check dates a game
type MatchAutoScheduledEvent struct {
	GuildID     int64     `json:"guild_id"`
	GameID      int       `json:"game_id"`
	Week        int       `json:"week"`
	SeasonID    int       `json:"season_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (e MatchAutoScheduledEvent) Type() EventType {
	return EventTypeMatchAutoScheduled
}

// DeadlineCheckCompletedEvent summarizes one deadline check run for a guild
type DeadlineCheckCompletedEvent struct {
	GuildID   int64 `json:"guild_id"`
	Week      int   `json:"week"`
	SeasonID  int   `json:"season_id"`
	Scheduled int   `json:"scheduled"`
	Failed    int   `json:"failed"`
	Total     int   `json:"total"`
}

func (e DeadlineCheckCompletedEvent) Type() EventType {
	return EventTypeDeadlineCheckCompleted
}

// WeeklyAnnouncementPostedEvent is emitted once a weekly digest reached at least one channel
type WeeklyAnnouncementPostedEvent struct {
	Week      int `json:"week"`
	SeasonID  int `json:"season_id"`
	Guilds    int `json:"guilds"`
	Channels  int `json:"channels"`
	Divisions int `json:"divisions"`
}

func (e WeeklyAnnouncementPostedEvent) Type() EventType {
	return EventTypeWeeklyAnnouncementPosted
}

// ProposalStatusChangedEvent is emitted when a receiver answers a proposal
type ProposalStatusChangedEvent struct {
	GuildID     int64  `json:"guild_id"`
	ProposalID  int    `json:"proposal_id"`
	GameID      int    `json:"game_id"`
	Status      string `json:"status"`
	ResponderID string `json:"responder_id"`
	ProposerID  string `json:"proposer_id"`
}

func (e ProposalStatusChangedEvent) Type() EventType {
	return EventTypeProposalStatusChanged
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

// SubscribeAll adds a handler for every event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Handlers run asynchronously so emitters never block
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// Publish emits the event with a background context
func (b *Bus) Publish(event Event) error {
	b.Emit(context.Background(), event)
	return nil
}

// Batch holds events until Flush. A job stashes its per-item events and
// releases them once the run is complete.
type Batch struct {
	real    Publisher
	mu      sync.Mutex
	pending []Event
}

// NewBatch creates a batch that flushes to real
func NewBatch(real Publisher) *Batch {
	return &Batch{real: real}
}

// Publish stashes an event
func (b *Batch) Publish(e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, e)
	return nil
}

// Flush publishes every pending event in order. A failed publish is logged and
// the rest are still delivered.
func (b *Batch) Flush() int {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	failed := 0
	for _, ev := range pending {
		if err := b.real.Publish(ev); err != nil {
			failed++
			log.WithError(err).WithField("eventType", ev.Type()).Error("Failed to publish event during flush")
		}
	}

	log.WithFields(log.Fields{
		"flushed": len(pending) - failed,
		"failed":  failed,
	}).Debug("Flushed pending events")
	return len(pending) - failed
}
