package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sblbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SourceService identifies this bot in event envelopes
const SourceService = "sbl-bot"

// MessagePublisher sends raw bytes to a subject. NATSClient implements it.
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// PublishObserver counts forwarded events
type PublishObserver interface {
	RecordEventPublished(ctx context.Context, eventType string, ok bool)
}

// EventEnvelope wraps every event sent to NATS
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// NATSEventPublisher forwards domain events to NATS
type NATSEventPublisher struct {
	client        MessagePublisher
	subjectMapper *EventSubjectMapper
	observer      PublishObserver
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher. observer may be nil.
func NewNATSEventPublisher(client MessagePublisher, subjectMapper *EventSubjectMapper, observer PublishObserver) *NATSEventPublisher {
	return &NATSEventPublisher{
		client:        client,
		subjectMapper: subjectMapper,
		observer:      observer,
		now:           time.Now,
	}
}

// Publish publishes an event to NATS using the appropriate subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	return p.PublishContext(context.Background(), event)
}

// PublishContext is Publish bound to ctx
func (p *NATSEventPublisher) PublishContext(ctx context.Context, event events.Event) error {
	err := p.publish(ctx, event)
	if p.observer != nil {
		p.observer.RecordEventPublished(ctx, string(event.Type()), err == nil)
	}
	return err
}

func (p *NATSEventPublisher) publish(ctx context.Context, event events.Event) error {
	subject := p.subjectMapper.MapEventToSubject(event)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: SourceService,
		Payload:       payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.client.Publish(ctx, subject, data); err != nil {
		// No stream bound to the subject: nobody is listening
		if strings.Contains(err.Error(), "no response from stream") {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": event.Type(),
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Successfully published event to NATS")
	return nil
}

// Attach forwards every event emitted on bus
func (p *NATSEventPublisher) Attach(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := p.PublishContext(ctx, event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event to NATS")
		}
	})
}

// EnsureEventStream ensures the stream exists with the correct subjects
func (p *NATSEventPublisher) EnsureEventStream(client *NATSClient) error {
	return client.EnsureStream(StreamName, p.subjectMapper.GetAllSubjects())
}
