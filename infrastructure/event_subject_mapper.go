package infrastructure

import (
	"fmt"

	"sblbot/events"
)

// StreamName is the JetStream stream holding every bot event
const StreamName = "sbl_events"

var subjects = map[events.EventType]string{
	events.EventTypeMatchAutoScheduled:       "matches.auto_scheduled",
	events.EventTypeDeadlineCheckCompleted:   "deadline.check_completed",
	events.EventTypeWeeklyAnnouncementPosted: "announcements.weekly_posted",
	events.EventTypeProposalStatusChanged:    "proposals.status_changed",
}

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct {
	prefix string
}

// NewEventSubjectMapper creates a mapper putting every subject under prefix
func NewEventSubjectMapper(prefix string) *EventSubjectMapper {
	return &EventSubjectMapper{prefix: prefix}
}

func (m *EventSubjectMapper) qualify(subject string) string {
	if m.prefix == "" {
		return subject
	}
	return m.prefix + "." + subject
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := subjects[event.Type()]; ok {
		return m.qualify(subject)
	}
	return m.qualify(fmt.Sprintf("unknown.%s", event.Type()))
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	all := make([]string, 0, len(events.AllEventTypes))
	for _, t := range events.AllEventTypes {
		all = append(all, m.qualify(subjects[t]))
	}
	return all
}
