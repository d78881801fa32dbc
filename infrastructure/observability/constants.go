package observability

// Metric name prefixes
const (
	MetricPrefix = "sbl_bot"
)

// Metric names
const (
	// League API metrics
	APICallsTotal   = MetricPrefix + ".api.calls_total"
	APICallDuration = MetricPrefix + ".api.call_duration"

	// Discord metrics
	InteractionsTotal   = MetricPrefix + ".interactions.total"
	InteractionDuration = MetricPrefix + ".interactions.duration"

	// Job metrics
	JobRunsTotal   = MetricPrefix + ".jobs.runs_total"
	JobRunDuration = MetricPrefix + ".jobs.run_duration"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelEndpoint  = "endpoint"
	LabelStatus    = "status"
	LabelReason    = "reason"
	LabelCommand   = "command"
	LabelSource    = "source"
	LabelOutcome   = "outcome"
	LabelJob       = "job"
	LabelEventType = "event_type"
)

// Publish outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
