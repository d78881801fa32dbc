package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sblbot/config"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

var durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30}

// MetricsProvider manages OpenTelemetry metrics for the bot. It satisfies the
// observer interfaces of sblapi, bot/interactions, application and
// infrastructure.
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	active        bool
	mu            sync.RWMutex

	apiCallsCounter          metric.Int64Counter
	apiCallDurationHist      metric.Float64Histogram
	interactionsCounter      metric.Int64Counter
	interactionDurationHist  metric.Float64Histogram
	jobRunsCounter           metric.Int64Counter
	jobRunDurationHist       metric.Float64Histogram
	natsMessagesPublishedCtr metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Info("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	var reader sdkmetric.Reader
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		reader = mp.periodicReader(exporter)
		log.Info("Using console metric exporter")

	case "otlp":
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err := otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		reader = mp.periodicReader(exporter)
		log.Infof("Using OTLP metric exporter: %s", mp.config.OTelOTLPEndpoint)

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	if err := mp.start(reader); err != nil {
		return err
	}
	otel.SetMeterProvider(mp.meterProvider)

	log.Info("Metrics provider initialized successfully")
	return nil
}

func (mp *MetricsProvider) periodicReader(exporter sdkmetric.Exporter) sdkmetric.Reader {
	interval := time.Duration(mp.config.OTelExportIntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
}

// start builds the meter provider around reader. Callers hold mp.mu.
func (mp *MetricsProvider) start(reader sdkmetric.Reader) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	mp.meter = mp.meterProvider.Meter("sbl-bot")

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.active = true
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.apiCallsCounter, err = mp.meter.Int64Counter(
		APICallsTotal,
		metric.WithDescription("Total number of league API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create API calls counter: %w", err)
	}

	mp.apiCallDurationHist, err = mp.meter.Float64Histogram(
		APICallDuration,
		metric.WithDescription("Duration of league API calls in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create API call duration histogram: %w", err)
	}

	mp.interactionsCounter, err = mp.meter.Int64Counter(
		InteractionsTotal,
		metric.WithDescription("Total number of handled Discord interactions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create interactions counter: %w", err)
	}

	mp.interactionDurationHist, err = mp.meter.Float64Histogram(
		InteractionDuration,
		metric.WithDescription("Duration of Discord interaction handling in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create interaction duration histogram: %w", err)
	}

	mp.jobRunsCounter, err = mp.meter.Int64Counter(
		JobRunsTotal,
		metric.WithDescription("Total number of scheduled job runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create job runs counter: %w", err)
	}

	mp.jobRunDurationHist, err = mp.meter.Float64Histogram(
		JobRunDuration,
		metric.WithDescription("Duration of scheduled job runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create job run duration histogram: %w", err)
	}

	mp.natsMessagesPublishedCtr, err = mp.meter.Int64Counter(
		NATSMessagesPublishedTotal,
		metric.WithDescription("Total number of events forwarded to NATS"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create NATS messages published counter: %w", err)
	}

	return nil
}

// Shutdown flushes pending metrics and stops the provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.active = false
	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordAPICall records one league API call
func (mp *MetricsProvider) RecordAPICall(ctx context.Context, endpoint string, status int, reason string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelEndpoint, endpoint),
		attribute.Int(LabelStatus, status),
		attribute.String(LabelReason, reason),
	)
	mp.apiCallsCounter.Add(ctx, 1, attrs)
	mp.apiCallDurationHist.Record(ctx, duration.Seconds(), attrs)
}

// RecordInteraction records one handled interaction
func (mp *MetricsProvider) RecordInteraction(ctx context.Context, command, source, outcome string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelCommand, command),
		attribute.String(LabelSource, source),
		attribute.String(LabelOutcome, outcome),
	)
	mp.interactionsCounter.Add(ctx, 1, attrs)
	mp.interactionDurationHist.Record(ctx, duration.Seconds(), attrs)
}

// RecordJobRun records one scheduled job run
func (mp *MetricsProvider) RecordJobRun(ctx context.Context, job, outcome string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(LabelJob, job),
		attribute.String(LabelOutcome, outcome),
	)
	mp.jobRunsCounter.Add(ctx, 1, attrs)
	mp.jobRunDurationHist.Record(ctx, duration.Seconds(), attrs)
}

// RecordEventPublished records an event forwarded to NATS
func (mp *MetricsProvider) RecordEventPublished(ctx context.Context, eventType string, ok bool) {
	if !mp.isEnabled() {
		return
	}

	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	mp.natsMessagesPublishedCtr.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
			attribute.String(LabelOutcome, outcome),
		),
	)
}

// isEnabled reports whether instruments exist and accept measurements
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.active
}
