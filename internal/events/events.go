// Package events delivers domain events emitted by committed registry
// transitions. Sinks are injected into the registry; several can be combined
// with Fanout.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/telemetry"
)

// Event is a domain event.
type Event interface {
	EventName() string
}

// OrganizationCreated is emitted once per committed CreateOrganization call.
type OrganizationCreated struct {
	OrganizationID chain.Hash
	Creator        chain.AccountID
	Height         chain.BlockHeight
	Members        int
	Shareholders   int
}

func (OrganizationCreated) EventName() string { return "organization_created" }

// Sink receives events after the transition that produced them has committed.
type Sink interface {
	Publish(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

func (f SinkFunc) Publish(ctx context.Context, e Event) { f(ctx, e) }

// Fanout publishes every event to each sink in order.
func Fanout(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, e Event) {
		for _, s := range sinks {
			s.Publish(ctx, e)
		}
	})
}

// Discard drops all events.
var Discard Sink = SinkFunc(func(context.Context, Event) {})

// LogSink writes events to a slog logger.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, e Event) {
	switch ev := e.(type) {
	case OrganizationCreated:
		s.logger.InfoContext(ctx, "organization created",
			"organization_id", ev.OrganizationID.String(),
			"creator", ev.Creator.String(),
			"height", uint64(ev.Height),
			"members", ev.Members,
			"shareholders", ev.Shareholders,
		)
	default:
		s.logger.InfoContext(ctx, "event", "name", e.EventName())
	}
}

// MetricsSink records events as Prometheus metrics.
type MetricsSink struct{}

func (MetricsSink) Publish(_ context.Context, e Event) {
	ev, ok := e.(OrganizationCreated)
	if !ok {
		return
	}
	telemetry.OrganizationsCreatedTotal.Inc()
	telemetry.OrganizationMembersWrittenTotal.WithLabelValues("member").Add(float64(ev.Members))
	telemetry.OrganizationMembersWrittenTotal.WithLabelValues("shareholder").Add(float64(ev.Shareholders))
	telemetry.LastCreationHeight.Set(float64(ev.Height))
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
