// Package refresh rebuilds the conversation index from the store and
// publishes rebuild events.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/log"
	"github.com/zjrosen/tresse/internal/pubsub"
	"github.com/zjrosen/tresse/internal/tracing"
)

// SnapshotSource supplies the conversation records for a rebuild.
type SnapshotSource interface {
	ListAll() ([]hierarchy.Conversation, error)
}

// Event describes one completed rebuild.
type Event struct {
	BuildID       uuid.UUID
	Conversations int
	Roots         int
	Duration      time.Duration
	BuiltAt       time.Time
}

// Service owns the current index and rebuilds it on demand. The index is
// swapped atomically, so readers holding the previous one are never
// blocked by a rebuild in progress.
type Service struct {
	source  SnapshotSource
	broker  *pubsub.Broker[Event]
	tracer  trace.Tracer
	current atomic.Pointer[hierarchy.Index]
	mu      sync.Mutex // serializes rebuilds
}

// NewService creates a refresh service reading from source. Rebuild events
// go out on broker if one is given; tracer may be nil to disable tracing.
func NewService(source SnapshotSource, broker *pubsub.Broker[Event], tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	s := &Service{source: source, broker: broker, tracer: tracer}
	s.current.Store(hierarchy.Build(nil))
	return s
}

// Current returns the latest built index. Before the first rebuild it is an
// empty index, never nil.
func (s *Service) Current() *hierarchy.Index {
	return s.current.Load()
}

// Rebuild loads a snapshot and swaps in a freshly built index. Concurrent
// calls are serialized; on failure the previous index stays in place.
func (s *Service) Rebuild(ctx context.Context) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, tracing.SpanRebuild)
	defer span.End()

	buildID := uuid.New()
	span.SetAttributes(attribute.String(tracing.AttrBuildID, buildID.String()))

	start := time.Now()

	records, err := s.loadSnapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatRefresh, "snapshot load failed", err, "buildId", buildID)
		return Event{}, fmt.Errorf("loading snapshot: %w", err)
	}

	idx := s.buildIndex(ctx, records)
	s.current.Store(idx)

	stats := idx.Stats()
	event := Event{
		BuildID:       buildID,
		Conversations: stats.Conversations,
		Roots:         stats.Roots,
		Duration:      time.Since(start),
		BuiltAt:       time.Now(),
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrConversationCount, event.Conversations),
		attribute.Int(tracing.AttrRootCount, event.Roots),
	)
	span.SetStatus(codes.Ok, "")

	log.Info(log.CatRefresh, "index rebuilt",
		"buildId", buildID,
		"conversations", event.Conversations,
		"roots", event.Roots,
		"orphans", stats.Orphans,
		"duration", event.Duration)

	if s.broker != nil {
		s.broker.Publish(pubsub.UpdatedEvent, event)
	}

	return event, nil
}

// Run performs an initial rebuild, then rebuilds on every change
// notification until ctx is cancelled or changes closes. Rebuild failures
// inside the loop are logged and do not stop it.
func (s *Service) Run(ctx context.Context, changes <-chan struct{}) error {
	if _, err := s.Rebuild(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if _, err := s.Rebuild(ctx); err != nil {
				log.ErrorErr(log.CatRefresh, "rebuild failed", err)
			}
		}
	}
}

func (s *Service) loadSnapshot(ctx context.Context) ([]hierarchy.Conversation, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanSnapshot)
	defer span.End()

	records, err := s.source.ListAll()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(records)))
	return records, nil
}

func (s *Service) buildIndex(ctx context.Context, records []hierarchy.Conversation) *hierarchy.Index {
	_, span := s.tracer.Start(ctx, tracing.SpanBuild)
	defer span.End()

	idx := hierarchy.Build(records)
	span.SetAttributes(attribute.Int(tracing.AttrConversationCount, idx.Len()))
	return idx
}
