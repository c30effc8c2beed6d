package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"praxis/internal/model"
)

// KnowledgeStore is the external collaborator benchmark values are pulled
// from. The Postgres repository implements it; resolution must treat the
// call as cancelable and timeout-bound.
type KnowledgeStore interface {
	GetArtifacts(ctx context.Context, query model.ArtifactQuery) ([]model.Artifact, error)
}

// benchmarkModule is the knowledge store module benchmark artifacts live
// under.
const benchmarkModule = "practice_analysis"

// DefaultBenchmarksVersion identifies the hardcoded fallback table.
const DefaultBenchmarksVersion = "2024.1"

// Topic keys for the metrics the scorers resolve.
const (
	TopicRoomSizePrefix = "room_size."
	TopicRatioPrefix    = "staffing_ratio."
	TopicDurationPrefix = "procedure_duration."
	TopicDistancePrefix = "distance_guideline."

	RatioAssistantsPerProvider = "clinical_assistants_per_provider"
	RatioFrontdeskPerProvider  = "frontdesk_per_provider"
	RatioSupportPerProvider    = "support_total_per_provider"
	RatioExamRoomsPerProvider  = "exam_rooms_per_provider"

	DurationStandardVisit = "standard_visit"
	DurationVisitBuffer   = "visit_buffer"

	PairReceptionWaiting = "reception_waiting"
	PairWaitingExam      = "waiting_exam"
	PairExamLab          = "exam_lab"
)

// defaultBands is the versioned safe-default table, used whenever the
// knowledge store has no answer for a topic. Values are conservative
// dental-practice planning figures.
var defaultBands = map[string]model.BenchmarkBand{
	TopicRoomSizePrefix + "reception":     {Metric: "room_size.reception", Unit: "sqm", Min: 8, Max: 15, Optimal: 12, Source: "default"},
	TopicRoomSizePrefix + "waiting":       {Metric: "room_size.waiting", Unit: "sqm", Min: 15, Max: 30, Optimal: 20, Source: "default"},
	TopicRoomSizePrefix + "exam":          {Metric: "room_size.exam", Unit: "sqm", Min: 9, Max: 12, Optimal: 10, Source: "default"},
	TopicRoomSizePrefix + "lab":           {Metric: "room_size.lab", Unit: "sqm", Min: 10, Max: 20, Optimal: 15, Source: "default"},
	TopicRoomSizePrefix + "office":        {Metric: "room_size.office", Unit: "sqm", Min: 9, Max: 18, Optimal: 12, Source: "default"},
	TopicRoomSizePrefix + "sterilization": {Metric: "room_size.sterilization", Unit: "sqm", Min: 6, Max: 12, Optimal: 8, Source: "default"},
	TopicRoomSizePrefix + "storage":       {Metric: "room_size.storage", Unit: "sqm", Min: 4, Max: 10, Optimal: 6, Source: "default"},
	TopicRoomSizePrefix + "toilet":        {Metric: "room_size.toilet", Unit: "sqm", Min: 3, Max: 6, Optimal: 4, Source: "default"},
	TopicRoomSizePrefix + "kitchen":       {Metric: "room_size.kitchen", Unit: "sqm", Min: 6, Max: 12, Optimal: 8, Source: "default"},
	TopicRoomSizePrefix + "changing":      {Metric: "room_size.changing", Unit: "sqm", Min: 4, Max: 8, Optimal: 6, Source: "default"},
	TopicRoomSizePrefix + "xray":          {Metric: "room_size.xray", Unit: "sqm", Min: 6, Max: 10, Optimal: 8, Source: "default"},

	TopicRatioPrefix + RatioAssistantsPerProvider: {Metric: "staffing_ratio.clinical_assistants_per_provider", Unit: "ratio", Min: 1.5, Max: 2.5, Optimal: 2.0, Source: "default"},
	TopicRatioPrefix + RatioFrontdeskPerProvider:  {Metric: "staffing_ratio.frontdesk_per_provider", Unit: "ratio", Min: 0.5, Max: 1.5, Optimal: 1.0, Source: "default"},
	TopicRatioPrefix + RatioSupportPerProvider:    {Metric: "staffing_ratio.support_total_per_provider", Unit: "ratio", Min: 2.0, Max: 4.0, Optimal: 3.0, Source: "default"},
	TopicRatioPrefix + RatioExamRoomsPerProvider:  {Metric: "staffing_ratio.exam_rooms_per_provider", Unit: "ratio", Min: 1.5, Max: 3.0, Optimal: 2.0, Source: "default"},

	TopicDurationPrefix + DurationStandardVisit: {Metric: "procedure_duration.standard_visit", Unit: "min", Min: 20, Max: 45, Optimal: 30, Source: "default"},
	TopicDurationPrefix + DurationVisitBuffer:   {Metric: "procedure_duration.visit_buffer", Unit: "min", Min: 5, Max: 15, Optimal: 10, Source: "default"},

	TopicDistancePrefix + PairReceptionWaiting: {Metric: "distance_guideline.reception_waiting", Unit: "units", Min: 0, Max: 15, Optimal: 8, Source: "default"},
	TopicDistancePrefix + PairWaitingExam:      {Metric: "distance_guideline.waiting_exam", Unit: "units", Min: 0, Max: 20, Optimal: 12, Source: "default"},
	TopicDistancePrefix + PairExamLab:          {Metric: "distance_guideline.exam_lab", Unit: "units", Min: 0, Max: 18, Optimal: 10, Source: "default"},
}

type cacheEntry struct {
	band      model.BenchmarkBand
	fetchedAt time.Time
}

// BenchmarkResolver resolves benchmark bands from the knowledge store with
// a TTL cache, falling back to the versioned default table. Resolution
// never errors: a fetch failure keeps serving the last good value if one
// exists, otherwise the default. Missing topics are logged at most once
// per process. Safe for concurrent use; a single-flight guard keeps
// concurrent misses on the same topic down to one store call.
type BenchmarkResolver struct {
	store KnowledgeStore
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inflight map[string]chan struct{}
	warned   map[string]bool
}

// NewBenchmarkResolver creates a resolver. store may be nil, in which case
// every metric resolves to its default band.
func NewBenchmarkResolver(store KnowledgeStore, ttl time.Duration) *BenchmarkResolver {
	return &BenchmarkResolver{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
		inflight: make(map[string]chan struct{}),
		warned:   make(map[string]bool),
	}
}

// RoomSizeBand resolves the size band for a canonical room type.
func (r *BenchmarkResolver) RoomSizeBand(ctx context.Context, roomType model.RoomType) model.BenchmarkBand {
	return r.resolve(ctx, TopicRoomSizePrefix+string(roomType))
}

// RatioBand resolves a staffing ratio band by name.
func (r *BenchmarkResolver) RatioBand(ctx context.Context, name string) model.BenchmarkBand {
	return r.resolve(ctx, TopicRatioPrefix+name)
}

// DurationBand resolves a scheduling duration band by procedure name.
func (r *BenchmarkResolver) DurationBand(ctx context.Context, procedure string) model.BenchmarkBand {
	return r.resolve(ctx, TopicDurationPrefix+procedure)
}

// DistanceGuideline resolves the circulation guideline for a room-type
// pair key.
func (r *BenchmarkResolver) DistanceGuideline(ctx context.Context, pair string) model.BenchmarkBand {
	return r.resolve(ctx, TopicDistancePrefix+pair)
}

// ResolveAll resolves every known topic, sorted by topic key, for the
// benchmarks endpoint.
func (r *BenchmarkResolver) ResolveAll(ctx context.Context) []model.BenchmarkBand {
	topics := make([]string, 0, len(defaultBands))
	for topic := range defaultBands {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	bands := make([]model.BenchmarkBand, 0, len(topics))
	for _, topic := range topics {
		bands = append(bands, r.resolve(ctx, topic))
	}
	return bands
}

func (r *BenchmarkResolver) resolve(ctx context.Context, topic string) model.BenchmarkBand {
	fallback, known := defaultBands[topic]
	if !known {
		fallback = model.BenchmarkBand{Metric: topic, Source: "default"}
	}
	if r.store == nil {
		return fallback
	}

	r.mu.Lock()
	if entry, ok := r.cache[topic]; ok && r.now().Sub(entry.fetchedAt) < r.ttl {
		r.mu.Unlock()
		return entry.band
	}
	if waitCh, ok := r.inflight[topic]; ok {
		// another caller is already refreshing this topic
		r.mu.Unlock()
		<-waitCh
		r.mu.Lock()
		entry, ok := r.cache[topic]
		r.mu.Unlock()
		if ok {
			return entry.band
		}
		return fallback
	}
	done := make(chan struct{})
	r.inflight[topic] = done
	stale, hasStale := r.cache[topic]
	r.mu.Unlock()

	band, err := r.fetch(ctx, topic, fallback)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, topic)
	defer close(done)
	if err != nil {
		if hasStale {
			// keep serving the last good value; refresh its timestamp so
			// a failing store is not hammered on every request
			stale.fetchedAt = r.now()
			r.cache[topic] = stale
			return stale.band
		}
		return fallback
	}
	r.cache[topic] = cacheEntry{band: band, fetchedAt: r.now()}
	return band
}

func (r *BenchmarkResolver) fetch(ctx context.Context, topic string, fallback model.BenchmarkBand) (model.BenchmarkBand, error) {
	artifacts, err := r.store.GetArtifacts(ctx, model.ArtifactQuery{
		Module: benchmarkModule,
		Type:   model.ArtifactBenchmark,
		Topic:  topic,
	})
	if err != nil {
		return model.BenchmarkBand{}, err
	}
	if len(artifacts) == 0 {
		// absence is a fallback trigger, not an error
		r.warnMissing(topic)
		return fallback, nil
	}

	artifact := artifacts[0]
	band := fallback
	band.FromKnowledge = true
	band.Citations = append([]string(nil), artifact.Citations...)

	// Each payload field is decoded on its own: an absent or wrong-typed
	// entry keeps the default value without disturbing its neighbors.
	if v, ok := payloadString(artifact.Payload, "metric"); ok {
		band.Metric = v
	}
	if v, ok := payloadString(artifact.Payload, "unit"); ok {
		band.Unit = v
	}
	if v, ok := payloadString(artifact.Payload, "source"); ok {
		band.Source = v
	}
	if v, ok := payloadFloat(artifact.Payload, "min"); ok {
		band.Min = v
	}
	if v, ok := payloadFloat(artifact.Payload, "max"); ok {
		band.Max = v
	}
	if v, ok := payloadFloat(artifact.Payload, "optimal"); ok {
		band.Optimal = v
	}

	if band.Min > band.Optimal || band.Optimal > band.Max {
		// knowledge values violate the band invariant; keep the default
		// numbers and report the value as not knowledge-derived
		log.Printf("benchmark topic %q has inconsistent band from knowledge store, using %s defaults", topic, DefaultBenchmarksVersion)
		band.Min, band.Max, band.Optimal = fallback.Min, fallback.Max, fallback.Optimal
		band.FromKnowledge = false
		band.Citations = nil
	}
	return band, nil
}

func payloadString(payload model.JSONMap, key string) (string, bool) {
	v, ok := payload[key].(string)
	return v, ok && v != ""
}

func payloadFloat(payload model.JSONMap, key string) (float64, bool) {
	switch v := payload[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// warnMissing logs a missing topic at most once for the process lifetime
// to avoid log storms under repeated requests.
func (r *BenchmarkResolver) warnMissing(topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.warned[topic] {
		return
	}
	r.warned[topic] = true
	log.Printf("benchmark topic %q not in knowledge store, serving %s defaults", topic, DefaultBenchmarksVersion)
}
