// Package daemon provides the long-running dataset watcher service. It
// re-fetches the budget dataset on an interval and publishes change events so
// frontends can pick up republished revisions without reloading.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"unbudget/internal/pipeline"
	"unbudget/internal/store"

	"github.com/charmbracelet/log"
)

// Config controls the watcher runtime behavior.
type Config struct {
	Ref          string // budget dataset path or URL
	UseCache     bool
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact dataset state for status/event payloads.
type Snapshot struct {
	At            time.Time `json:"at"`
	Parts         int       `json:"parts"`
	Sections      int       `json:"sections"`
	Entities      int       `json:"entities"`
	RevisedTotal  float64   `json:"revised_total"`
	ApprovedTotal float64   `json:"approved_total"`
	Malformed     int       `json:"malformed_rows"`
	FromCache     bool      `json:"from_cache"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Parts         int     `json:"parts"`
	Sections      int     `json:"sections"`
	Entities      int     `json:"entities"`
	RevisedTotal  float64 `json:"revised_total"`
	ApprovedTotal float64 `json:"approved_total"`
}

func (d Delta) isZero() bool {
	return d.Parts == 0 &&
		d.Sections == 0 &&
		d.Entities == 0 &&
		d.RevisedTotal == 0 &&
		d.ApprovedTotal == 0
}

// Event is emitted whenever the dataset snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Ref             string    `json:"ref"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the watcher runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new watcher service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 10*time.Second {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8094"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("watcher http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	result, err := s.loadDataset(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		log.Warn("dataset poll failed", "ref", s.cfg.Ref, "err", err)
		return
	}

	now := time.Now()
	snap := snapshotFromResult(result, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "budget_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) loadDataset(ctx context.Context) (*pipeline.LoadResult, error) {
	var cache *store.Cache
	if s.cfg.UseCache {
		if c, err := store.Open(store.DefaultPath()); err == nil {
			cache = c
			defer func() { _ = cache.Close() }()
		}
	}
	return pipeline.Load(ctx, s.cfg.Ref, cache)
}

func snapshotFromResult(result *pipeline.LoadResult, at time.Time) Snapshot {
	tree := result.Tree
	var sections, entities int
	for _, p := range tree.Parts {
		sections += len(p.Sections)
		for _, sec := range p.Sections {
			entities += len(sec.Entities)
		}
	}
	return Snapshot{
		At:            at,
		Parts:         len(tree.Parts),
		Sections:      sections,
		Entities:      entities,
		RevisedTotal:  tree.TotalBudget(),
		ApprovedTotal: tree.GrandApproved2025,
		Malformed:     result.Malformed,
		FromCache:     result.FromCache,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Parts:         curr.Parts - prev.Parts,
		Sections:      curr.Sections - prev.Sections,
		Entities:      curr.Entities - prev.Entities,
		RevisedTotal:  curr.RevisedTotal - prev.RevisedTotal,
		ApprovedTotal: curr.ApprovedTotal - prev.ApprovedTotal,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Ref:             s.cfg.Ref,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
