// Package daemon provides the long-running background budget monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/finmate/internal/engine"
	"github.com/theirongolddev/finmate/internal/logger"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Event types.
const (
	EventSnapshot      = "snapshot"
	EventStreakChanged = "streak_changed"
	EventBadgeAwarded  = "badge_awarded"
)

// Backend is the part of the engine the daemon drives.
type Backend interface {
	Snapshot(ctx context.Context) (engine.Snapshot, error)
	CheckBadges(ctx context.Context) (engine.Result, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Logger       *zap.SugaredLogger
}

// Snapshot is a compact budget state for status/event payloads.
type Snapshot struct {
	At            time.Time       `json:"at"`
	Streak        int             `json:"streak"`
	LongestStreak int             `json:"longest_streak"`
	TodaySpend    decimal.Decimal `json:"today_spend"`
	DailyLimit    decimal.Decimal `json:"daily_limit"`
	Remaining     decimal.Decimal `json:"remaining"`
	MonthSpend    decimal.Decimal `json:"month_spend"`
	Transactions  int             `json:"transactions"`
	EarnedBadges  int             `json:"earned_badges"`
}

// Event is emitted whenever the budget state changes.
type Event struct {
	ID         int64        `json:"id"`
	Type       string       `json:"type"`
	Timestamp  time.Time    `json:"timestamp"`
	Snapshot   Snapshot     `json:"snapshot"`
	PrevStreak int          `json:"prev_streak,omitempty"`
	Badge      *model.Badge `json:"badge,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	backend Backend
	log     *zap.SugaredLogger

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

// New returns a new daemon service with the provided config.
func New(cfg Config, backend Backend) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	lg := cfg.Logger
	if lg == nil {
		lg = logger.Nop()
	}

	return &Service{
		cfg:       cfg,
		backend:   backend,
		log:       lg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Infow("daemon listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval.String())

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
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// pollOnce refreshes the snapshot. When the transaction log grew since the
// previous poll it runs a badge check, the same trigger the CLI uses.
// Times come from the engine clock so the daemon and the engine agree on
// which day it is.
func (s *Service) pollOnce(ctx context.Context) {
	es, err := s.backend.Snapshot(ctx)
	now := es.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err != nil {
		s.recordError(now, err)
		return
	}
	snap := snapshotFrom(es, now)

	s.mu.RLock()
	prev := s.snapshot
	prevExists := s.hasSnapshot
	s.mu.RUnlock()

	var awarded []model.Badge
	if prevExists && snap.Transactions > prev.Transactions {
		res, err := s.backend.CheckBadges(ctx)
		if err != nil {
			s.recordError(now, err)
			return
		}
		awarded = res.Awarded
		snap.Streak = res.Streak
		snap.LongestStreak = res.LongestStreak
		snap.EarnedBadges += len(awarded)
	}

	var pending []Event
	s.mu.Lock()
	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		pending = append(pending, s.newEvent(EventSnapshot, now, snap))
	} else if snap.Streak != prev.Streak {
		ev := s.newEvent(EventStreakChanged, now, snap)
		ev.PrevStreak = prev.Streak
		pending = append(pending, ev)
	}
	for i := range awarded {
		ev := s.newEvent(EventBadgeAwarded, now, snap)
		ev.Badge = &awarded[i]
		pending = append(pending, ev)
	}
	s.mu.Unlock()

	for _, ev := range pending {
		if ev.Badge != nil {
			s.log.Infow("badge awarded", "badge", ev.Badge.ID)
		}
		s.publishEvent(ev)
	}
}

// newEvent allocates the next event id. Callers hold s.mu.
func (s *Service) newEvent(typ string, at time.Time, snap Snapshot) Event {
	s.nextEventID++
	return Event{ID: s.nextEventID, Type: typ, Timestamp: at, Snapshot: snap}
}

func (s *Service) recordError(at time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastPollAt = at
	s.pollCount++
	s.mu.Unlock()
	s.log.Warnw("daemon poll error", "error", err)
}

func snapshotFrom(es engine.Snapshot, at time.Time) Snapshot {
	longest := es.Profile.Gamification.LongestStreak
	if es.Streak > longest {
		longest = es.Streak
	}
	return Snapshot{
		At:            at,
		Streak:        es.Streak,
		LongestStreak: longest,
		TodaySpend:    es.TodaySpend,
		DailyLimit:    es.Budget.DailySpendingLimit,
		Remaining:     es.Remaining,
		MonthSpend:    es.MonthSpend,
		Transactions:  len(es.Transactions),
		EarnedBadges:  len(es.Profile.Gamification.EarnedBadges),
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
		DBPath:          s.cfg.DBPath,
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
		Type:      EventSnapshot,
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
