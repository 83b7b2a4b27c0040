package companionsdk

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Emotion Event Store — bounded ring buffer + rolling state
// ──────────────────────────────────────────────

const (
	defaultHistoryCapacity = 100
	defaultStateWindow     = 5
	trendRecentWindow      = 3
	trendHysteresis        = 0.1
)

// EmotionEventStore keeps the most recent emotion events and the rolling
// EmotionalState derived from them. Thread-safe; the mutex covers only the
// in-memory mutation, no I/O happens inside it.
type EmotionEventStore struct {
	mu          sync.Mutex
	capacity    int
	stateWindow int
	events      []EmotionEvent
	state       *EmotionalState
	logger      *zap.Logger
}

// NewEmotionEventStore creates a store with the given capacity and state
// window. Zero values fall back to the defaults (100 events, window of 5).
func NewEmotionEventStore(capacity, stateWindow int, logger *zap.Logger) *EmotionEventStore {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	if stateWindow <= 0 {
		stateWindow = defaultStateWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmotionEventStore{
		capacity:    capacity,
		stateWindow: stateWindow,
		events:      make([]EmotionEvent, 0, capacity),
		logger:      logger,
	}
}

// Record appends an event, evicting the oldest beyond capacity, and
// recomputes the cached state. A missing id or timestamp is filled in.
// Returns the event id.
func (s *EmotionEventStore) Record(event EmotionEvent) string {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		s.events = append(s.events[:0:0], s.events[len(s.events)-s.capacity:]...)
	}
	s.recomputeStateLocked()
	s.mu.Unlock()

	s.logger.Debug("emotion event recorded",
		zap.String("emotion", string(event.Emotion)),
		zap.Float64("intensity", event.Intensity),
		zap.String("source", string(event.Source)))
	return event.ID
}

// CurrentState returns a copy of the latest snapshot, or nil before the
// first event.
func (s *EmotionEventStore) CurrentState() *EmotionalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	snapshot := *s.state
	snapshot.Triggers = append([]string(nil), s.state.Triggers...)
	return &snapshot
}

// History returns up to limit events, newest first.
func (s *EmotionEventStore) History(limit int) []EmotionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]EmotionEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.events[len(s.events)-1-i]
	}
	return out
}

// Len returns the number of retained events.
func (s *EmotionEventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// eventsSince returns events for the correlation id recorded at or after the
// cutoff, oldest first.
func (s *EmotionEventStore) eventsSince(correlationID string, cutoff time.Time) []EmotionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []EmotionEvent
	for _, e := range s.events {
		if e.CorrelationID == correlationID && !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

func (s *EmotionEventStore) recomputeStateLocked() {
	window := s.events
	if len(window) > s.stateWindow {
		window = window[len(window)-s.stateWindow:]
	}
	if len(window) == 0 {
		return
	}

	newest := window[len(window)-1]
	total := 0.0
	for _, e := range window {
		total += e.Intensity
	}

	s.state = &EmotionalState{
		CurrentEmotion: newest.Emotion,
		Intensity:      total / float64(len(window)),
		Trend:          analyzeTrend(window),
		Duration:       emotionDuration(s.events, newest.Emotion),
		Triggers:       dedupContexts(window),
	}
}

// analyzeTrend compares the mean intensity of the last 3 window events with
// the mean of the earlier window events, with a ±0.1 hysteresis band.
func analyzeTrend(window []EmotionEvent) Trend {
	if len(window) < trendRecentWindow {
		return TrendStable
	}

	recent := window[len(window)-trendRecentWindow:]
	recentAvg := 0.0
	for _, e := range recent {
		recentAvg += e.Intensity
	}
	recentAvg /= float64(len(recent))

	older := window[:len(window)-trendRecentWindow]
	olderAvg := 0.0
	for _, e := range older {
		olderAvg += e.Intensity
	}
	if len(older) > 0 {
		olderAvg /= float64(len(older))
	}

	switch {
	case recentAvg > olderAvg+trendHysteresis:
		return TrendImproving
	case recentAvg < olderAvg-trendHysteresis:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// emotionDuration is the time since the most recent event carrying the
// given emotion.
func emotionDuration(events []EmotionEvent, emotion EmotionType) time.Duration {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Emotion == emotion {
			return time.Since(events[i].Timestamp)
		}
	}
	return 0
}

func dedupContexts(window []EmotionEvent) []string {
	seen := make(map[string]bool, len(window))
	var out []string
	for _, e := range window {
		if e.Context == "" || seen[e.Context] {
			continue
		}
		seen[e.Context] = true
		out = append(out, e.Context)
	}
	return out
}
