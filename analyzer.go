package companionsdk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Periodic State Analyzer — sustained-negative-affect watchdog
// ──────────────────────────────────────────────

const (
	defaultAnalysisInterval  = 10 * time.Second
	defaultAnalysisWindow    = 10
	defaultNegativeThreshold = 5
)

var attentionSuggestions = []string{"主动关心", "询问感受", "提供安慰", "转移注意力"}

// PeriodicStateAnalyzer scans recent events on a fixed tick and raises an
// attention_needed alert when negative affect is sustained. This is a
// threshold rule, not a statistical test: over-alerting is preferred for a
// caregiving use case. The analyzer only reads the store and publishes.
type PeriodicStateAnalyzer struct {
	store     *EmotionEventStore
	dispatch  *AlertDispatcher
	interval  time.Duration
	window    int
	threshold int
	running   atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
	logger    *zap.Logger
}

// NewPeriodicStateAnalyzer creates an analyzer. Zero interval, window or
// threshold fall back to 10s, 10 events and 5 negatives.
func NewPeriodicStateAnalyzer(store *EmotionEventStore, dispatch *AlertDispatcher,
	interval time.Duration, window, threshold int, logger *zap.Logger) *PeriodicStateAnalyzer {
	if store == nil || dispatch == nil {
		panic("companionsdk: PeriodicStateAnalyzer requires a store and a dispatcher")
	}
	if interval <= 0 {
		interval = defaultAnalysisInterval
	}
	if window <= 0 {
		window = defaultAnalysisWindow
	}
	if threshold <= 0 {
		threshold = defaultNegativeThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodicStateAnalyzer{
		store:     store,
		dispatch:  dispatch,
		interval:  interval,
		window:    window,
		threshold: threshold,
		logger:    logger,
	}
}

// Start launches the ticking goroutine. A second Start while running is a
// no-op. The goroutine stops when ctx is cancelled or Stop is called.
func (a *PeriodicStateAnalyzer) Start(ctx context.Context) {
	if !a.running.CompareAndSwap(false, true) {
		return
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})
	a.logger.Info("periodic emotion analysis started", zap.Duration("interval", a.interval))

	go func() {
		defer close(a.done)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.Analyze()
			}
		}
	}()
}

// Stop cancels the ticking goroutine and waits for it to exit.
func (a *PeriodicStateAnalyzer) Stop() {
	if !a.running.CompareAndSwap(true, false) {
		return
	}
	a.cancel()
	<-a.done
	a.logger.Info("periodic emotion analysis stopped")
}

// Running reports whether the analyzer loop is active.
func (a *PeriodicStateAnalyzer) Running() bool {
	return a.running.Load()
}

// Analyze runs one scan: if at least threshold of the last window events are
// negative affect, one attention_needed alert of medium severity is
// published. Exported so a tick can be forced without waiting for the timer.
func (a *PeriodicStateAnalyzer) Analyze() {
	recent := a.store.History(a.window)
	if len(recent) == 0 {
		return
	}

	negatives := 0
	for _, event := range recent {
		if event.Emotion.IsNegative() {
			negatives++
		}
	}
	if negatives < a.threshold {
		return
	}

	a.logger.Info("sustained negative affect detected",
		zap.Int("negative_events", negatives),
		zap.Int("window", len(recent)))
	a.dispatch.Publish(EmotionAlert{
		ID:          uuid.NewString(),
		Type:        AlertAttentionNeeded,
		Severity:    SeverityMedium,
		Message:     "检测到持续的负面情绪，建议给予关注和支持",
		Suggestions: append([]string(nil), attentionSuggestions...),
		Timestamp:   time.Now(),
	})
}
