package companionsdk

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// ══════════════════════════════════════════════
// Periodic state analyzer tests
// ══════════════════════════════════════════════

// alertSink collects published alerts; safe to read while the analyzer
// goroutine is publishing.
type alertSink struct {
	mu     sync.Mutex
	alerts []EmotionAlert
}

func (s *alertSink) handle(alert EmotionAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
}

func (s *alertSink) snapshot() []EmotionAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EmotionAlert(nil), s.alerts...)
}

func setupAnalyzer(interval time.Duration) (*PeriodicStateAnalyzer, *EmotionEventStore, *alertSink) {
	store := NewEmotionEventStore(100, 5, nil)
	dispatcher := NewAlertDispatcher(nil)
	sink := &alertSink{}
	dispatcher.Subscribe(sink.handle)
	return NewPeriodicStateAnalyzer(store, dispatcher, interval, 10, 5, nil), store, sink
}

func recordNegatives(store *EmotionEventStore, count int) {
	emotions := []EmotionType{EmotionSadness, EmotionAnger, EmotionFear}
	for i := 0; i < count; i++ {
		store.Record(EmotionEvent{
			Emotion:       emotions[i%len(emotions)],
			Intensity:     0.7,
			CorrelationID: "child-1",
		})
	}
}

func TestAnalyze_SustainedNegativeAffect(t *testing.T) {
	analyzer, store, sink := setupAnalyzer(time.Hour)

	recordNegatives(store, 6)
	analyzer.Analyze()

	alerts := sink.snapshot()
	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.Equal(t, AlertAttentionNeeded, alert.Type)
	assert.Equal(t, SeverityMedium, alert.Severity)
	assert.Equal(t, "检测到持续的负面情绪，建议给予关注和支持", alert.Message)
	assert.Equal(t, []string{"主动关心", "询问感受", "提供安慰", "转移注意力"}, alert.Suggestions)
	assert.NotEmpty(t, alert.ID)
}

func TestAnalyze_BelowThresholdStaysQuiet(t *testing.T) {
	analyzer, store, sink := setupAnalyzer(time.Hour)

	recordNegatives(store, 4)
	for i := 0; i < 6; i++ {
		store.Record(EmotionEvent{Emotion: EmotionHappiness, Intensity: 0.8, CorrelationID: "child-1"})
	}
	analyzer.Analyze()

	assert.Empty(t, sink.snapshot())
}

func TestAnalyze_EmptyStoreIsNoop(t *testing.T) {
	analyzer, _, sink := setupAnalyzer(time.Hour)

	analyzer.Analyze()
	assert.Empty(t, sink.snapshot())
}

func TestAnalyze_OnlyLastWindowCounts(t *testing.T) {
	analyzer, store, sink := setupAnalyzer(time.Hour)

	// Old negatives pushed out of the 10-event window by newer positives.
	recordNegatives(store, 6)
	for i := 0; i < 10; i++ {
		store.Record(EmotionEvent{Emotion: EmotionCuriosity, Intensity: 0.6, CorrelationID: "child-1"})
	}
	analyzer.Analyze()

	assert.Empty(t, sink.snapshot())
}

func TestStartStop_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	analyzer, store, _ := setupAnalyzer(10 * time.Millisecond)
	recordNegatives(store, 6)

	analyzer.Start(context.Background())
	assert.True(t, analyzer.Running())

	// Second Start while running must not spawn another loop.
	analyzer.Start(context.Background())

	time.Sleep(35 * time.Millisecond)
	analyzer.Stop()
	assert.False(t, analyzer.Running())

	// Stop after stopped is a no-op.
	analyzer.Stop()
}

func TestStartStop_TicksPublishAlerts(t *testing.T) {
	defer goleak.VerifyNone(t)

	analyzer, store, sink := setupAnalyzer(10 * time.Millisecond)
	recordNegatives(store, 6)

	analyzer.Start(context.Background())
	assert.Eventually(t, func() bool {
		return len(sink.snapshot()) > 0
	}, time.Second, 5*time.Millisecond, "ticks must publish while negatives persist")
	analyzer.Stop()
}

func TestNewPeriodicStateAnalyzer_NilDepsPanic(t *testing.T) {
	store := NewEmotionEventStore(100, 5, nil)
	dispatcher := NewAlertDispatcher(nil)
	assert.Panics(t, func() { NewPeriodicStateAnalyzer(nil, dispatcher, 0, 0, 0, nil) })
	assert.Panics(t, func() { NewPeriodicStateAnalyzer(store, nil, 0, 0, 0, nil) })
}
