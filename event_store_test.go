package companionsdk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ══════════════════════════════════════════════
// Emotion event store tests
// ══════════════════════════════════════════════

func setupStore() *EmotionEventStore {
	return NewEmotionEventStore(100, 5, nil)
}

func recordIntensities(store *EmotionEventStore, intensities ...float64) {
	for _, intensity := range intensities {
		store.Record(EmotionEvent{
			Emotion:       EmotionNeutral,
			Intensity:     intensity,
			CorrelationID: "child-1",
		})
	}
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	store := setupStore()

	id := store.Record(EmotionEvent{Emotion: EmotionHappiness, Intensity: 0.8})
	require.NotEmpty(t, id)

	history := store.History(1)
	require.Len(t, history, 1)
	assert.Equal(t, id, history[0].ID)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestHistory_BoundedAt100(t *testing.T) {
	store := setupStore()

	var lastID string
	for i := 0; i < 150; i++ {
		lastID = store.Record(EmotionEvent{
			Emotion:   EmotionNeutral,
			Intensity: 0.5,
			Context:   fmt.Sprintf("event-%d", i),
		})
	}

	history := store.History(1000)
	require.Len(t, history, 100)
	assert.Equal(t, lastID, history[0].ID)
	assert.Equal(t, "event-149", history[0].Context)
	assert.Equal(t, "event-50", history[99].Context)
	assert.Equal(t, 100, store.Len())
}

func TestCurrentState_NilBeforeFirstEvent(t *testing.T) {
	store := setupStore()
	assert.Nil(t, store.CurrentState())
}

func TestCurrentState_TrendImproving(t *testing.T) {
	store := setupStore()
	recordIntensities(store, 0.5, 0.5, 0.5, 0.9, 0.9, 0.9)

	state := store.CurrentState()
	require.NotNil(t, state)
	assert.Equal(t, TrendImproving, state.Trend)
}

func TestCurrentState_TrendDeclining(t *testing.T) {
	store := setupStore()
	recordIntensities(store, 0.9, 0.9, 0.9, 0.5, 0.5, 0.5)

	state := store.CurrentState()
	require.NotNil(t, state)
	assert.Equal(t, TrendDeclining, state.Trend)
}

func TestCurrentState_TrendStable(t *testing.T) {
	store := setupStore()
	recordIntensities(store, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5)

	state := store.CurrentState()
	require.NotNil(t, state)
	assert.Equal(t, TrendStable, state.Trend)
}

func TestCurrentState_WindowAverageAndDominant(t *testing.T) {
	store := setupStore()

	// Six events: the state window covers the last five.
	recordIntensities(store, 0.1, 0.2, 0.2, 0.2, 0.2)
	store.Record(EmotionEvent{Emotion: EmotionHappiness, Intensity: 0.7})

	state := store.CurrentState()
	require.NotNil(t, state)
	assert.Equal(t, EmotionHappiness, state.CurrentEmotion)
	assert.InDelta(t, (0.2+0.2+0.2+0.2+0.7)/5, state.Intensity, 1e-9)
	assert.GreaterOrEqual(t, state.Duration.Seconds(), 0.0)
}

func TestCurrentState_TriggersDeduplicated(t *testing.T) {
	store := setupStore()

	for _, context := range []string{"搭积木", "搭积木", "画画", "搭积木"} {
		store.Record(EmotionEvent{Emotion: EmotionHappiness, Intensity: 0.5, Context: context})
	}

	state := store.CurrentState()
	require.NotNil(t, state)
	assert.Equal(t, []string{"搭积木", "画画"}, state.Triggers)
}
