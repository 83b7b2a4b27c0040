package companionsdk

import "time"

// ──────────────────────────────────────────────
// Emotion Types — events, state, patterns, alerts
// ──────────────────────────────────────────────

// EmotionType is the closed set of emotions recognized by the classifier.
type EmotionType string

const (
	EmotionHappiness  EmotionType = "happiness"
	EmotionSadness    EmotionType = "sadness"
	EmotionAnger      EmotionType = "anger"
	EmotionFear       EmotionType = "fear"
	EmotionSurprise   EmotionType = "surprise"
	EmotionCuriosity  EmotionType = "curiosity"
	EmotionComfort    EmotionType = "comfort"
	EmotionHunger     EmotionType = "hunger"
	EmotionDiscomfort EmotionType = "discomfort"
	EmotionAttention  EmotionType = "attention"
	EmotionExcited    EmotionType = "excited"
	EmotionNeutral    EmotionType = "neutral"
)

// IsNegative reports whether the emotion counts as negative affect.
func (e EmotionType) IsNegative() bool {
	switch e {
	case EmotionSadness, EmotionAnger, EmotionFear, EmotionDiscomfort:
		return true
	}
	return false
}

// IsPositive reports whether the emotion counts as positive affect.
func (e EmotionType) IsPositive() bool {
	switch e {
	case EmotionHappiness, EmotionCuriosity, EmotionComfort:
		return true
	}
	return false
}

// EventSource describes where an emotion event originated.
type EventSource string

const (
	SourceUserInput     EventSource = "user_input"
	SourceBehavior      EventSource = "behavior"
	SourceSystemTrigger EventSource = "system_trigger"
	SourceVoice         EventSource = "voice"
)

// EventMetadata carries optional context captured with an event.
type EventMetadata struct {
	Page   string
	Action string
	Words  []string
}

// EmotionEvent is one classified observation. Immutable once recorded.
type EmotionEvent struct {
	ID            string
	Timestamp     time.Time
	Emotion       EmotionType
	Intensity     float64 // [0.1, 1.0]
	Context       string
	Source        EventSource
	CorrelationID string // opaque child/session key
	Metadata      *EventMetadata
}

// Trend describes the direction of recent intensity change.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// EmotionalState is the rolling snapshot recomputed on every Record call.
type EmotionalState struct {
	CurrentEmotion EmotionType
	Intensity      float64 // mean of the state window
	Trend          Trend
	Duration       time.Duration // time since the last event with this emotion
	Triggers       []string      // deduplicated recent contexts
}

// PatternType categorizes how a pattern correlates its evidence.
type PatternType string

const (
	PatternTimeBased    PatternType = "time_based"
	PatternContextBased PatternType = "context_based"
	PatternBehavioral   PatternType = "behavioral"
)

// EmotionPattern is a named rule correlating emotions with trigger substrings,
// accumulating confidence over repeated matches. Confidence never decays.
type EmotionPattern struct {
	ID           string
	Type         PatternType
	Description  string
	Emotions     []EmotionType
	Triggers     []string
	Frequency    int
	Confidence   float64 // [0, 1]
	LastDetected time.Time
}

// AlertType classifies a dispatched alert.
type AlertType string

const (
	AlertAttentionNeeded   AlertType = "attention_needed"
	AlertPositiveMilestone AlertType = "positive_milestone"
	AlertEmotionalConcern  AlertType = "emotional_concern"
)

// Severity grades an alert.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// EmotionAlert is a notification meant to prompt caregiver attention or
// celebrate a positive milestone. Acknowledged is set by the consumer.
type EmotionAlert struct {
	ID           string
	Type         AlertType
	Severity     Severity
	Message      string
	Suggestions  []string
	Timestamp    time.Time
	Acknowledged bool
}
