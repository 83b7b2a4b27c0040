package companionsdk

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Emotion Monitor — facade over classifier, store, patterns, alerts
// ──────────────────────────────────────────────

// EmotionMonitor ties the classifier, event store, pattern detector, alert
// dispatcher and periodic analyzer together for one session. Invalid input
// is logged and ignored rather than surfaced: UI responsiveness outranks
// strict validation here.
type EmotionMonitor struct {
	classifier *EmotionClassifier
	store      *EmotionEventStore
	detector   *PatternDetector
	dispatcher *AlertDispatcher
	analyzer   *PeriodicStateAnalyzer
	logger     *zap.Logger
}

// NewEmotionMonitor wires a monitor from the config.
func NewEmotionMonitor(cfg Config, logger *zap.Logger) *EmotionMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := NewAlertDispatcher(logger)
	store := NewEmotionEventStore(cfg.HistoryCapacity, cfg.StateWindow, logger)
	return &EmotionMonitor{
		classifier: NewEmotionClassifier(),
		store:      store,
		detector:   NewPatternDetector(dispatcher, cfg.PatternLearningRate, cfg.PatternThreshold, logger),
		dispatcher: dispatcher,
		analyzer: NewPeriodicStateAnalyzer(store, dispatcher,
			cfg.AnalysisInterval, cfg.AnalysisWindow, cfg.NegativeThreshold, logger),
		logger: logger,
	}
}

// Start launches the periodic state analysis.
func (m *EmotionMonitor) Start(ctx context.Context) {
	m.analyzer.Start(ctx)
}

// Stop tears down the periodic state analysis.
func (m *EmotionMonitor) Stop() {
	m.analyzer.Stop()
}

// RecordTextInput classifies a raw utterance and records the event.
// Empty text or correlation id is a logged no-op returning neutral.
func (m *EmotionMonitor) RecordTextInput(correlationID, text, context string) EmotionType {
	if strings.TrimSpace(text) == "" || correlationID == "" {
		m.logger.Warn("ignoring invalid text input",
			zap.String("correlation_id", correlationID),
			zap.Int("text_len", len(text)))
		return EmotionNeutral
	}

	emotion, intensity := m.classifier.Classify(text)
	m.RecordEvent(EmotionEvent{
		Emotion:       emotion,
		Intensity:     intensity,
		Context:       context,
		Source:        SourceUserInput,
		CorrelationID: correlationID,
		Metadata:      &EventMetadata{Words: strings.Fields(text)},
	})
	return emotion
}

// RecordBehavior infers an emotion from a behavior label and records it.
// An unrecognized behavior records nothing and returns ok=false.
func (m *EmotionMonitor) RecordBehavior(correlationID, action, page string) (EmotionType, bool) {
	if strings.TrimSpace(action) == "" || correlationID == "" {
		m.logger.Warn("ignoring invalid behavior input",
			zap.String("correlation_id", correlationID))
		return EmotionNeutral, false
	}

	emotion, ok := m.classifier.InferFromBehavior(action, page)
	if !ok {
		return EmotionNeutral, false
	}
	m.RecordEvent(EmotionEvent{
		Emotion:       emotion,
		Intensity:     0.6,
		Context:       "行为: " + action,
		Source:        SourceBehavior,
		CorrelationID: correlationID,
		Metadata:      &EventMetadata{Page: page, Action: action},
	})
	return emotion, true
}

// RecordEvent appends a pre-classified event, updates the rolling state and
// runs pattern detection. Returns the event id.
func (m *EmotionMonitor) RecordEvent(event EmotionEvent) string {
	id := m.store.Record(event)
	event.ID = id
	m.detector.Check(event)
	return id
}

// CurrentState returns the rolling emotional-state snapshot, nil before the
// first event.
func (m *EmotionMonitor) CurrentState() *EmotionalState {
	return m.store.CurrentState()
}

// History returns up to limit events, newest first.
func (m *EmotionMonitor) History(limit int) []EmotionEvent {
	return m.store.History(limit)
}

// Report builds a windowed report for the correlation id.
func (m *EmotionMonitor) Report(correlationID string, window ReportWindow) EmotionReport {
	return m.store.Report(correlationID, window)
}

// DetectedPatterns returns patterns with confidence above 0.5, highest first.
func (m *EmotionMonitor) DetectedPatterns() []EmotionPattern {
	return m.detector.Patterns()
}

// OnAlert registers an alert handler.
func (m *EmotionMonitor) OnAlert(handler AlertHandler) {
	m.dispatcher.Subscribe(handler)
}

// Analyzer exposes the periodic analyzer, mainly so a tick can be forced.
func (m *EmotionMonitor) Analyzer() *PeriodicStateAnalyzer {
	return m.analyzer
}
