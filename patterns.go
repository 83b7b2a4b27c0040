package companionsdk

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Pattern Detector — confidence-accumulating rules
// ──────────────────────────────────────────────

const (
	defaultPatternLearningRate = 0.1
	defaultPatternThreshold    = 0.7
)

// PatternDetector matches incoming events against a fixed catalog of named
// patterns. Confidence grows by a fixed increment per match and never decays;
// crossing the threshold raises a pattern alert through the dispatcher.
type PatternDetector struct {
	mu           sync.Mutex
	order        []string
	patterns     map[string]*EmotionPattern
	dispatcher   *AlertDispatcher
	learningRate float64
	threshold    float64
	logger       *zap.Logger
}

// NewPatternDetector creates a detector seeded with the default patterns.
// learningRate and threshold fall back to 0.1 and 0.7 when zero.
func NewPatternDetector(dispatcher *AlertDispatcher, learningRate, threshold float64, logger *zap.Logger) *PatternDetector {
	if dispatcher == nil {
		panic("companionsdk: PatternDetector requires an alert dispatcher")
	}
	if learningRate <= 0 {
		learningRate = defaultPatternLearningRate
	}
	if threshold <= 0 {
		threshold = defaultPatternThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &PatternDetector{
		patterns:     make(map[string]*EmotionPattern),
		dispatcher:   dispatcher,
		learningRate: learningRate,
		threshold:    threshold,
		logger:       logger,
	}
	for _, p := range defaultPatterns() {
		pattern := p
		d.order = append(d.order, pattern.ID)
		d.patterns[pattern.ID] = &pattern
	}
	return d
}

func defaultPatterns() []EmotionPattern {
	return []EmotionPattern{
		{
			ID:          "frustration_pattern",
			Type:        PatternBehavioral,
			Description: "连续遇到困难时的挫败感",
			Emotions:    []EmotionType{EmotionAnger, EmotionDiscomfort},
			Triggers:    []string{"重复尝试", "错误", "失败", "无法解决"},
		},
		{
			ID:          "excitement_pattern",
			Type:        PatternContextBased,
			Description: "成功完成任务的兴奋感",
			Emotions:    []EmotionType{EmotionHappiness, EmotionCuriosity},
			Triggers:    []string{"完成", "成功", "奖励", "表扬"},
		},
		{
			ID:          "attention_seeking",
			Type:        PatternTimeBased,
			Description: "需要关注的表现",
			Emotions:    []EmotionType{EmotionAttention},
			Triggers:    []string{"打断", "呼叫", "寻求帮助"},
		},
	}
}

var patternSuggestions = map[string][]string{
	"frustration_pattern": {"提供额外帮助", "简化任务难度", "给予鼓励和支持"},
	"excitement_pattern":  {"给予表扬", "设置新挑战", "记录成就时刻"},
	"attention_seeking":   {"给予专注陪伴", "安排互动时间", "肯定存在感"},
}

var defaultPatternSuggestions = []string{"关注情感变化", "提供适当支持"}

// Check matches the event against every catalog pattern, in seed order.
// Matched patterns get frequency+1 and confidence+learningRate (capped at
// 1.0); a pattern whose confidence exceeds the threshold raises an alert.
// Returns copies of the matched patterns after the update.
func (d *PatternDetector) Check(event EmotionEvent) []EmotionPattern {
	var matched []EmotionPattern
	var alerts []EmotionAlert

	d.mu.Lock()
	for _, id := range d.order {
		pattern := d.patterns[id]
		if !patternMatches(pattern, event) {
			continue
		}

		pattern.Frequency++
		pattern.Confidence += d.learningRate
		if pattern.Confidence > 1.0 {
			pattern.Confidence = 1.0
		}
		pattern.LastDetected = time.Now()
		matched = append(matched, *pattern)

		if pattern.Confidence > d.threshold {
			alerts = append(alerts, patternAlert(pattern))
		}
	}
	d.mu.Unlock()

	// Publish outside the lock: handlers run arbitrary code.
	for _, alert := range alerts {
		d.logger.Info("emotion pattern alert",
			zap.String("type", string(alert.Type)),
			zap.String("severity", string(alert.Severity)))
		d.dispatcher.Publish(alert)
	}
	return matched
}

// Patterns returns patterns with confidence above 0.5, highest first.
func (d *PatternDetector) Patterns() []EmotionPattern {
	d.mu.Lock()
	var out []EmotionPattern
	for _, id := range d.order {
		if p := d.patterns[id]; p.Confidence > 0.5 {
			out = append(out, *p)
		}
	}
	d.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func patternMatches(pattern *EmotionPattern, event EmotionEvent) bool {
	emotionMatch := false
	for _, e := range pattern.Emotions {
		if e == event.Emotion {
			emotionMatch = true
			break
		}
	}
	if !emotionMatch {
		return false
	}

	for _, trigger := range pattern.Triggers {
		if strings.Contains(event.Context, trigger) {
			return true
		}
		if event.Metadata != nil {
			for _, word := range event.Metadata.Words {
				if strings.Contains(word, trigger) {
					return true
				}
			}
		}
	}
	return false
}

func patternAlert(pattern *EmotionPattern) EmotionAlert {
	alertType := AlertEmotionalConcern
	for _, e := range pattern.Emotions {
		if e.IsPositive() {
			alertType = AlertPositiveMilestone
			break
		}
	}

	severity := SeverityLow
	switch {
	case pattern.Confidence > 0.8:
		severity = SeverityHigh
	case pattern.Confidence > 0.6:
		severity = SeverityMedium
	}

	suggestions, ok := patternSuggestions[pattern.ID]
	if !ok {
		suggestions = defaultPatternSuggestions
	}

	return EmotionAlert{
		ID:          uuid.NewString(),
		Type:        alertType,
		Severity:    severity,
		Message:     "检测到情感模式: " + pattern.Description,
		Suggestions: append([]string(nil), suggestions...),
		Timestamp:   time.Now(),
	}
}
