package companionsdk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Emotion Report — windowed dashboard summary
// ──────────────────────────────────────────────

// ReportWindow selects how far back a report looks.
type ReportWindow string

const (
	WindowHour ReportWindow = "hour"
	WindowDay  ReportWindow = "day"
	WindowWeek ReportWindow = "week"
)

func (w ReportWindow) duration() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	default:
		return time.Hour
	}
}

// EmotionReport summarizes the events of one correlation id inside a window.
type EmotionReport struct {
	Summary         string
	Emotions        map[EmotionType]int
	Trends          []string
	Alerts          []EmotionAlert
	Recommendations []string
}

var emotionRecommendations = map[EmotionType][]string{
	EmotionHappiness:  {"继续保持积极状态", "记录快乐时刻", "分享成功经验"},
	EmotionCuriosity:  {"满足好奇心", "提供探索机会", "鼓励学习新知识"},
	EmotionAttention:  {"给予专注陪伴", "安排互动时间", "积极响应需求"},
	EmotionDiscomfort: {"了解不适原因", "提供安慰和支持", "创造安全感"},
	EmotionAnger:      {"帮助表达情绪", "教授情绪管理", "提供冷静空间"},
}

// Report builds an EmotionReport for the correlation id over the window.
// With no matching events it returns a well-defined "no data" report, never
// an error.
func (s *EmotionEventStore) Report(correlationID string, window ReportWindow) EmotionReport {
	events := s.eventsSince(correlationID, time.Now().Add(-window.duration()))

	counts := make(map[EmotionType]int, len(events))
	for _, e := range events {
		counts[e.Emotion]++
	}

	return EmotionReport{
		Summary:         reportSummary(events, dominantEmotion(counts)),
		Emotions:        counts,
		Trends:          reportTrends(events),
		Alerts:          reportAlerts(events),
		Recommendations: reportRecommendations(events, dominantEmotion(counts)),
	}
}

// dominantEmotion picks the most frequent emotion; ties break toward the
// lexicographically smaller name so reports stay reproducible.
func dominantEmotion(counts map[EmotionType]int) EmotionType {
	var dominant EmotionType
	best := 0
	for emotion, count := range counts {
		if count > best || (count == best && (dominant == "" || emotion < dominant)) {
			best = count
			dominant = emotion
		}
	}
	return dominant
}

func reportSummary(events []EmotionEvent, dominant EmotionType) string {
	if len(events) == 0 {
		return "暂无情感数据"
	}

	total := 0.0
	for _, e := range events {
		total += e.Intensity
	}
	avg := total / float64(len(events))

	overall := "平稳"
	if avg > 0.6 {
		overall = "积极"
	}
	return fmt.Sprintf("在观察期间，主要表现为%s状态，平均强度为%.0f%%，总体情感状态%s。",
		dominant, avg*100, overall)
}

func reportTrends(events []EmotionEvent) []string {
	var trends []string
	if len(events) < 3 {
		return trends
	}

	unique := make(map[EmotionType]bool)
	for _, e := range events {
		unique[e.Emotion] = true
	}
	if len(unique) > 3 {
		trends = append(trends, "情感变化较为丰富，情绪活跃")
	} else if len(unique) == 1 {
		trends = append(trends, "情感状态相对稳定")
	}

	byHour := make(map[int]int)
	for _, e := range events {
		byHour[e.Timestamp.Hour()]++
	}
	bestHour, bestCount := -1, 0
	for hour, count := range byHour {
		if count > bestCount || (count == bestCount && hour < bestHour) {
			bestHour, bestCount = hour, count
		}
	}
	if bestHour >= 0 {
		trends = append(trends, fmt.Sprintf("%d点时段情感表达最为活跃", bestHour))
	}
	return trends
}

// reportAlerts raises an in-report concern when any window event is a
// high-intensity negative emotion.
func reportAlerts(events []EmotionEvent) []EmotionAlert {
	var alerts []EmotionAlert
	for _, e := range events {
		if e.Intensity > 0.8 &&
			(e.Emotion == EmotionSadness || e.Emotion == EmotionAnger || e.Emotion == EmotionFear) {
			alerts = append(alerts, EmotionAlert{
				ID:          uuid.NewString(),
				Type:        AlertEmotionalConcern,
				Severity:    SeverityHigh,
				Message:     "检测到高强度负面情绪",
				Suggestions: []string{"立即关注", "提供安慰", "了解原因"},
				Timestamp:   time.Now(),
			})
			break
		}
	}
	return alerts
}

func reportRecommendations(events []EmotionEvent, dominant EmotionType) []string {
	if len(events) == 0 {
		return []string{"继续观察情感表现"}
	}

	var recommendations []string
	if recs, ok := emotionRecommendations[dominant]; ok {
		recommendations = append(recommendations, recs...)
	}

	unique := make(map[EmotionType]bool)
	for _, e := range events {
		unique[e.Emotion] = true
	}
	if len(unique) < 2 {
		recommendations = append(recommendations, "鼓励情感表达的多样性")
	}
	return recommendations
}
