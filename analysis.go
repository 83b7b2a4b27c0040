package companionsdk

import "strings"

// ──────────────────────────────────────────────
// Query Analysis — complexity, tone, urgency
// ──────────────────────────────────────────────

// QueryComplexity classifies how many role domains a query touches.
type QueryComplexity string

const (
	ComplexitySimple  QueryComplexity = "simple"
	ComplexityMedium  QueryComplexity = "medium"
	ComplexityComplex QueryComplexity = "complex"
)

// QueryTone is the coarse emotional tone of a query.
type QueryTone string

const (
	TonePositive QueryTone = "positive"
	ToneNegative QueryTone = "negative"
	ToneNeutral  QueryTone = "neutral"
	ToneMixed    QueryTone = "mixed"
)

// Urgency grades how time-sensitive a query is.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// QueryAnalysis is the result of analyzing a free-text query.
type QueryAnalysis struct {
	Complexity              QueryComplexity
	InvolvedRoles           []RoleID
	EmotionalTone           QueryTone
	Urgency                 Urgency
	SuggestedResponseLength ResponseLength
}

var (
	positiveToneWords = []string{"开心", "高兴", "喜欢", "爱", "快乐", "幸福", "满意", "棒", "好"}
	negativeToneWords = []string{"难过", "伤心", "生气", "愤怒", "讨厌", "害怕", "担心", "焦虑", "痛苦"}
	urgentWords       = []string{"紧急", "马上", "立即", "快点", "危险", "救命", "急"}
)

// AnalyzeQuery determines which roles a query involves and grades its
// complexity, tone and urgency. A query with no keyword hits involves the
// default role, so the caller always gets at least one role back.
func AnalyzeQuery(catalog *RoleCatalog, query string) QueryAnalysis {
	lower := strings.ToLower(query)

	var involved []RoleID
	for _, config := range catalog.Roles() {
		for _, keyword := range config.TriggerKeywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				involved = append(involved, config.ID)
				break
			}
		}
	}

	complexity := ComplexitySimple
	if len(involved) >= 3 {
		complexity = ComplexityComplex
	} else if len(involved) >= 2 {
		complexity = ComplexityMedium
	}

	if len(involved) == 0 {
		involved = []RoleID{DefaultRole}
	}

	return QueryAnalysis{
		Complexity:              complexity,
		InvolvedRoles:           involved,
		EmotionalTone:           analyzeTone(lower),
		Urgency:                 analyzeUrgency(lower),
		SuggestedResponseLength: suggestedLength(complexity),
	}
}

func analyzeTone(lower string) QueryTone {
	positive := countContained(lower, positiveToneWords)
	negative := countContained(lower, negativeToneWords)
	switch {
	case positive > 0 && negative > 0:
		return ToneMixed
	case positive > 0:
		return TonePositive
	case negative > 0:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

func analyzeUrgency(lower string) Urgency {
	switch n := countContained(lower, urgentWords); {
	case n >= 2:
		return UrgencyHigh
	case n >= 1:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func suggestedLength(complexity QueryComplexity) ResponseLength {
	switch complexity {
	case ComplexityComplex:
		return ResponseLong
	case ComplexityMedium:
		return ResponseMedium
	default:
		return ResponseShort
	}
}

func countContained(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}
