package companionsdk

import "strings"

// ──────────────────────────────────────────────
// Relevance Scorer — keyword + synergy scoring
// ──────────────────────────────────────────────

const (
	keywordScoreStep   = 0.2 // score added per matched trigger keyword
	synergyScoreFactor = 0.1 // multiplier applied to a synergy boost
)

// RelevanceScorer computes how relevant a role is to a query.
// Pure substring containment, case-insensitive; no fuzzy matching.
type RelevanceScorer struct {
	catalog *RoleCatalog
}

// NewRelevanceScorer creates a scorer over the given catalog.
func NewRelevanceScorer(catalog *RoleCatalog) *RelevanceScorer {
	if catalog == nil {
		panic("companionsdk: RelevanceScorer requires a role catalog")
	}
	return &RelevanceScorer{catalog: catalog}
}

// Score returns a relevance score in [0,1] for the role against the query.
// Each contained trigger keyword adds a fixed step; each currently-active
// synergy partner adds boost*0.1. The result is clamped to [0,1].
// For fixed inputs the result is fully deterministic.
func (s *RelevanceScorer) Score(role RoleID, query string, active map[RoleID]bool) float64 {
	config, ok := s.catalog.Get(role)
	if !ok {
		return 0
	}

	lower := strings.ToLower(query)
	score := 0.0
	for _, keyword := range config.TriggerKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			score += keywordScoreStep
		}
	}

	for _, synergy := range config.Synergies {
		if synergy.With != role && active[synergy.With] {
			score += synergy.Boost * synergyScoreFactor
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// KeywordHits returns the raw number of trigger keywords contained in the
// query, ignoring synergies. Used to decide role involvement.
func (s *RelevanceScorer) KeywordHits(role RoleID, query string) int {
	config, ok := s.catalog.Get(role)
	if !ok {
		return 0
	}
	lower := strings.ToLower(query)
	hits := 0
	for _, keyword := range config.TriggerKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			hits++
		}
	}
	return hits
}

// MatchedKeywords returns the trigger keywords contained in the query,
// in catalog keyword order.
func (s *RelevanceScorer) MatchedKeywords(role RoleID, query string) []string {
	config, ok := s.catalog.Get(role)
	if !ok {
		return nil
	}
	lower := strings.ToLower(query)
	var matched []string
	for _, keyword := range config.TriggerKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}
