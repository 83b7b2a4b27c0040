package companionsdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ══════════════════════════════════════════════
// Relevance scorer tests
// ══════════════════════════════════════════════

func setupScorer() *RelevanceScorer {
	return NewRelevanceScorer(DefaultRoleCatalog())
}

func TestScore_KeywordStep(t *testing.T) {
	scorer := setupScorer()

	// 睡眠 + 安全 + 正常吗 are guardian keywords.
	score := scorer.Score(RoleGuardian, "孩子的睡眠安全正常吗", nil)
	assert.InDelta(t, 0.6, score, 1e-9)
}

func TestScore_NoMatch(t *testing.T) {
	scorer := setupScorer()
	assert.Zero(t, scorer.Score(RoleGuardian, "今天天气不错", nil))
	assert.Zero(t, scorer.Score(RoleID("unknown"), "睡眠", nil))
}

func TestScore_SynergyBoost(t *testing.T) {
	scorer := setupScorer()

	base := scorer.Score(RoleGuardian, "睡眠", nil)
	boosted := scorer.Score(RoleGuardian, "睡眠", map[RoleID]bool{RoleAdvisor: true})

	// guardian→advisor synergy boost is 1.3, applied at ×0.1.
	assert.InDelta(t, base+0.13, boosted, 1e-9)
}

func TestScore_ClampedToOne(t *testing.T) {
	scorer := setupScorer()

	query := "健康 安全 发展 标准 正常吗 评估 规则 边界 睡眠 饮食 风险"
	score := scorer.Score(RoleGuardian, query, map[RoleID]bool{RoleAdvisor: true, RoleListener: true})
	assert.Equal(t, 1.0, score)
}

func TestScore_Deterministic(t *testing.T) {
	scorer := setupScorer()
	active := map[RoleID]bool{RoleListener: true}

	first := scorer.Score(RoleGuardian, "孩子的睡眠健康", active)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.Score(RoleGuardian, "孩子的睡眠健康", active))
	}
}

func TestKeywordHits(t *testing.T) {
	scorer := setupScorer()

	assert.Equal(t, 2, scorer.KeywordHits(RoleGuardian, "睡眠安全"))
	assert.Equal(t, 0, scorer.KeywordHits(RoleGuardian, "讲个故事"))

	matched := scorer.MatchedKeywords(RoleGuardian, "睡眠安全")
	require.Len(t, matched, 2)
	assert.Contains(t, matched, "睡眠")
	assert.Contains(t, matched, "安全")
}

func TestNewRelevanceScorer_NilCatalogPanics(t *testing.T) {
	assert.Panics(t, func() { NewRelevanceScorer(nil) })
}
