package companionsdk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ══════════════════════════════════════════════
// Role coordinator tests
// ══════════════════════════════════════════════

func setupCoordinator(config ...CoordinatorConfig) *RoleCoordinator {
	return NewRoleCoordinator(DefaultRoleCatalog(), nil, config...)
}

func TestCoordinate_FallbackRole(t *testing.T) {
	coordinator := setupCoordinator()

	response := coordinator.Coordinate("", nil)
	assert.Equal(t, DefaultRole, response.PrimaryRole)
	assert.Empty(t, response.SupportingInsights)
	assert.Equal(t, ModeSingle, coordinator.CurrentState().Mode)
	assert.InDelta(t, 0.8, response.Confidence, 1e-9)
}

func TestCoordinate_SingleGuardian(t *testing.T) {
	coordinator := setupCoordinator()

	// Three consecutive queries matching only guardian keywords.
	for i := 0; i < 3; i++ {
		response := coordinator.Coordinate("孩子的睡眠安全正常吗", nil)
		assert.Equal(t, RoleGuardian, response.PrimaryRole)
		assert.Empty(t, response.SupportingInsights)

		state := coordinator.CurrentState()
		assert.Equal(t, ModeSingle, state.Mode)
		assert.Equal(t, RoleGuardian, state.PrimaryRole)
		assert.Empty(t, state.SupportingRoles)
	}
}

func TestCoordinate_DualMode(t *testing.T) {
	coordinator := setupCoordinator()

	// 记录/成长 → recorder, 故事 → cultural.
	response := coordinator.Coordinate("想记录孩子的成长故事", nil)
	assert.Equal(t, RoleRecorder, response.PrimaryRole)
	require.Len(t, response.SupportingInsights, 1)
	assert.Equal(t, RoleCultural, response.SupportingInsights[0].Role)
	assert.Equal(t, ModeDual, coordinator.CurrentState().Mode)
}

func TestCoordinate_MultiMode(t *testing.T) {
	coordinator := setupCoordinator()

	// listener (发脾气/哭闹), advisor (怎么办), guardian (健康).
	response := coordinator.Coordinate("孩子发脾气哭闹要怎么办，会影响健康吗", nil)
	assert.Equal(t, ModeMulti, coordinator.CurrentState().Mode)
	assert.Len(t, response.SupportingInsights, 2)
	assert.NotEmpty(t, response.SuggestedActions)
	assert.LessOrEqual(t, len(response.SuggestedActions), 4)

	for _, insight := range response.SupportingInsights {
		assert.Equal(t, PriorityHigh, insight.Priority)
		assert.NotEmpty(t, insight.Text)
		assert.GreaterOrEqual(t, insight.Confidence, 0.7)
		assert.LessOrEqual(t, insight.Confidence, 1.0)
	}
}

func TestCoordinate_ConfidenceCeiling(t *testing.T) {
	coordinator := setupCoordinator()

	query := "安全 健康 睡眠 饮食 风险 危险 保护 预警 检查 建议 怎么办 情绪 为什么 记录 文化"
	response := coordinator.Coordinate(query, nil)
	assert.LessOrEqual(t, response.Confidence, 0.95)
}

func TestCoordinate_ActivationRecomputedPerQuery(t *testing.T) {
	coordinator := setupCoordinator()

	coordinator.Coordinate("孩子的睡眠安全正常吗", nil)
	assert.True(t, coordinator.CurrentState().ActiveRoles[RoleGuardian])

	// An unrelated query must not keep guardian active from the prior turn.
	coordinator.Coordinate("讲个传统节日的故事", nil)
	state := coordinator.CurrentState()
	assert.False(t, state.ActiveRoles[RoleGuardian])
	assert.True(t, state.ActiveRoles[RoleCultural])
}

func TestCoordinate_HistoryBounded(t *testing.T) {
	coordinator := setupCoordinator()

	for i := 0; i < 150; i++ {
		coordinator.Coordinate(fmt.Sprintf("第%d个问题：睡眠", i), nil)
	}

	history := coordinator.History(1000)
	require.Len(t, history, 100)
	assert.Contains(t, history[0].Query, "第149个问题")

	stats := coordinator.Stats()
	assert.Equal(t, 100, stats.TotalCoordinations)
	assert.Greater(t, stats.AverageEffectiveness, 0.0)
	assert.LessOrEqual(t, stats.AverageEffectiveness, 0.95)
	assert.Equal(t, RoleGuardian, stats.CurrentPrimaryRole)
}

func TestCoordinate_ChildContextInFraming(t *testing.T) {
	coordinator := setupCoordinator()

	child := &ChildContext{Name: "小明", AgeText: "3岁", Stage: "幼儿期", Traits: []string{"好奇"}}
	response := coordinator.Coordinate("孩子的睡眠安全正常吗", child)
	assert.Contains(t, response.FramingPrompt, "小明")
	assert.Contains(t, response.FramingPrompt, "3岁")
}

func TestCoordinate_EmotionHintEnrichment(t *testing.T) {
	sadState := &EmotionalState{CurrentEmotion: EmotionSadness, Intensity: 0.7}
	coordinator := setupCoordinator(CoordinatorConfig{
		StateFn: func() *EmotionalState { return sadState },
	})

	response := coordinator.Coordinate("孩子的睡眠安全正常吗", nil)
	assert.Contains(t, response.FramingPrompt, "[当前情绪]")
}

func TestCoordinate_CustomAnswerFn(t *testing.T) {
	coordinator := setupCoordinator(CoordinatorConfig{
		AnswerFn: func(role RoleID, prompt string, child *ChildContext) string {
			return "generated:" + string(role)
		},
	})

	response := coordinator.Coordinate("孩子的睡眠安全正常吗", nil)
	assert.Equal(t, "generated:guardian", response.PrimaryResponse)
}

func TestNewRoleCoordinator_NilCatalogPanics(t *testing.T) {
	assert.Panics(t, func() { NewRoleCoordinator(nil, nil) })
}
