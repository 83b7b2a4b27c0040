package companionsdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ══════════════════════════════════════════════
// Prompt framing tests
// ══════════════════════════════════════════════

func TestRolePrompt_ContainsFramingAndRequirements(t *testing.T) {
	prompt := RolePrompt(DefaultRoleCatalog(), RoleGuardian, nil)

	assert.Contains(t, prompt, "你是AI小语")
	assert.Contains(t, prompt, "守护者")
	assert.Contains(t, prompt, "通用要求")
	assert.NotContains(t, prompt, "孩子信息")
}

func TestRolePrompt_ChildContext(t *testing.T) {
	child := &ChildContext{Name: "小明", AgeText: "3岁", Stage: "幼儿期", Traits: []string{"好奇", "爱笑"}}
	prompt := RolePrompt(DefaultRoleCatalog(), RoleCompanion, child)

	assert.Contains(t, prompt, "小明")
	assert.Contains(t, prompt, "3岁")
	assert.Contains(t, prompt, "好奇、爱笑")
}

func TestRolePrompt_DefaultTraits(t *testing.T) {
	child := &ChildContext{Name: "小明", AgeText: "3岁", Stage: "幼儿期"}
	prompt := RolePrompt(DefaultRoleCatalog(), RoleCompanion, child)

	assert.Contains(t, prompt, "活泼可爱")
}

func TestRolePrompt_UnknownRoleFallsBackToCatalog(t *testing.T) {
	catalog := NewRoleCatalog([]RoleConfig{
		{ID: "navigator", Name: "引路人", Description: "出行规划"},
	})
	prompt := RolePrompt(catalog, "navigator", nil)

	assert.Contains(t, prompt, "引路人")
	assert.Contains(t, prompt, "出行规划")
}

func TestCoordinatedPrompt_MultiplePerspectives(t *testing.T) {
	catalog := DefaultRoleCatalog()
	prompt := CoordinatedPrompt(catalog, []RoleID{RoleGuardian, RoleAdvisor}, nil)

	assert.Contains(t, prompt, "综合多个角色视角")
	assert.Contains(t, prompt, "【守护者视角】")
	assert.Contains(t, prompt, "【建议者视角】")
	assert.Contains(t, prompt, "300字以内")
}

func TestCoordinatedPrompt_SingleRoleFallsBack(t *testing.T) {
	catalog := DefaultRoleCatalog()

	single := CoordinatedPrompt(catalog, []RoleID{RoleGuardian}, nil)
	assert.Equal(t, RolePrompt(catalog, RoleGuardian, nil), single)

	empty := CoordinatedPrompt(catalog, nil, nil)
	assert.Equal(t, RolePrompt(catalog, DefaultRole, nil), empty)
}
