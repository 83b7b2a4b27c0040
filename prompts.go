package companionsdk

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// Prompt Framing — text handed to the external answer generator
// ──────────────────────────────────────────────

const basePromptHeader = "你是AI小语，智能成长守护系统的AI助手。你服务的是一个温暖的家庭，致力于陪伴孩子健康成长。"

const commonRequirements = `通用要求：
- 使用简洁、易懂的语言
- 提供具体、可操作的建议
- 关注孩子的年龄特点和个体差异
- 保持积极、正面的态度
- 回答控制在200字以内，除非用户要求详细说明`

// roleFraming maps each role to the framing line injected into its prompt.
var roleFraming = map[RoleID]string{
	RoleCompanion: "你当前以\"陪伴者\"角色回应，温暖、耐心、善于倾听，专注于日常陪伴和情感支持。",
	RoleRecorder:  "你当前以\"记录者\"角色回应，准确、全面、结构化地记录孩子的成长事件。",
	RoleGuardian:  "你当前以\"守护者\"角色回应，警觉、主动、负责，专注于风险识别和主动预警。",
	RoleListener:  "你当前以\"聆听者\"角色回应，共情、理解、专业，擅长情绪识别和心理分析。",
	RoleAdvisor:   "你当前以\"建议者\"角色回应，基于儿童发展科学提供专业、个性化的教育建议。",
	RoleCultural:  "你当前以\"文化引导者\"角色回应，博学、温和、启发性，专注于文化传承和价值观教育。",
}

// RolePrompt builds the framing prompt for a single role, interpolating the
// child context when present.
func RolePrompt(catalog *RoleCatalog, role RoleID, child *ChildContext) string {
	framing, ok := roleFraming[role]
	if !ok {
		if config, found := catalog.Get(role); found {
			framing = fmt.Sprintf("你当前以%q角色回应，专注于%s。", config.Name, config.Description)
		}
	}

	var b strings.Builder
	b.WriteString(basePromptHeader)
	b.WriteString(childContextBlock(child))
	b.WriteString("\n\n")
	b.WriteString(framing)
	b.WriteString("\n\n")
	b.WriteString(commonRequirements)
	return b.String()
}

// CoordinatedPrompt builds the framing prompt when multiple roles contribute
// to one response. With a single role it falls back to RolePrompt.
func CoordinatedPrompt(catalog *RoleCatalog, roles []RoleID, child *ChildContext) string {
	if len(roles) == 0 {
		return RolePrompt(catalog, DefaultRole, child)
	}
	if len(roles) == 1 {
		return RolePrompt(catalog, roles[0], child)
	}

	var perspectives []string
	for _, role := range roles {
		config, ok := catalog.Get(role)
		if !ok {
			continue
		}
		n := len(config.Specialties)
		if n > 3 {
			n = 3
		}
		perspectives = append(perspectives, fmt.Sprintf("【%s视角】%s",
			config.Name, strings.Join(config.Specialties[:n], "、")))
	}

	var b strings.Builder
	b.WriteString("你是AI小语，需要综合多个角色视角回答用户问题。")
	b.WriteString(childContextBlock(child))
	b.WriteString("\n\n用户问题涉及以下方面：\n")
	b.WriteString(strings.Join(perspectives, "\n"))
	b.WriteString(`

请综合以上视角，给出全面而有条理的回答。
- 先从最相关的角度切入
- 适当补充其他角度的见解
- 给出具体可行的建议
- 回答控制在300字以内`)
	return b.String()
}

func childContextBlock(child *ChildContext) string {
	if child == nil {
		return ""
	}
	traits := "活泼可爱"
	if len(child.Traits) > 0 {
		traits = strings.Join(child.Traits, "、")
	}
	return fmt.Sprintf(`

当前服务的孩子信息：
- 姓名：%s
- 年龄：%s
- 所处阶段：%s
- 特点：%s`, child.Name, child.AgeText, child.Stage, traits)
}
