package companionsdk

// ──────────────────────────────────────────────
// Role Catalog — responder personas and synergies
// ──────────────────────────────────────────────

// RoleID identifies a responder role.
type RoleID string

const (
	RoleCompanion RoleID = "companion" // 陪伴者
	RoleRecorder  RoleID = "recorder"  // 记录者
	RoleGuardian  RoleID = "guardian"  // 守护者
	RoleListener  RoleID = "listener"  // 聆听者
	RoleAdvisor   RoleID = "advisor"   // 建议者
	RoleCultural  RoleID = "cultural"  // 文化引导者
)

// DefaultRole is the fallback when no role matches a query.
const DefaultRole = RoleAdvisor

// Synergy is a relevance boost applied when another role is active at the
// same time.
type Synergy struct {
	With        RoleID
	Boost       float64
	Description string
}

// ResponseLength hints how long the delegated answer should be.
type ResponseLength string

const (
	ResponseShort  ResponseLength = "short"
	ResponseMedium ResponseLength = "medium"
	ResponseLong   ResponseLength = "long"
)

// RoleConfig is the static configuration of one responder role.
// Loaded once at startup, never mutated.
type RoleConfig struct {
	ID              RoleID
	Name            string
	Description     string
	Specialties     []string
	TriggerKeywords []string
	Weight          float64 // base weight for ranking, default 1.0
	Priority        int
	ResponseLength  ResponseLength
	Synergies       []Synergy
}

// ChildContext is optional child metadata passed through to prompt framing.
// The correlation id itself is carried separately and treated as opaque.
type ChildContext struct {
	Name    string
	AgeText string
	Stage   string
	Traits  []string
}

// RoleCatalog is an immutable, ordered set of RoleConfig.
// Iteration order is stable so that equal scores break ties deterministically.
type RoleCatalog struct {
	ordered []RoleConfig
	index   map[RoleID]int
}

// NewRoleCatalog builds a catalog from the given configs, preserving order.
// Panics on an empty config list or a duplicate role id: a broken catalog is
// a startup bug, not a runtime condition.
func NewRoleCatalog(configs []RoleConfig) *RoleCatalog {
	if len(configs) == 0 {
		panic("companionsdk: role catalog must not be empty")
	}
	c := &RoleCatalog{
		ordered: make([]RoleConfig, len(configs)),
		index:   make(map[RoleID]int, len(configs)),
	}
	for i, cfg := range configs {
		if _, dup := c.index[cfg.ID]; dup {
			panic("companionsdk: duplicate role id: " + string(cfg.ID))
		}
		if cfg.Weight == 0 {
			cfg.Weight = 1.0
		}
		c.ordered[i] = cfg
		c.index[cfg.ID] = i
	}
	return c
}

// Get returns the config for a role id.
func (c *RoleCatalog) Get(id RoleID) (RoleConfig, bool) {
	i, ok := c.index[id]
	if !ok {
		return RoleConfig{}, false
	}
	return c.ordered[i], true
}

// Roles returns the configs in catalog order.
func (c *RoleCatalog) Roles() []RoleConfig {
	out := make([]RoleConfig, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of roles in the catalog.
func (c *RoleCatalog) Len() int {
	return len(c.ordered)
}

// DefaultRoleCatalog returns the built-in six-role catalog.
func DefaultRoleCatalog() *RoleCatalog {
	return NewRoleCatalog([]RoleConfig{
		{
			ID:          RoleCompanion,
			Name:        "陪伴者",
			Description: "日常陪伴、情感支持",
			Specialties: []string{"日常陪伴", "情感支持", "温暖互动", "情感慰藉", "陪伴聊天"},
			TriggerKeywords: []string{
				"陪伴", "聊天", "无聊", "寂寞", "心情", "情感", "安慰", "一起", "讲故事", "玩游戏",
			},
			Weight:         1.0,
			Priority:       1,
			ResponseLength: ResponseMedium,
			Synergies: []Synergy{
				{With: RoleListener, Boost: 1.2, Description: "陪伴者与聆听者协同，陪伴中理解情绪变化"},
				{With: RoleRecorder, Boost: 1.1, Description: "陪伴者与记录者协同，留住陪伴中的美好时刻"},
			},
		},
		{
			ID:          RoleRecorder,
			Name:        "记录者",
			Description: "自动记录成长事件",
			Specialties: []string{"成长事件记录", "里程碑识别", "数据整理", "成长档案", "时间线管理"},
			TriggerKeywords: []string{
				"记录", "拍照", "保存", "里程碑", "回忆", "照片", "视频", "时刻", "瞬间",
				"成长", "档案", "数据", "时间线", "事件",
			},
			Weight:         1.0,
			Priority:       2,
			ResponseLength: ResponseLong,
			Synergies: []Synergy{
				{With: RoleListener, Boost: 1.2, Description: "记录者与聆听者协同，更好地理解记录的情感意义"},
				{With: RoleGuardian, Boost: 1.1, Description: "记录者与守护者协同，确保记录符合发展标准"},
			},
		},
		{
			ID:          RoleGuardian,
			Name:        "守护者",
			Description: "风险识别、主动预警",
			Specialties: []string{"风险识别", "安全预警", "健康监测", "保护措施", "安全指导"},
			TriggerKeywords: []string{
				"健康", "安全", "发展", "标准", "正常吗", "评估", "规则", "边界", "睡眠", "饮食",
				"风险", "危险", "保护", "预警", "检查", "防护",
			},
			Weight:         1.0,
			Priority:       4,
			ResponseLength: ResponseShort,
			Synergies: []Synergy{
				{With: RoleAdvisor, Boost: 1.3, Description: "守护者与建议者协同，提供科学的行动建议"},
				{With: RoleListener, Boost: 1.2, Description: "守护者与聆听者协同，理解行为背后的需求"},
			},
		},
		{
			ID:          RoleListener,
			Name:        "聆听者",
			Description: "情绪识别、心理分析",
			Specialties: []string{"情绪识别", "心理分析", "共情理解", "行为解读", "心理支持"},
			TriggerKeywords: []string{
				"情绪", "感觉", "发脾气", "哭闹", "不听话", "沟通", "理解", "为什么",
				"心理", "分析", "行为", "想法",
			},
			Weight:         1.0,
			Priority:       1,
			ResponseLength: ResponseLong,
			Synergies: []Synergy{
				{With: RoleGuardian, Boost: 1.1, Description: "聆听者与守护者协同，区分正常行为与发展问题"},
				{With: RoleCultural, Boost: 1.1, Description: "聆听者与文化引导者协同，理解文化背景下的行为"},
			},
		},
		{
			ID:          RoleAdvisor,
			Name:        "建议者",
			Description: "成长建议、教育指导",
			Specialties: []string{"成长建议", "教育指导", "个性化方案", "科学育儿", "能力培养"},
			TriggerKeywords: []string{
				"学习", "课程", "兴趣班", "规划", "建议", "选择", "怎么办", "应该", "推荐",
				"指导", "如何", "方案", "方法", "策略", "培养", "教育",
			},
			Weight:         1.0,
			Priority:       3,
			ResponseLength: ResponseLong,
			Synergies: []Synergy{
				{With: RoleGuardian, Boost: 1.2, Description: "建议者与守护者协同，确保建议符合发展阶段"},
				{With: RoleCultural, Boost: 1.1, Description: "建议者与文化引导者协同，融合传统文化元素"},
			},
		},
		{
			ID:          RoleCultural,
			Name:        "文化引导者",
			Description: "文化传承、价值观教育",
			Specialties: []string{"文化传承", "价值观教育", "传统节日", "礼仪培养", "品格塑造"},
			TriggerKeywords: []string{
				"古诗", "诗词", "文化", "国学", "传统", "节日", "礼仪", "故事", "成语", "典故",
				"品格", "价值观", "历史", "美德",
			},
			Weight:         1.0,
			Priority:       2,
			ResponseLength: ResponseMedium,
			Synergies: []Synergy{
				{With: RoleAdvisor, Boost: 1.1, Description: "文化引导者与建议者协同，传统文化融入现代教育"},
				{With: RoleListener, Boost: 1.1, Description: "文化引导者与聆听者协同，理解文化背景下的情感"},
			},
		},
	})
}
