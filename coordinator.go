package companionsdk

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Role Coordinator — primary/supporting role selection
// ──────────────────────────────────────────────

// CoordinationMode describes how many roles jointly contribute to a response.
type CoordinationMode string

const (
	ModeSingle CoordinationMode = "single"
	ModeDual   CoordinationMode = "dual"
	ModeMulti  CoordinationMode = "multi"
)

// InsightPriority grades a supporting insight.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// SupportingInsight is one supporting role's contribution.
type SupportingInsight struct {
	Role       RoleID
	Text       string
	Confidence float64
	Priority   InsightPriority
}

// CoordinatedResponse is the composed result of one Coordinate call.
// PrimaryResponse comes from the delegated answer generator; the core itself
// only decides roles and framing.
type CoordinatedResponse struct {
	PrimaryRole        RoleID
	PrimaryResponse    string
	FramingPrompt      string
	SupportingInsights []SupportingInsight
	SuggestedActions   []string
	Summary            string
	Confidence         float64 // capped at 0.95, never reports certainty
	ProcessingTime     time.Duration
}

// CoordinationState is the coordinator's per-query state. Recomputed fully
// on every call; no role stays active from a prior turn.
type CoordinationState struct {
	ActiveRoles      map[RoleID]bool
	PrimaryRole      RoleID
	SupportingRoles  []RoleID
	Mode             CoordinationMode
	LastCoordination time.Time
}

// CoordinationRecord is one bounded-history entry.
type CoordinationRecord struct {
	Timestamp     time.Time
	Query         string
	Roles         []RoleID
	Effectiveness float64
}

// CoordinationStats aggregates the bounded history.
type CoordinationStats struct {
	TotalCoordinations   int
	AverageEffectiveness float64
	RoleUsage            map[RoleID]int
	ActiveRoles          []RoleID
	CurrentPrimaryRole   RoleID
}

// AnswerFn generates the answer text for a role given a framing prompt.
// The actual language generation is external to this core.
type AnswerFn func(role RoleID, prompt string, child *ChildContext) string

// StateFn supplies a read-only emotional-state snapshot for prompt
// enrichment, typically EmotionEventStore.CurrentState.
type StateFn func() *EmotionalState

// CoordinatorConfig tunes the coordinator.
type CoordinatorConfig struct {
	HistoryCapacity     int     // bounded history size, default 100
	ActivationThreshold float64 // relevance needed to activate a role, default 0.3
	AnswerFn            AnswerFn
	StateFn             StateFn
}

// DefaultCoordinatorConfig returns the defaults from the base design.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		HistoryCapacity:     100,
		ActivationThreshold: 0.3,
	}
}

const (
	confidenceBase         = 0.8
	confidencePrimaryGain  = 0.3
	confidenceSupportGain  = 0.1
	confidenceSynergyGain  = 0.05
	confidenceCeiling      = 0.95
	insightConfidenceBase  = 0.7
	insightConfidenceScale = 0.3
	maxSuggestedActions    = 4
	maxSupportingRoles     = 2
)

// RoleCoordinator selects a primary role and up to two supporting roles per
// query, and keeps a bounded coordination history. One instance per session;
// safe for concurrent callers.
type RoleCoordinator struct {
	mu      sync.Mutex
	catalog *RoleCatalog
	scorer  *RelevanceScorer
	state   CoordinationState
	history []CoordinationRecord
	config  CoordinatorConfig
	logger  *zap.Logger
}

// NewRoleCoordinator creates a coordinator over the catalog. Panics on a nil
// catalog: an unloaded catalog is a startup bug.
func NewRoleCoordinator(catalog *RoleCatalog, logger *zap.Logger, config ...CoordinatorConfig) *RoleCoordinator {
	if catalog == nil {
		panic("companionsdk: RoleCoordinator requires a role catalog")
	}
	cfg := DefaultCoordinatorConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = 100
	}
	if cfg.ActivationThreshold <= 0 {
		cfg.ActivationThreshold = 0.3
	}
	if cfg.AnswerFn == nil {
		cfg.AnswerFn = DefaultAnswerFn
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleCoordinator{
		catalog: catalog,
		scorer:  NewRelevanceScorer(catalog),
		config:  cfg,
		logger:  logger,
		state: CoordinationState{
			ActiveRoles: map[RoleID]bool{DefaultRole: true},
			PrimaryRole: DefaultRole,
			Mode:        ModeSingle,
		},
	}
}

// Coordinate analyzes the query, selects the role combination and composes
// the response. Role selection never fails: with no keyword match the default
// role answers alone.
func (c *RoleCoordinator) Coordinate(query string, child *ChildContext) CoordinatedResponse {
	start := time.Now()

	analysis := AnalyzeQuery(c.catalog, query)
	involved := analysis.InvolvedRoles
	involvedSet := make(map[RoleID]bool, len(involved))
	for _, role := range involved {
		involvedSet[role] = true
	}

	// Activation is recomputed from scratch per query: scores are taken
	// against the involved set, so the outcome depends only on this query.
	active := make(map[RoleID]bool, c.catalog.Len())
	for _, config := range c.catalog.Roles() {
		score := c.scorer.Score(config.ID, query, involvedSet)
		if score > c.config.ActivationThreshold || involvedSet[config.ID] {
			active[config.ID] = true
		}
	}

	mode := coordinationMode(len(involved))
	primary, supporting := c.rankRoles(involved, query, active, mode)
	response := c.compose(primary, supporting, query, child, active)
	response.ProcessingTime = time.Since(start)

	c.mu.Lock()
	c.state = CoordinationState{
		ActiveRoles:      active,
		PrimaryRole:      primary,
		SupportingRoles:  supporting,
		Mode:             mode,
		LastCoordination: time.Now(),
	}
	c.history = append(c.history, CoordinationRecord{
		Timestamp:     time.Now(),
		Query:         query,
		Roles:         append([]RoleID{primary}, supporting...),
		Effectiveness: response.Confidence,
	})
	if len(c.history) > c.config.HistoryCapacity {
		c.history = append(c.history[:0:0], c.history[len(c.history)-c.config.HistoryCapacity:]...)
	}
	c.mu.Unlock()

	c.logger.Debug("coordination complete",
		zap.String("primary", string(primary)),
		zap.Int("supporting", len(supporting)),
		zap.String("mode", string(mode)),
		zap.Float64("confidence", response.Confidence))
	return response
}

func coordinationMode(involved int) CoordinationMode {
	switch {
	case involved <= 1:
		return ModeSingle
	case involved == 2:
		return ModeDual
	default:
		return ModeMulti
	}
}

// rankRoles orders the involved roles by score × base weight, descending.
// Ties keep catalog order, so selection stays reproducible.
func (c *RoleCoordinator) rankRoles(involved []RoleID, query string,
	active map[RoleID]bool, mode CoordinationMode) (RoleID, []RoleID) {

	type rankedRole struct {
		role  RoleID
		score float64
	}
	ranked := make([]rankedRole, 0, len(involved))
	for _, role := range involved {
		weight := 1.0
		if config, ok := c.catalog.Get(role); ok {
			weight = config.Weight
		}
		ranked = append(ranked, rankedRole{
			role:  role,
			score: c.scorer.Score(role, query, active) * weight,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) == 0 {
		return DefaultRole, nil
	}

	supportCap := 0
	switch mode {
	case ModeDual:
		supportCap = 1
	case ModeMulti:
		supportCap = maxSupportingRoles
	}
	var supporting []RoleID
	for _, r := range ranked[1:] {
		if len(supporting) >= supportCap {
			break
		}
		supporting = append(supporting, r.role)
	}
	return ranked[0].role, supporting
}

func (c *RoleCoordinator) compose(primary RoleID, supporting []RoleID,
	query string, child *ChildContext, active map[RoleID]bool) CoordinatedResponse {

	allRoles := append([]RoleID{primary}, supporting...)
	framing := CoordinatedPrompt(c.catalog, allRoles, child)
	if c.config.StateFn != nil {
		if hint := emotionHint(c.config.StateFn()); hint != "" {
			framing += "\n\n" + hint
		}
	}

	insights := make([]SupportingInsight, 0, len(supporting))
	for _, role := range supporting {
		name := string(role)
		if config, ok := c.catalog.Get(role); ok {
			name = config.Name
		}
		prompt := fmt.Sprintf("作为%s，针对\"%s\"这个问题，从你的专业角度提供关键见解。", name, query)
		insights = append(insights, SupportingInsight{
			Role:       role,
			Text:       c.config.AnswerFn(role, prompt, child),
			Confidence: insightConfidenceBase + insightConfidenceScale*c.scorer.Score(role, query, active),
			Priority:   c.insightPriority(role, query),
		})
	}

	return CoordinatedResponse{
		PrimaryRole:        primary,
		PrimaryResponse:    c.config.AnswerFn(primary, framing, child),
		FramingPrompt:      framing,
		SupportingInsights: insights,
		SuggestedActions:   suggestedActions(allRoles),
		Summary:            c.summary(primary, supporting),
		Confidence:         c.confidence(primary, supporting, query, active),
	}
}

// insightPriority is high when the role's own keywords directly matched the
// query, medium otherwise.
func (c *RoleCoordinator) insightPriority(role RoleID, query string) InsightPriority {
	if c.scorer.KeywordHits(role, query) > 0 {
		return PriorityHigh
	}
	return PriorityMedium
}

func (c *RoleCoordinator) confidence(primary RoleID, supporting []RoleID,
	query string, active map[RoleID]bool) float64 {

	confidence := confidenceBase
	confidence += c.scorer.Score(primary, query, active) * confidencePrimaryGain

	primaryConfig, _ := c.catalog.Get(primary)
	for _, role := range supporting {
		confidence += c.scorer.Score(role, query, active) * confidenceSupportGain
		for _, synergy := range primaryConfig.Synergies {
			if synergy.With == role {
				confidence += synergy.Boost * confidenceSynergyGain
				break
			}
		}
	}

	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}
	return confidence
}

func (c *RoleCoordinator) summary(primary RoleID, supporting []RoleID) string {
	primaryName := string(primary)
	if config, ok := c.catalog.Get(primary); ok {
		primaryName = config.Name
	}
	if len(supporting) == 0 {
		return fmt.Sprintf("%s为主角，从专业角度分析您的问题。", primaryName)
	}

	names := make([]string, 0, len(supporting))
	for _, role := range supporting {
		if config, ok := c.catalog.Get(role); ok {
			names = append(names, config.Name)
		} else {
			names = append(names, string(role))
		}
	}
	return fmt.Sprintf("由%s主导，%s协同合作，为您提供全面的解决方案。",
		primaryName, strings.Join(names, "、"))
}

var roleActions = map[RoleID][]string{
	RoleRecorder:  {"📝 记录这个重要时刻", "📸 拍摄照片或视频"},
	RoleGuardian:  {"🔍 观察并评估发展状况", "📋 建立日常记录表"},
	RoleListener:  {"💬 坦诚地交流感受", "🤝 给予理解和支持"},
	RoleAdvisor:   {"📚 制定具体行动计划", "🎯 设定可达成的小目标"},
	RoleCultural:  {"📖 结合传统文化元素", "🎨 开展相关的文化活动"},
	RoleCompanion: {"💛 安排专属陪伴时间", "🎲 一起做喜欢的活动"},
}

func suggestedActions(roles []RoleID) []string {
	var actions []string
	for _, role := range roles {
		actions = append(actions, roleActions[role]...)
	}
	if len(actions) > maxSuggestedActions {
		actions = actions[:maxSuggestedActions]
	}
	return actions
}

// emotionHint renders a gentle tone hint from the emotional-state snapshot.
// Neutral or missing state yields no hint.
func emotionHint(state *EmotionalState) string {
	if state == nil {
		return ""
	}
	switch {
	case state.CurrentEmotion.IsNegative():
		return "[当前情绪] 孩子近期情绪偏低落，请语气温和关切，优先给予安抚。"
	case state.CurrentEmotion == EmotionAttention:
		return "[当前情绪] 孩子近期在寻求关注，请积极回应，给予肯定。"
	case state.CurrentEmotion.IsPositive() && state.Intensity > 0.6:
		return "[当前情绪] 孩子近期情绪积极，可以轻松互动，鼓励表达。"
	default:
		return ""
	}
}

// CurrentState returns a copy of the coordination state.
func (c *RoleCoordinator) CurrentState() CoordinationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	state.ActiveRoles = make(map[RoleID]bool, len(c.state.ActiveRoles))
	for role, on := range c.state.ActiveRoles {
		state.ActiveRoles[role] = on
	}
	state.SupportingRoles = append([]RoleID(nil), c.state.SupportingRoles...)
	return state
}

// History returns up to limit coordination records, newest first.
func (c *RoleCoordinator) History(limit int) []CoordinationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit <= 0 || limit > len(c.history) {
		limit = len(c.history)
	}
	out := make([]CoordinationRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = c.history[len(c.history)-1-i]
	}
	return out
}

// Stats aggregates the bounded coordination history.
func (c *RoleCoordinator) Stats() CoordinationStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	usage := make(map[RoleID]int)
	total := 0.0
	for _, record := range c.history {
		for _, role := range record.Roles {
			usage[role]++
		}
		total += record.Effectiveness
	}

	avg := 0.0
	if len(c.history) > 0 {
		avg = total / float64(len(c.history))
	}

	var active []RoleID
	for _, config := range c.catalog.Roles() {
		if c.state.ActiveRoles[config.ID] {
			active = append(active, config.ID)
		}
	}

	return CoordinationStats{
		TotalCoordinations:   len(c.history),
		AverageEffectiveness: avg,
		RoleUsage:            usage,
		ActiveRoles:          active,
		CurrentPrimaryRole:   c.state.PrimaryRole,
	}
}

// DefaultAnswerFn is the built-in deterministic generator used when no
// external answer generation is wired. It mirrors the per-role template
// responses of the base design.
func DefaultAnswerFn(role RoleID, prompt string, child *ChildContext) string {
	switch role {
	case RoleRecorder:
		if strings.Contains(prompt, "记录") {
			return "作为记录者，我建议将这个重要的时刻详细记录下来。这正是记录的好时机！"
		}
		return "作为记录者，让我们为这个美好的瞬间创建一份珍贵的记忆。"
	case RoleGuardian:
		if strings.Contains(prompt, "安全") {
			return "从守护的角度来看，这个问题涉及重要的安全考虑。"
		}
		return "从守护的角度来看，我建议从发展和健康的角度来分析。"
	case RoleListener:
		if strings.Contains(prompt, "情绪") {
			return "我理解您的感受。情绪没有对错，重要的是理解和接纳。"
		}
		return "我理解您的感受。让我们一起深入探讨这个行为背后的需求。"
	case RoleAdvisor:
		if strings.Contains(prompt, "学习") {
			return "基于我的专业分析，这个年龄段的学习特点需要特别关注。"
		}
		return "基于我的专业分析，我建议从多个角度来考虑这个问题。"
	case RoleCultural:
		if strings.Contains(prompt, "诗词") {
			return "从传统文化角度来看，这个诗词有着深厚的文化底蕴。"
		}
		return "从传统文化角度来看，我们可以从传统智慧中寻找答案。"
	case RoleCompanion:
		return "我会一直陪着你，我们可以聊聊天，也可以一起做点有趣的事。"
	default:
		return "我会尽力为您提供专业的建议和指导。"
	}
}
