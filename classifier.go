package companionsdk

import "strings"

// ──────────────────────────────────────────────
// Emotion Classifier — keyword-driven, deterministic
// ──────────────────────────────────────────────

type emotionKeywords struct {
	emotion  EmotionType
	keywords []string
}

type intensityModifier struct {
	keyword string
	delta   float64
}

const (
	baseIntensity    = 0.5
	minIntensity     = 0.1
	maxIntensity     = 1.0
	exclamationDelta = 0.1
)

// EmotionClassifier maps free text or behavior labels to an emotion.
// Rule-based on purpose: classification stays deterministic so that the
// same input always yields the same event.
type EmotionClassifier struct {
	table     []emotionKeywords
	modifiers []intensityModifier
	behaviors []behaviorRule
}

type behaviorRule struct {
	substring string
	emotion   EmotionType
}

// NewEmotionClassifier creates a classifier with the built-in bilingual
// keyword tables.
func NewEmotionClassifier() *EmotionClassifier {
	return &EmotionClassifier{
		table:     defaultEmotionKeywords(),
		modifiers: defaultIntensityModifiers(),
		behaviors: defaultBehaviorRules(),
	}
}

// The scan order decides which emotion wins when a text matches several
// keyword lists, so the table is an ordered slice, not a map.
func defaultEmotionKeywords() []emotionKeywords {
	return []emotionKeywords{
		{EmotionHappiness, []string{"开心", "高兴", "太好了", "棒", "喜欢", "爱", "快乐", "满意"}},
		{EmotionSadness, []string{"难过", "伤心", "想哭", "不开心", "失落", "沮丧", "失望"}},
		{EmotionAnger, []string{"生气", "讨厌", "烦", "气", "恼火", "不公平", "不要"}},
		{EmotionFear, []string{"害怕", "担心", "紧张", "恐惧", "不安", "焦虑"}},
		{EmotionSurprise, []string{"惊讶", "意外", "哇", "真没想到", "吓一跳"}},
		{EmotionCuriosity, []string{"为什么", "怎么", "想知道", "好奇", "是什么"}},
		{EmotionComfort, []string{"舒服", "安心", "温暖", "放心", "安全"}},
		{EmotionHunger, []string{"饿", "想吃", "食物", "吃饭", "零食"}},
		{EmotionDiscomfort, []string{"不舒服", "难受", "疼", "痛"}},
		{EmotionAttention, []string{"看看我", "快来", "帮帮我", "陪我", "注意我"}},
	}
}

func defaultIntensityModifiers() []intensityModifier {
	return []intensityModifier{
		{"very", 0.3}, {"really", 0.25}, {"so", 0.2},
		{"太", 0.25}, {"很", 0.2}, {"非常", 0.3}, {"特别", 0.25},
		{"有点", -0.1}, {"一些", -0.1}, {"稍微", -0.15},
	}
}

func defaultBehaviorRules() []behaviorRule {
	return []behaviorRule{
		{"长时间停留", EmotionCuriosity},
		{"快速点击", EmotionExcited},
		{"重复操作", EmotionAttention},
		{"放弃操作", EmotionDiscomfort},
		{"寻求帮助", EmotionAttention},
		{"完成任务", EmotionHappiness},
		{"错误操作", EmotionAnger},
	}
}

// Classify maps text to an emotion and an intensity in [0.1, 1.0].
// The first keyword list containing a match wins; no match means neutral.
func (c *EmotionClassifier) Classify(text string) (EmotionType, float64) {
	return c.classifyEmotion(text), c.intensity(text)
}

func (c *EmotionClassifier) classifyEmotion(text string) EmotionType {
	for _, entry := range c.table {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.emotion
			}
		}
	}
	return EmotionNeutral
}

// intensity sums all applicable modifier deltas plus an exclamation boost,
// then clamps once. Order-independent across modifiers.
func (c *EmotionClassifier) intensity(text string) float64 {
	intensity := baseIntensity
	for _, m := range c.modifiers {
		if strings.Contains(text, m.keyword) {
			intensity += m.delta
		}
	}

	exclamations := strings.Count(text, "!") + strings.Count(text, "！")
	intensity += float64(exclamations) * exclamationDelta

	if intensity < minIntensity {
		intensity = minIntensity
	}
	if intensity > maxIntensity {
		intensity = maxIntensity
	}
	return intensity
}

// InferFromBehavior maps a behavior label to an emotion via the static rule
// table. A miss returns ok=false rather than a neutral default, so behavior
// tracking does not spam neutral events.
func (c *EmotionClassifier) InferFromBehavior(action, page string) (EmotionType, bool) {
	_ = page // reserved for page-specific rules
	for _, rule := range c.behaviors {
		if strings.Contains(action, rule.substring) {
			return rule.emotion, true
		}
	}
	return EmotionNeutral, false
}
