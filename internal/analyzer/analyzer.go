// Package analyzer implements the Signal Analyzer: rule-based
// classification of a learner message into intent, emotion, complexity,
// and learning-style signals. Classification is total over any string
// input; every dimension has a default when no rule matches.
package analyzer

import (
	"regexp"
	"strings"
	"time"

	"github.com/quillmind/tutor-api/internal/domain"
)

// intentRule binds an intent label to its trigger patterns and a base
// confidence. Rules are evaluated in declaration order; a later rule
// replaces the current best only on strictly greater confidence, so ties
// keep the earlier entry.
type intentRule struct {
	intent     domain.Intent
	patterns   []*regexp.Regexp
	confidence float64
}

// emotionRule binds an emotion to its keyword list. The first rule with
// any substring match wins.
type emotionRule struct {
	emotion  domain.Emotion
	keywords []string
}

// styleRule binds a learning style to its cue words.
type styleRule struct {
	style domain.LearningStyle
	cues  []string
}

var intentRules = []intentRule{
	{
		intent: domain.IntentConfusionSignal,
		patterns: compile(
			`\bconfus(ed|ing)\b`,
			`\bdon'?t (get|understand)\b`,
			`\bi'?m (lost|stuck)\b`,
			`\bmakes no sense\b`,
		),
		confidence: 0.95,
	},
	{
		intent: domain.IntentQuizRequest,
		patterns: compile(
			`\bquiz\b`,
			`\btest\b`,
			`\bquestion\b`,
			`\bchallenge me\b`,
		),
		confidence: 0.9,
	},
	{
		intent: domain.IntentHintRequest,
		patterns: compile(
			`\bhint\b`,
			`\bclue\b`,
			`\bnudge\b`,
		),
		confidence: 0.9,
	},
	{
		intent: domain.IntentProgressCheck,
		patterns: compile(
			`\b(my )?progress\b`,
			`\bhow am i doing\b`,
			`\bmy (stats|score|level)\b`,
		),
		confidence: 0.9,
	},
	{
		intent: domain.IntentValidationSeeking,
		patterns: compile(
			`\bis (this|that|it) (right|correct)\b`,
			`\bam i (right|correct)\b`,
			`\bdid i get\b`,
		),
		confidence: 0.85,
	},
	{
		intent: domain.IntentQuickClarification,
		patterns: compile(
			`\bwhat (is|does|means?)\b`,
			`\bdefine\b`,
			`\bmeaning of\b`,
		),
		confidence: 0.8,
	},
	{
		intent: domain.IntentDeepExplanation,
		patterns: compile(
			`\bexplain\b`,
			`\bhow does\b`,
			`\bwhy (is|do|does|can)\b`,
			`\bin detail\b`,
			`\bwalk me through\b`,
		),
		confidence: 0.8,
	},
	{
		intent: domain.IntentProblemSolving,
		patterns: compile(
			`\bsolve\b`,
			`\bhow do i\b`,
			`\bhelp me (with|figure)\b`,
			`\bwork(ing)? out\b`,
		),
		confidence: 0.75,
	},
	{
		intent: domain.IntentApplicationRequest,
		patterns: compile(
			`\bexample\b`,
			`\breal[ -]world\b`,
			`\bapply\b`,
			`\buse case\b`,
		),
		confidence: 0.7,
	},
	{
		intent: domain.IntentQuestion,
		patterns: compile(
			`\?`,
		),
		confidence: 0.5,
	},
}

var emotionRules = []emotionRule{
	{domain.EmotionFrustrated, []string{"frustrat", "annoying", "hate", "ugh", "angry", "fed up"}},
	{domain.EmotionUncertain, []string{"not sure", "unsure", "maybe", "i guess", "i think?", "probably"}},
	{domain.EmotionConfident, []string{"i know", "easy", "got it", "definitely", "of course"}},
	{domain.EmotionExcited, []string{"excited", "awesome", "cool", "love", "amazing"}},
	{domain.EmotionCurious, []string{"curious", "wonder", "interesting", "what if"}},
}

var styleRules = []styleRule{
	{domain.StyleVisual, []string{"diagram", "picture", "show me", "visual", "chart", "draw"}},
	{domain.StyleAuditory, []string{"tell me", "talk", "hear", "sounds like", "say it"}},
	{domain.StyleKinesthetic, []string{"practice", "try", "hands-on", "exercise", "do it myself"}},
	{domain.StyleReadingWriting, []string{"read", "write", "notes", "list", "summary"}},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Analyzer classifies messages and maintains per-user conversation
// memory as a side effect of analysis.
type Analyzer struct {
	memory *MemoryBank
}

// New creates an Analyzer with an empty memory bank.
func New() *Analyzer {
	return &Analyzer{memory: NewMemoryBank()}
}

// Memory exposes the conversation memory bank.
func (a *Analyzer) Memory() *MemoryBank {
	return a.memory
}

// Analyze classifies the message and appends the result to the user's
// conversation memory. It never fails; defaults apply to empty or
// unmatched input.
func (a *Analyzer) Analyze(userID, message string) domain.Analysis {
	an := Classify(message)
	a.memory.Append(userID, domain.MemoryEntry{
		Message:   message,
		Analysis:  an,
		Timestamp: time.Now().UTC(),
	})
	return an
}

// Classify runs the rule tables over a single message without touching
// memory. Exposed for callers that need a pure classification.
func Classify(message string) domain.Analysis {
	normalized := strings.ToLower(strings.TrimSpace(message))
	intent := classifyIntent(normalized)
	return domain.Analysis{
		Intent:        intent.intent,
		Confidence:    intent.confidence,
		Emotion:       classifyEmotion(normalized),
		Complexity:    classifyComplexity(normalized),
		LearningStyle: classifyStyle(normalized),
		SubTopics:     extractSubTopics(normalized),
	}
}

type intentResult struct {
	intent     domain.Intent
	confidence float64
}

// classifyIntent walks the ordered intent table, keeping the
// highest-confidence matching rule. The default is general with
// confidence 0.
func classifyIntent(normalized string) intentResult {
	best := intentResult{intent: domain.IntentGeneral, confidence: 0}
	for _, rule := range intentRules {
		for _, p := range rule.patterns {
			if p.MatchString(normalized) {
				if rule.confidence > best.confidence {
					best = intentResult{intent: rule.intent, confidence: rule.confidence}
				}
				break
			}
		}
	}
	return best
}

func classifyEmotion(normalized string) domain.Emotion {
	for _, rule := range emotionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.emotion
			}
		}
	}
	return domain.EmotionNeutral
}

// classifyComplexity applies the fixed rule order: simple requires a
// short message with no question mark, so a short question falls through
// to medium. That asymmetry is intentional and observable behavior.
func classifyComplexity(normalized string) domain.Complexity {
	if len(normalized) < 20 && !strings.Contains(normalized, "?") {
		return domain.ComplexitySimple
	}
	if len(normalized) < 100 && len(strings.Fields(normalized)) < 15 {
		return domain.ComplexityMedium
	}
	return domain.ComplexityComplex
}

// classifyStyle collects every style with a cue match and returns the
// first collected in table order, or mixed when none matched.
func classifyStyle(normalized string) domain.LearningStyle {
	var collected []domain.LearningStyle
	for _, rule := range styleRules {
		for _, cue := range rule.cues {
			if strings.Contains(normalized, cue) {
				collected = append(collected, rule.style)
				break
			}
		}
	}
	if len(collected) == 0 {
		return domain.StyleMixed
	}
	return collected[0]
}

// subTopicMarkers are phrases that introduce a concrete sub-topic in a
// message ("about fractions", "regarding photosynthesis").
var subTopicMarkers = []string{"about ", "regarding ", "on the topic of "}

func extractSubTopics(normalized string) []string {
	var topics []string
	for _, marker := range subTopicMarkers {
		idx := strings.Index(normalized, marker)
		if idx < 0 {
			continue
		}
		rest := normalized[idx+len(marker):]
		fields := strings.FieldsFunc(rest, func(r rune) bool {
			return r == '.' || r == ',' || r == '?' || r == '!'
		})
		if len(fields) == 0 {
			continue
		}
		topic := strings.TrimSpace(fields[0])
		if topic != "" && !containsTopic(topics, topic) {
			topics = append(topics, topic)
		}
	}
	return topics
}

func containsTopic(topics []string, t string) bool {
	for _, v := range topics {
		if v == t {
			return true
		}
	}
	return false
}
