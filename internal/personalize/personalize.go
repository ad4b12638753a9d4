// Package personalize combines the message analysis, the learner's
// conversation memory, and the difficulty recommendation into a response
// configuration: tone, structure, complexity, examples, encouragement.
// All mappings are fixed tables; the difficulty tier override is applied
// last and wins.
package personalize

import (
	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/domain"
)

// Tone is the voice the generated response should take.
type Tone string

const (
	ToneFriendly     Tone = "friendly"
	ToneReassuring   Tone = "reassuring"
	ToneEncouraging  Tone = "encouraging"
	ToneDirect       Tone = "direct"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneEnergetic    Tone = "energetic"
)

// Encouragement is how much explicit encouragement to weave in.
type Encouragement string

const (
	EncouragementLow    Encouragement = "low"
	EncouragementMedium Encouragement = "medium"
	EncouragementHigh   Encouragement = "high"
)

// Structure tags the overall shape of the response.
type Structure string

const (
	StructureBalanced    Structure = "balanced"
	StructureConcise     Structure = "concise"
	StructureDetailed    Structure = "detailed"
	StructureStepByStep  Structure = "step_by_step"
	StructureInteractive Structure = "interactive"
	StructureSimplified  Structure = "simplified"
)

// Config is the response configuration handed to prompt construction.
type Config struct {
	Tone            Tone              `json:"tone"`
	Complexity      domain.Complexity `json:"complexity"`
	IncludeExamples bool              `json:"include_examples"`
	Encouragement   Encouragement     `json:"encouragement"`
	Structure       Structure         `json:"structure"`
}

// preferenceWindow is how many recent memory entries vote on the
// learner's complexity preference.
const preferenceWindow = 5

var toneByEmotion = map[domain.Emotion]Tone{
	domain.EmotionFrustrated: ToneReassuring,
	domain.EmotionUncertain:  ToneEncouraging,
	domain.EmotionConfident:  ToneDirect,
	domain.EmotionCurious:    ToneEnthusiastic,
	domain.EmotionExcited:    ToneEnergetic,
	domain.EmotionNeutral:    ToneFriendly,
}

var structureByIntent = map[domain.Intent]Structure{
	domain.IntentDeepExplanation:    StructureDetailed,
	domain.IntentQuickClarification: StructureConcise,
	domain.IntentProblemSolving:     StructureStepByStep,
	domain.IntentQuizRequest:        StructureInteractive,
	domain.IntentConfusionSignal:    StructureSimplified,
}

// Build produces the response configuration for one message.
//
// The base configuration derives from the analysis and the learner's
// recent memory; the difficulty tier then overrides complexity, examples,
// encouragement and structure per a fixed table: beginner simplifies
// everything, hard goes detailed without examples, easy keeps it simple
// with examples, medium changes nothing.
func Build(analysis domain.Analysis, memory []domain.MemoryEntry, tier adaptation.Tier) Config {
	tone, ok := toneByEmotion[analysis.Emotion]
	if !ok {
		tone = ToneFriendly
	}

	structure, ok := structureByIntent[analysis.Intent]
	if !ok {
		structure = StructureBalanced
	}

	cfg := Config{
		Tone:            tone,
		Complexity:      preferredComplexity(memory, analysis.Complexity),
		IncludeExamples: wantsExamples(analysis),
		Encouragement:   encouragementFor(analysis.Emotion),
		Structure:       structure,
	}

	switch tier {
	case adaptation.TierBeginner:
		cfg.Complexity = domain.ComplexitySimple
		cfg.IncludeExamples = true
		cfg.Encouragement = EncouragementHigh
		cfg.Structure = StructureSimplified
	case adaptation.TierHard:
		cfg.Complexity = domain.ComplexityComplex
		cfg.IncludeExamples = false
		cfg.Structure = StructureDetailed
	case adaptation.TierEasy:
		cfg.Complexity = domain.ComplexitySimple
		cfg.IncludeExamples = true
	case adaptation.TierMedium:
		// Unchanged.
	}

	return cfg
}

// preferredComplexity is the most frequent complexity label among the
// last preferenceWindow memory entries, ties broken by first-seen. With
// no memory the current message's complexity stands.
func preferredComplexity(memory []domain.MemoryEntry, fallback domain.Complexity) domain.Complexity {
	if len(memory) == 0 {
		return fallback
	}
	if len(memory) > preferenceWindow {
		memory = memory[len(memory)-preferenceWindow:]
	}

	counts := make(map[domain.Complexity]int)
	var firstSeen []domain.Complexity
	for _, entry := range memory {
		c := entry.Analysis.Complexity
		if counts[c] == 0 {
			firstSeen = append(firstSeen, c)
		}
		counts[c]++
	}

	best := firstSeen[0]
	for _, c := range firstSeen[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func wantsExamples(analysis domain.Analysis) bool {
	if analysis.LearningStyle == domain.StyleVisual || analysis.LearningStyle == domain.StyleKinesthetic {
		return true
	}
	return analysis.Intent == domain.IntentApplicationRequest
}

func encouragementFor(emotion domain.Emotion) Encouragement {
	switch emotion {
	case domain.EmotionFrustrated:
		return EncouragementHigh
	case domain.EmotionUncertain:
		return EncouragementMedium
	case domain.EmotionConfident:
		return EncouragementLow
	default:
		return EncouragementMedium
	}
}
