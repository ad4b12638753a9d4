package personalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/domain"
)

func mem(complexities ...domain.Complexity) []domain.MemoryEntry {
	out := make([]domain.MemoryEntry, len(complexities))
	for i, c := range complexities {
		out[i] = domain.MemoryEntry{Analysis: domain.Analysis{Complexity: c}}
	}
	return out
}

func TestBuildToneMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		emotion domain.Emotion
		want    Tone
	}{
		{domain.EmotionFrustrated, ToneReassuring},
		{domain.EmotionUncertain, ToneEncouraging},
		{domain.EmotionConfident, ToneDirect},
		{domain.EmotionCurious, ToneEnthusiastic},
		{domain.EmotionExcited, ToneEnergetic},
		{domain.EmotionNeutral, ToneFriendly},
	}
	for _, tt := range tests {
		cfg := Build(domain.Analysis{Emotion: tt.emotion}, nil, adaptation.TierMedium)
		assert.Equal(t, tt.want, cfg.Tone, "emotion %s", tt.emotion)
	}
}

func TestBuildEncouragement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, EncouragementHigh,
		Build(domain.Analysis{Emotion: domain.EmotionFrustrated}, nil, adaptation.TierMedium).Encouragement)
	assert.Equal(t, EncouragementMedium,
		Build(domain.Analysis{Emotion: domain.EmotionUncertain}, nil, adaptation.TierMedium).Encouragement)
	assert.Equal(t, EncouragementLow,
		Build(domain.Analysis{Emotion: domain.EmotionConfident}, nil, adaptation.TierMedium).Encouragement)
	assert.Equal(t, EncouragementMedium,
		Build(domain.Analysis{Emotion: domain.EmotionNeutral}, nil, adaptation.TierMedium).Encouragement)
}

func TestBuildStructureByIntent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		intent domain.Intent
		want   Structure
	}{
		{domain.IntentDeepExplanation, StructureDetailed},
		{domain.IntentQuickClarification, StructureConcise},
		{domain.IntentProblemSolving, StructureStepByStep},
		{domain.IntentQuizRequest, StructureInteractive},
		{domain.IntentConfusionSignal, StructureSimplified},
		{domain.IntentGeneral, StructureBalanced},
	}
	for _, tt := range tests {
		cfg := Build(domain.Analysis{Intent: tt.intent}, nil, adaptation.TierMedium)
		assert.Equal(t, tt.want, cfg.Structure, "intent %s", tt.intent)
	}
}

func TestBuildExamples(t *testing.T) {
	t.Parallel()

	assert.True(t, Build(domain.Analysis{LearningStyle: domain.StyleVisual}, nil, adaptation.TierMedium).IncludeExamples)
	assert.True(t, Build(domain.Analysis{LearningStyle: domain.StyleKinesthetic}, nil, adaptation.TierMedium).IncludeExamples)
	assert.True(t, Build(domain.Analysis{Intent: domain.IntentApplicationRequest, LearningStyle: domain.StyleMixed}, nil, adaptation.TierMedium).IncludeExamples)
	assert.False(t, Build(domain.Analysis{LearningStyle: domain.StyleAuditory}, nil, adaptation.TierMedium).IncludeExamples)
}

func TestPreferredComplexityFromMemory(t *testing.T) {
	t.Parallel()

	// Most frequent among the last five wins.
	memory := mem(
		domain.ComplexitySimple,
		domain.ComplexityMedium,
		domain.ComplexityMedium,
		domain.ComplexitySimple,
		domain.ComplexityMedium,
	)
	cfg := Build(domain.Analysis{Complexity: domain.ComplexityComplex}, memory, adaptation.TierMedium)
	assert.Equal(t, domain.ComplexityMedium, cfg.Complexity)

	// Ties break first-seen.
	memory = mem(domain.ComplexitySimple, domain.ComplexityMedium)
	cfg = Build(domain.Analysis{Complexity: domain.ComplexityComplex}, memory, adaptation.TierMedium)
	assert.Equal(t, domain.ComplexitySimple, cfg.Complexity)

	// Only the last five entries vote.
	memory = mem(
		domain.ComplexityComplex, domain.ComplexityComplex, domain.ComplexityComplex,
		domain.ComplexitySimple, domain.ComplexitySimple, domain.ComplexitySimple,
		domain.ComplexityMedium, domain.ComplexityMedium,
	)
	cfg = Build(domain.Analysis{Complexity: domain.ComplexityComplex}, memory, adaptation.TierMedium)
	assert.Equal(t, domain.ComplexitySimple, cfg.Complexity)

	// Empty memory falls back to the message's own complexity.
	cfg = Build(domain.Analysis{Complexity: domain.ComplexityComplex}, nil, adaptation.TierMedium)
	assert.Equal(t, domain.ComplexityComplex, cfg.Complexity)
}

func TestTierOverrides(t *testing.T) {
	t.Parallel()

	base := domain.Analysis{
		Intent:        domain.IntentDeepExplanation,
		Emotion:       domain.EmotionConfident,
		Complexity:    domain.ComplexityMedium,
		LearningStyle: domain.StyleVisual,
	}

	t.Run("beginner", func(t *testing.T) {
		t.Parallel()
		cfg := Build(base, nil, adaptation.TierBeginner)
		assert.Equal(t, domain.ComplexitySimple, cfg.Complexity)
		assert.True(t, cfg.IncludeExamples)
		assert.Equal(t, EncouragementHigh, cfg.Encouragement)
		assert.Equal(t, StructureSimplified, cfg.Structure)
	})

	t.Run("hard", func(t *testing.T) {
		t.Parallel()
		cfg := Build(base, nil, adaptation.TierHard)
		assert.Equal(t, domain.ComplexityComplex, cfg.Complexity)
		assert.False(t, cfg.IncludeExamples)
		assert.Equal(t, StructureDetailed, cfg.Structure)
		// Encouragement untouched by the hard override.
		assert.Equal(t, EncouragementLow, cfg.Encouragement)
	})

	t.Run("easy", func(t *testing.T) {
		t.Parallel()
		cfg := Build(base, nil, adaptation.TierEasy)
		assert.Equal(t, domain.ComplexitySimple, cfg.Complexity)
		assert.True(t, cfg.IncludeExamples)
		// Structure keeps the intent-derived value.
		assert.Equal(t, StructureDetailed, cfg.Structure)
	})

	t.Run("medium leaves base untouched", func(t *testing.T) {
		t.Parallel()
		cfg := Build(base, nil, adaptation.TierMedium)
		assert.Equal(t, domain.ComplexityMedium, cfg.Complexity)
		assert.True(t, cfg.IncludeExamples)
		assert.Equal(t, StructureDetailed, cfg.Structure)
		assert.Equal(t, ToneDirect, cfg.Tone)
	})
}
