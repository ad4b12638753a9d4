package domain

import "time"

// Intent is a closed-set label describing what kind of help a message is
// requesting. The set is fixed; handlers dispatch on it exhaustively.
type Intent string

const (
	IntentGeneral            Intent = "general"
	IntentQuestion           Intent = "question"
	IntentQuickClarification Intent = "quick_clarification"
	IntentDeepExplanation    Intent = "deep_explanation"
	IntentProblemSolving     Intent = "problem_solving"
	IntentConfusionSignal    Intent = "confusion_signal"
	IntentQuizRequest        Intent = "quiz_request"
	IntentHintRequest        Intent = "hint_request"
	IntentProgressCheck      Intent = "progress_check"
	IntentValidationSeeking  Intent = "validation_seeking"
	IntentApplicationRequest Intent = "application_request"
)

// Emotion is the dominant emotional signal detected in a message.
type Emotion string

const (
	EmotionNeutral    Emotion = "neutral"
	EmotionFrustrated Emotion = "frustrated"
	EmotionUncertain  Emotion = "uncertain"
	EmotionConfident  Emotion = "confident"
	EmotionCurious    Emotion = "curious"
	EmotionExcited    Emotion = "excited"
)

// Complexity classifies how involved a message is.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// LearningStyle is the preferred modality inferred from cue words.
type LearningStyle string

const (
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleKinesthetic    LearningStyle = "kinesthetic"
	StyleReadingWriting LearningStyle = "reading_writing"
	StyleMixed          LearningStyle = "mixed"
)

// Analysis is the Signal Analyzer's classification of a single message.
// It is produced fresh per message and never persisted verbatim; only the
// conversation memory keeps a bounded trail of past analyses.
type Analysis struct {
	Intent        Intent        `json:"intent"`
	Confidence    float64       `json:"confidence"`
	Emotion       Emotion       `json:"emotion"`
	Complexity    Complexity    `json:"complexity"`
	LearningStyle LearningStyle `json:"learning_style"`
	SubTopics     []string      `json:"sub_topics,omitempty"`
}

// MemoryEntry is one element of a user's bounded conversation memory.
type MemoryEntry struct {
	Message   string    `json:"message"`
	Analysis  Analysis  `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
}
