// Package adaptation maintains a rolling per-user performance window and
// derives a recommended difficulty tier from it. The thresholds and
// their evaluation order are load-bearing: downstream behavior (and the
// test scenarios) depend on them exactly as written.
package adaptation

import (
	"sync"

	"github.com/quillmind/tutor-api/internal/domain"
)

// Tier is the engine's output difficulty recommendation.
type Tier string

const (
	TierBeginner Tier = "beginner"
	TierEasy     Tier = "easy"
	TierMedium   Tier = "medium"
	TierHard     Tier = "hard"
)

// HistoryCapacity bounds the per-user performance window: the most
// recent entries win, oldest dropped first.
const HistoryCapacity = 10

// trendWindow is the number of most-recent scores compared against the
// rest when the history is long enough to carry a trend.
const trendWindow = 3

// minTrendHistory is the minimum history length before a trend is
// computed at all.
const minTrendHistory = 6

// Engine holds the per-user score histories.
type Engine struct {
	mu      sync.RWMutex
	history map[string][]float64
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{history: make(map[string][]float64)}
}

// RecordOutcome scores one interaction and appends it to the user's
// window. The base score comes from message complexity (simple 1,
// medium 2, complex 3), halved on failure, then scaled by intent class:
// deep work (deep explanations, problem solving) up-weights by 1.2,
// quick clarifications down-weight by 0.8.
func (e *Engine) RecordOutcome(userID string, analysis domain.Analysis, wasSuccessful bool) {
	score := baseScore(analysis.Complexity)
	if !wasSuccessful {
		score *= 0.5
	}
	switch analysis.Intent {
	case domain.IntentDeepExplanation, domain.IntentProblemSolving:
		score *= 1.2
	case domain.IntentQuickClarification:
		score *= 0.8
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	list := append(e.history[userID], score)
	if len(list) > HistoryCapacity {
		list = list[len(list)-HistoryCapacity:]
	}
	e.history[userID] = list
}

// History returns a copy of the user's window, oldest first.
func (e *Engine) History(userID string) []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]float64(nil), e.history[userID]...)
}

// RecommendDifficulty derives the tier from the window. With no history
// the answer is medium. The decision table is evaluated in order, first
// match wins: hard needs both a high mean and a non-negative recent
// trend; a high mean with a falling trend stays medium.
func (e *Engine) RecommendDifficulty(userID string) Tier {
	e.mu.RLock()
	history := e.history[userID]
	e.mu.RUnlock()

	if len(history) == 0 {
		return TierMedium
	}

	m := mean(history)
	trend := 0.0
	if len(history) >= minTrendHistory {
		recent := history[len(history)-trendWindow:]
		prior := history[:len(history)-trendWindow]
		trend = mean(recent) - mean(prior)
	}

	switch {
	case m >= 2.5 && trend >= 0:
		return TierHard
	case m >= 1.8:
		return TierMedium
	case m >= 1.0:
		return TierEasy
	default:
		return TierBeginner
	}
}

func baseScore(c domain.Complexity) float64 {
	switch c {
	case domain.ComplexitySimple:
		return 1
	case domain.ComplexityMedium:
		return 2
	case domain.ComplexityComplex:
		return 3
	default:
		return 2
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
