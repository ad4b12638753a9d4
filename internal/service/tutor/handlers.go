package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/generation"
	"github.com/quillmind/tutor-api/internal/knowledge"
	"github.com/quillmind/tutor-api/internal/personalize"
	"github.com/quillmind/tutor-api/internal/respcache"
)

// respond routes an analyzed message to its intent handler, wrapping
// the generation call with the response cache. Returns the answer text
// and whether it came from the cache.
func (s *Service) respond(ctx context.Context, sess *session, analysis domain.Analysis, cfg personalize.Config, tier adaptation.Tier, text string) (string, bool) {
	key := respcache.Key(sess.subject, analysis.Intent, analysis.Complexity, text)
	if respcache.ReadEligible(analysis.Intent, analysis.Complexity) {
		if cached, ok := s.cache.Get(key); ok {
			return cached, true
		}
	}

	var answer string
	switch analysis.Intent {
	case domain.IntentQuizRequest:
		answer = s.quizResponse(ctx, sess, cfg, text)
	case domain.IntentProgressCheck:
		answer = s.progressReport(sess)
	case domain.IntentConfusionSignal:
		answer = s.generate(ctx, confusionPrompt(sess.subject, cfg, text), analysis)
	case domain.IntentHintRequest:
		answer = s.generate(ctx, hintPrompt(sess.subject, cfg, text), analysis)
	case domain.IntentGeneral:
		answer = s.generate(ctx, generalPrompt(sess.subject, cfg, text), analysis)
	default:
		// question, quick_clarification, deep_explanation,
		// problem_solving, validation_seeking, application_request
		answer = s.generate(ctx, answerPrompt(sess.subject, cfg, tier, text), analysis)
	}

	if answer != generation.ApologyText && respcache.StoreEligible(analysis.Intent, answer) {
		s.cache.Put(key, answer)
	}
	return answer, false
}

// generate calls the external generator, substituting the fixed apology
// text when it fails. The failure is logged with the classification for
// diagnosis.
func (s *Service) generate(ctx context.Context, prompt string, analysis domain.Analysis) string {
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("generation failed",
			slog.String("error", err.Error()),
			slog.String("intent", string(analysis.Intent)),
			slog.String("complexity", string(analysis.Complexity)))
		return generation.ApologyText
	}
	return answer
}

// quizResponse serves a quiz item for the learner's next recommended
// concept. When the catalog has no item for it, the quiz is generated.
func (s *Service) quizResponse(ctx context.Context, sess *session, cfg personalize.Config, text string) string {
	snapshot := s.profiles.Snapshot(sess.userID)
	node, ok := s.graph.RecommendNext(sess.subject, snapshot.CompletedSet(), snapshot.ConceptMastery)
	if !ok {
		return s.generate(ctx, quizPrompt(sess.subject, cfg, text), domain.Analysis{Intent: domain.IntentQuizRequest})
	}

	items := s.graph.QuizItems(node.ID)
	if len(items) == 0 {
		return s.generate(ctx, quizPrompt(node.Name, cfg, text), domain.Analysis{Intent: domain.IntentQuizRequest})
	}
	return formatQuizItem(node, items[0])
}

// progressReport summarizes the profile. It is built locally: progress
// data is exact and needs no generation call.
func (s *Service) progressReport(sess *session) string {
	p := s.profiles.Snapshot(sess.userID)

	var b strings.Builder
	fmt.Fprintf(&b, "Here's where you stand: level %d (%s) with %d XP", p.Level(), p.LevelTitle(), p.XP)
	if p.Streak > 1 {
		fmt.Fprintf(&b, " and a %d-day streak", p.Streak)
	}
	b.WriteString(".")
	if mastery, ok := p.SubjectMastery[sess.subject]; ok {
		fmt.Fprintf(&b, " Your %s mastery is at %.0f%%.", sess.subject, mastery*100)
	}
	if n := len(p.CompletedConcepts); n > 0 {
		fmt.Fprintf(&b, " You've completed %d concept(s).", n)
	}
	if n := len(p.StrugglingConcepts); n > 0 {
		fmt.Fprintf(&b, " %d concept(s) could use another pass: %s.", n, strings.Join(p.StrugglingConcepts, ", "))
	}
	if n := len(p.Badges); n > 0 {
		fmt.Fprintf(&b, " Badges earned: %d.", n)
	}
	return b.String()
}

// formatQuizItem renders a catalog quiz item with lettered options.
func formatQuizItem(node knowledge.Node, item knowledge.QuizItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiz time! (%s)\n%s\n", node.Name, item.Prompt)
	for i, option := range item.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, option)
	}
	b.WriteString("Reply with the letter of your answer.")
	return b.String()
}

// quizFeedback grades feedback text for a quiz answer, using the
// catalog explanation when the concept is known.
func quizFeedback(g *knowledge.Graph, conceptID string, correctIndex int, correct bool) string {
	var explanation string
	if items := g.QuizItems(conceptID); len(items) > 0 {
		explanation = items[0].Explanation
	}
	if correct {
		if explanation != "" {
			return fmt.Sprintf("Correct! %s", explanation)
		}
		return "Correct! Nice work."
	}
	answer := fmt.Sprintf("%c", 'A'+correctIndex)
	if explanation != "" {
		return fmt.Sprintf("Not quite — the answer was %s. %s", answer, explanation)
	}
	return fmt.Sprintf("Not quite — the answer was %s. Let's review this concept together.", answer)
}

// Prompt construction. The personalization config drives the shape of
// every generated response.

func answerPrompt(subject string, cfg personalize.Config, tier adaptation.Tier, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s tutor for a learner at the %s level.\n", subject, tier)
	writeStyleDirectives(&b, cfg)
	fmt.Fprintf(&b, "Answer the learner's message: %s", text)
	return b.String()
}

func confusionPrompt(subject string, cfg personalize.Config, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a patient %s tutor. The learner is confused.\n", subject)
	writeStyleDirectives(&b, cfg)
	b.WriteString("Re-explain the idea from the beginning, in smaller steps, without assuming prior context.\n")
	fmt.Fprintf(&b, "Their message: %s", text)
	return b.String()
}

func hintPrompt(subject string, cfg personalize.Config, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s tutor. Give a single hint that nudges the learner forward without revealing the answer.\n", subject)
	writeStyleDirectives(&b, cfg)
	fmt.Fprintf(&b, "Their message: %s", text)
	return b.String()
}

func quizPrompt(topic string, cfg personalize.Config, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a tutor. Write one multiple-choice question about %s with four lettered options and indicate nothing about the answer.\n", topic)
	writeStyleDirectives(&b, cfg)
	fmt.Fprintf(&b, "The learner asked: %s", text)
	return b.String()
}

func generalPrompt(subject string, cfg personalize.Config, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly %s tutor.\n", subject)
	writeStyleDirectives(&b, cfg)
	fmt.Fprintf(&b, "Respond helpfully to: %s", text)
	return b.String()
}

func writeStyleDirectives(b *strings.Builder, cfg personalize.Config) {
	fmt.Fprintf(b, "Tone: %s. Structure: %s. Keep the response %s.\n", cfg.Tone, cfg.Structure, cfg.Complexity)
	if cfg.IncludeExamples {
		b.WriteString("Include a concrete example.\n")
	}
	if cfg.Encouragement == personalize.EncouragementHigh {
		b.WriteString("Be actively encouraging.\n")
	}
}
