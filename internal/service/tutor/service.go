// Package tutor is the top-level tutoring orchestrator. It routes each
// learner message through signal analysis, personalization and response
// generation, keeps the per-session state machine, applies XP, mastery
// and badge updates, and emits fire-and-forget persistence events.
// In-memory state is authoritative; persistence failures never affect a
// reply.
package tutor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/analyzer"
	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/events"
	"github.com/quillmind/tutor-api/internal/generation"
	"github.com/quillmind/tutor-api/internal/knowledge"
	"github.com/quillmind/tutor-api/internal/personalize"
	"github.com/quillmind/tutor-api/internal/profile"
	"github.com/quillmind/tutor-api/internal/respcache"
	"github.com/quillmind/tutor-api/internal/sessionctx"
	"github.com/quillmind/tutor-api/internal/store"
)

// XP and mastery awards per interaction. Subject-level mastery moves
// more slowly than per-concept mastery.
const (
	xpPerMessage     = 5
	xpQuizCorrect    = 10
	xpQuizAttempted  = 2
	masteryOnCorrect = 0.2
	masteryOnWrong   = -0.05

	subjectMasteryOnCorrect  = 0.05
	subjectMasteryOnWrong    = -0.01
	subjectMasteryPerMessage = 0.01
)

// perfectQuizMinAnswers is how many answers a session needs, all of
// them correct, before the perfect-quiz badge fact fires.
const perfectQuizMinAnswers = 3

// sessionState is the lifecycle of one tutoring session.
type sessionState int

const (
	stateCreated sessionState = iota
	stateActive
)

// session is the orchestrator's in-memory record of a live session.
// The session context (topics, progress) lives in the sessionctx
// manager; this tracks lifecycle and per-session counters.
type session struct {
	id           uuid.UUID
	userID       string
	subject      string
	state        sessionState
	startedAt    time.Time
	firstSession bool
	startMastery float64
	messages     int
	quizAnswered int
	quizCorrect  int
}

// Service is the tutoring orchestrator.
type Service struct {
	logger    *slog.Logger
	analyzer  *analyzer.Analyzer
	graph     *knowledge.Graph
	profiles  *profile.Store
	contexts  *sessionctx.Manager
	adapter   *adaptation.Engine
	cache     *respcache.Cache
	generator generation.Generator
	emitter   events.EventEmitter
	history   store.SessionStore

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewService wires the orchestrator. The session store is used only to
// detect a user's first ever session; persistence writes go through the
// emitter.
func NewService(
	logger *slog.Logger,
	an *analyzer.Analyzer,
	graph *knowledge.Graph,
	profiles *profile.Store,
	contexts *sessionctx.Manager,
	adapter *adaptation.Engine,
	cache *respcache.Cache,
	generator generation.Generator,
	emitter events.EventEmitter,
	history store.SessionStore,
) *Service {
	return &Service{
		logger:    logger.With(slog.String("component", "tutor_service")),
		analyzer:  an,
		graph:     graph,
		profiles:  profiles,
		contexts:  contexts,
		adapter:   adapter,
		cache:     cache,
		generator: generator,
		emitter:   emitter,
		history:   history,
		sessions:  make(map[uuid.UUID]*session),
	}
}

// StartSession creates a tutoring session for the user and returns its
// ID. An empty difficulty defaults to medium.
func (s *Service) StartSession(ctx context.Context, userID, subject, difficulty string) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, ErrUserIDEmpty
	}
	if subject == "" {
		return uuid.Nil, ErrSubjectEmpty
	}
	if difficulty == "" {
		difficulty = string(adaptation.TierMedium)
	}

	snapshot := s.profiles.Snapshot(userID)

	first := !snapshot.HasBadge(domain.BadgeFirstSession)
	if first && s.history != nil {
		recent, err := s.history.ListRecentByUser(ctx, userID, 1)
		if err != nil {
			// Best-effort: the profile alone decides when the lookup fails.
			s.logger.Warn("recent session lookup failed",
				"user_id", userID, "error", err)
		} else if len(recent) > 0 {
			first = false
		}
	}

	sess := &session{
		id:           uuid.New(),
		userID:       userID,
		subject:      subject,
		state:        stateCreated,
		startedAt:    time.Now().UTC(),
		firstSession: first,
		startMastery: snapshot.SubjectMastery[subject],
	}
	s.contexts.Create(sess.id, subject, difficulty)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("session started",
		"session_id", sess.id,
		"user_id", userID,
		"subject", subject,
		"difficulty", difficulty)
	return sess.id, nil
}

// SendMessage processes one learner message and returns the tutor's
// reply. Unknown or ended sessions return ErrSessionNotFound.
func (s *Service) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*domain.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMessageEmpty
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(sess.userID, text)
	tier := s.adapter.RecommendDifficulty(sess.userID)
	memory := s.analyzer.Memory().Recent(sess.userID, 5)
	cfg := personalize.Build(analysis, memory, tier)

	answer, fromCache := s.respond(ctx, sess, analysis, cfg, tier, text)

	s.applyMessageEffects(sessionID, sess, analysis, tier)

	xp, badges := s.awardMessageXP(sess, analysis)

	reply := &domain.Reply{
		SessionID:  sessionID,
		Text:       answer,
		Intent:     analysis.Intent,
		Emotion:    analysis.Emotion,
		Complexity: analysis.Complexity,
		FromCache:  fromCache,
		XPAwarded:  xp,
		NewBadges:  badges,
		CreatedAt:  time.Now().UTC(),
	}

	s.persistExchange(ctx, sess, text, analysis, reply)
	return reply, nil
}

// SubmitQuizAnswer grades a quiz answer for a concept and returns a
// feedback reply. The answer letter indexes the option list (A = 0).
func (s *Service) SubmitQuizAnswer(ctx context.Context, sessionID uuid.UUID, conceptID, answerLetter string, correctIndex int) (*domain.Reply, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	answerIndex, err := parseAnswerLetter(answerLetter)
	if err != nil {
		return nil, err
	}
	correct := answerIndex == correctIndex

	s.mu.Lock()
	sess.quizAnswered++
	if correct {
		sess.quizCorrect++
	}
	perfect := correct &&
		sess.quizAnswered >= perfectQuizMinAnswers &&
		sess.quizCorrect == sess.quizAnswered
	s.mu.Unlock()

	xp := xpQuizAttempted
	masteryDelta := masteryOnWrong
	subjectDelta := subjectMasteryOnWrong
	if correct {
		xp = xpQuizCorrect
		masteryDelta = masteryOnCorrect
		subjectDelta = subjectMasteryOnCorrect
	}

	// The concept's own subject wins over the session subject when the
	// quiz crosses subjects.
	subject := sess.subject
	if node, ok := s.graph.Node(conceptID); ok {
		subject = node.Subject
	}

	var badges []string
	now := time.Now().UTC()
	s.profiles.With(sess.userID, func(p *domain.LearningProfile) {
		p.TouchActivity(now)
		p.AddXP(xp)
		p.AdjustConceptMastery(conceptID, masteryDelta)
		p.AdjustSubjectMastery(subject, subjectDelta)
		badges = profile.EvaluateBadges(p, profile.BadgeFacts{
			FirstSession: sess.firstSession,
			PerfectQuiz:  perfect,
		})
	})

	// Quiz outcomes feed the difficulty window with the concept's
	// difficulty standing in for message complexity.
	quizAnalysis := domain.Analysis{
		Intent:     domain.IntentQuizRequest,
		Complexity: complexityForConcept(s.graph, conceptID),
	}
	s.adapter.RecordOutcome(sess.userID, quizAnalysis, correct)

	progressDelta := 1.0
	if correct {
		progressDelta = 5.0
	}
	if err := s.contexts.Apply(sessionID, sessionctx.Update{
		NewConcept:    conceptID,
		ProgressDelta: progressDelta,
	}); err != nil {
		s.logger.Warn("session context update failed",
			"session_id", sessionID, "error", err)
	}

	s.markActive(sess)

	reply := &domain.Reply{
		SessionID:  sessionID,
		Text:       quizFeedback(s.graph, conceptID, correctIndex, correct),
		Intent:     domain.IntentQuizRequest,
		Emotion:    domain.EmotionNeutral,
		Complexity: quizAnalysis.Complexity,
		XPAwarded:  xp,
		NewBadges:  badges,
		CreatedAt:  time.Now().UTC(),
	}

	s.emitProfile(ctx, sess.userID)
	return reply, nil
}

// EndSession ends the session, computes its summary and discards the
// session context. A second end call for the same ID returns
// ErrSessionNotFound.
func (s *Service) EndSession(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error) {
	// Counters are captured while the session is removed from the map,
	// so a message still in flight cannot skew the summary.
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	var messages int
	if ok {
		delete(s.sessions, sessionID)
		messages = sess.messages
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	sctx, err := s.contexts.Get(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	complexityScore, _ := s.contexts.ComplexityScore(sessionID)
	s.contexts.Discard(sessionID)

	now := time.Now().UTC()
	snapshot := s.profiles.Snapshot(sess.userID)
	active := activeWindow(sess.startedAt, s.analyzer.Memory().LastInteraction(sess.userID), now)

	summary := &domain.SessionSummary{
		SessionID:       sessionID,
		UserID:          sess.userID,
		Subject:         sess.subject,
		StartedAt:       sess.startedAt,
		EndedAt:         now,
		Duration:        now.Sub(sess.startedAt),
		MessageCount:    messages,
		Topics:          sctx.Topics,
		Concepts:        sctx.Concepts,
		MasteryGain:     snapshot.SubjectMastery[sess.subject] - sess.startMastery,
		EngagementScore: engagementScore(messages, len(sctx.Topics), active),
		ComplexityScore: complexityScore,
	}

	s.emit(ctx, events.PersistSession, summary)
	s.emitProfile(ctx, sess.userID)

	s.logger.Info("session ended",
		"session_id", sessionID,
		"user_id", sess.userID,
		"message_count", messages,
		"engagement_score", summary.EngagementScore)
	return summary, nil
}

// GetRecommendedDifficulty returns the difficulty tier derived from the
// user's rolling performance window.
func (s *Service) GetRecommendedDifficulty(userID string) adaptation.Tier {
	return s.adapter.RecommendDifficulty(userID)
}

// GetNextConcept recommends the next concept for the user in a subject.
// The second return is false when no concept qualifies.
func (s *Service) GetNextConcept(userID, subject string) (knowledge.Node, bool) {
	snapshot := s.profiles.Snapshot(userID)
	return s.graph.RecommendNext(subject, snapshot.CompletedSet(), snapshot.ConceptMastery)
}

// lookup resolves a live session by ID.
func (s *Service) lookup(sessionID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// markActive moves created sessions to active on first interaction.
func (s *Service) markActive(sess *session) {
	s.mu.Lock()
	if sess.state == stateCreated {
		sess.state = stateActive
	}
	s.mu.Unlock()
}

// applyMessageEffects folds one analyzed message into the session
// context and the difficulty window.
func (s *Service) applyMessageEffects(sessionID uuid.UUID, sess *session, analysis domain.Analysis, tier adaptation.Tier) {
	update := sessionctx.Update{ProgressDelta: 2}

	sctx, err := s.contexts.Get(sessionID)
	if err == nil && sctx.Difficulty != string(tier) {
		update.DifficultyChange = string(tier)
		update.AdaptiveAdjustment = true
	}
	if err := s.contexts.Apply(sessionID, update); err != nil {
		s.logger.Warn("session context update failed",
			"session_id", sessionID, "error", err)
	}
	for _, topic := range analysis.SubTopics {
		if err := s.contexts.Apply(sessionID, sessionctx.Update{NewTopic: topic}); err != nil {
			break
		}
	}

	// A confusion signal counts as an unsuccessful interaction.
	s.adapter.RecordOutcome(sess.userID, analysis, analysis.Intent != domain.IntentConfusionSignal)

	s.mu.Lock()
	sess.messages += 2 // learner message plus tutor reply
	s.mu.Unlock()
	s.markActive(sess)
}

// awardMessageXP applies the per-message profile updates and runs the
// badge pass. Returns the XP awarded and the newly unlocked badges.
func (s *Service) awardMessageXP(sess *session, analysis domain.Analysis) (int, []string) {
	var badges []string
	now := time.Now().UTC()
	s.profiles.With(sess.userID, func(p *domain.LearningProfile) {
		p.TouchActivity(now)
		p.AddXP(xpPerMessage)
		// Any productive exchange nudges subject mastery a little;
		// confusion signals do not.
		if analysis.Intent != domain.IntentConfusionSignal {
			p.AdjustSubjectMastery(sess.subject, subjectMasteryPerMessage)
		}
		if style := analysis.LearningStyle; style != domain.StyleMixed {
			p.Preferences["learning_style"] = string(style)
		}
		badges = profile.EvaluateBadges(p, profile.BadgeFacts{
			FirstSession: sess.firstSession,
		})
	})
	return xpPerMessage, badges
}

// persistExchange emits best-effort persistence for both sides of the
// exchange plus the updated profile. Never blocks the reply.
func (s *Service) persistExchange(ctx context.Context, sess *session, text string, analysis domain.Analysis, reply *domain.Reply) {
	if learner, err := domain.NewMessage(sess.id, sess.userID, domain.RoleLearner, text, analysis.Intent); err == nil {
		s.emit(ctx, events.PersistMessage, learner)
	}
	if tutor, err := domain.NewMessage(sess.id, sess.userID, domain.RoleTutor, reply.Text, analysis.Intent); err == nil {
		s.emit(ctx, events.PersistMessage, tutor)
	}
	s.emitProfile(ctx, sess.userID)
}

func (s *Service) emitProfile(ctx context.Context, userID string) {
	s.emit(ctx, events.PersistProfile, s.profiles.Snapshot(userID))
}

// emit publishes a persist event. Failures are logged only.
func (s *Service) emit(ctx context.Context, eventType string, payload any) {
	if s.emitter == nil {
		return
	}
	event, err := events.NewPersistRequestEvent(eventType, payload)
	if err != nil {
		s.logger.Error("failed to build persist event",
			"event_type", eventType, "error", err)
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit persist event",
			"event_type", eventType, "error", err)
	}
}

// parseAnswerLetter maps an option letter to its index (A = 0).
func parseAnswerLetter(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return 0, ErrInvalidAnswer
	}
	return int(letter[0] - 'A'), nil
}

// complexityForConcept maps a concept's graph difficulty onto the
// message complexity scale used by the adaptation engine.
func complexityForConcept(g *knowledge.Graph, conceptID string) domain.Complexity {
	node, ok := g.Node(conceptID)
	if !ok {
		return domain.ComplexityMedium
	}
	switch {
	case node.Difficulty <= 1:
		return domain.ComplexitySimple
	case node.Difficulty >= 4:
		return domain.ComplexityComplex
	default:
		return domain.ComplexityMedium
	}
}

// activeWindow is the span of the session that saw interaction: start
// to the last analyzed message. Sessions with no messages, or whose
// last interaction falls outside the session span, count in full.
func activeWindow(startedAt, lastInteraction, endedAt time.Time) time.Duration {
	if lastInteraction.After(startedAt) && !lastInteraction.After(endedAt) {
		return lastInteraction.Sub(startedAt)
	}
	return endedAt.Sub(startedAt)
}

// engagementScore folds message count, topic spread and duration into a
// [0,100] score.
func engagementScore(messages, topics int, duration time.Duration) float64 {
	score := float64(messages)*8 + float64(topics)*10 + duration.Minutes()*2
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
