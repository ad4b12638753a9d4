package profile

import "github.com/quillmind/tutor-api/internal/domain"

// badgeRule is one unlock check. Rules are pure over the profile plus
// the per-interaction facts that cannot be read back off it.
type badgeRule struct {
	id    string
	check func(p *domain.LearningProfile, facts BadgeFacts) bool
}

// BadgeFacts carries interaction facts consumed by the rules pass.
type BadgeFacts struct {
	// FirstSession is true when this interaction belongs to the user's
	// first ever session.
	FirstSession bool
	// PerfectQuiz is true when the user just completed a quiz with every
	// answer correct.
	PerfectQuiz bool
}

var badgeRules = []badgeRule{
	{domain.BadgeFirstSession, func(_ *domain.LearningProfile, f BadgeFacts) bool { return f.FirstSession }},
	{domain.BadgeStreak3, func(p *domain.LearningProfile, _ BadgeFacts) bool { return p.Streak >= 3 }},
	{domain.BadgeStreak7, func(p *domain.LearningProfile, _ BadgeFacts) bool { return p.Streak >= 7 }},
	{domain.BadgeXP100, func(p *domain.LearningProfile, _ BadgeFacts) bool { return p.XP >= 100 }},
	{domain.BadgeXP500, func(p *domain.LearningProfile, _ BadgeFacts) bool { return p.XP >= 500 }},
	{domain.BadgeTenConcepts, func(p *domain.LearningProfile, _ BadgeFacts) bool { return len(p.CompletedConcepts) >= 10 }},
	{domain.BadgePerfectQuiz, func(_ *domain.LearningProfile, f BadgeFacts) bool { return f.PerfectQuiz }},
}

// EvaluateBadges runs the fixed threshold rules and unlocks any badge
// whose condition holds. It returns the badges newly unlocked by this
// pass; already-held badges are never re-reported or revoked.
func EvaluateBadges(p *domain.LearningProfile, facts BadgeFacts) []string {
	var unlocked []string
	for _, rule := range badgeRules {
		if p.HasBadge(rule.id) {
			continue
		}
		if rule.check(p, facts) && p.UnlockBadge(rule.id) {
			unlocked = append(unlocked, rule.id)
		}
	}
	return unlocked
}
