package domain

// Badge identifiers. Badges are monotonic achievement flags: once
// unlocked they are never revoked.
const (
	BadgeFirstSession = "first_session"
	BadgeStreak3      = "streak_3"
	BadgeStreak7      = "streak_7"
	BadgeXP100        = "xp_100"
	BadgeXP500        = "xp_500"
	BadgeTenConcepts  = "ten_concepts"
	BadgePerfectQuiz  = "perfect_quiz"
)

// AllBadges lists every badge in catalog order.
func AllBadges() []string {
	return []string{
		BadgeFirstSession,
		BadgeStreak3,
		BadgeStreak7,
		BadgeXP100,
		BadgeXP500,
		BadgeTenConcepts,
		BadgePerfectQuiz,
	}
}
