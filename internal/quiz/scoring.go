package quiz

// Tier is the display-only friendship banding of a quiz score.
type Tier string

const (
	TierBestFriend   Tier = "best_friend"
	TierCloseFriend  Tier = "close_friend"
	TierFriend       Tier = "friend"
	TierAcquaintance Tier = "acquaintance"
)

// Score compares a taker's answers against the quiz owner's and returns the
// match percentage, floor(100 * correct / 15). No partial credit and no
// per-question weighting. Pure function; completeness of both answer sets is
// the caller's responsibility (see ValidateAnswers).
func Score(owner, taker map[int]int) int {
	correct := 0
	for i := 0; i < QuestionCount; i++ {
		ownerOpt, ok := owner[i]
		if !ok {
			continue
		}
		if takerOpt, ok := taker[i]; ok && takerOpt == ownerOpt {
			correct++
		}
	}
	return correct * 100 / QuestionCount
}

// TierFor bands a percentage into a friendship tier. Boundaries are inclusive
// at the lower bound of each band.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierBestFriend
	case score >= 60:
		return TierCloseFriend
	case score >= 40:
		return TierFriend
	default:
		return TierAcquaintance
	}
}
