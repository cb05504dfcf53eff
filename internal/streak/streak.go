package streak

import (
	"time"

	"github.com/google/uuid"
)

// Streak tracks the daily-interaction run between two users. The pair is
// stored as two columns but is unordered: (user_id, friend_id) and
// (friend_id, user_id) refer to the same row.
type Streak struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	FriendID        int64      `json:"friend_id" db:"friend_id"`
	CurrentStreak   int        `json:"current_streak" db:"current_streak"`
	LongestStreak   int        `json:"longest_streak" db:"longest_streak"`
	LastInteraction *time.Time `json:"last_interaction" db:"last_interaction"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// Other returns the member of the pair that is not id.
func (s *Streak) Other(id int64) int64 {
	if s.UserID == id {
		return s.FriendID
	}
	return s.UserID
}

// PairKey returns the normalized (smaller, larger) form of the pair, used to
// deduplicate rows regardless of which side was stored as user_id.
func PairKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}
