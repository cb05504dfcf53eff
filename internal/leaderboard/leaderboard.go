package leaderboard

import (
	"time"

	"github.com/google/uuid"
)

// ScoreRow is one raw quiz-result row fed into the weekly ranking.
type ScoreRow struct {
	UserID    int64
	Score     int
	CreatedAt time.Time
}

// ScoreEntry is a ranked weekly-leaderboard line: one per taker, best score
// within the week.
type ScoreEntry struct {
	Rank   int    `json:"rank"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`

	achieved time.Time
}

// StreakRow is one raw streak row fed into the streak ranking. Orientation of
// the pair is whatever the storage happened to keep.
type StreakRow struct {
	ID            uuid.UUID
	UserID        int64
	FriendID      int64
	CurrentStreak int
}

// StreakEntry is a ranked streak-leaderboard line for one deduplicated pair.
type StreakEntry struct {
	Rank       int    `json:"rank"`
	UserID     int64  `json:"user_id"`
	FriendID   int64  `json:"friend_id"`
	UserName   string `json:"user_name"`
	FriendName string `json:"friend_name"`
	Days       int    `json:"days"`
}

// Position reports the requesting user's own rank when they fall outside the
// rendered top-N.
type Position struct {
	Rank  int `json:"rank"`
	Value int `json:"value"`
}

// Board is one leaderboard half as returned to the gateway.
type Board[E any] struct {
	Entries      []E       `json:"entries"`
	UserPosition *Position `json:"user_position,omitempty"`
}

// Overview bundles both independent leaderboards. Either half may be empty
// when its sub-query failed; the other half is still rendered.
type Overview struct {
	Weekly  Board[ScoreEntry]  `json:"weekly"`
	Streaks Board[StreakEntry] `json:"streaks"`
}
