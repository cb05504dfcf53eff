package leaderboard

import (
	"sort"
	"time"

	"github.com/mrsimple007/friends-checking-bot/internal/streak"
)

// WeekStart returns the most recent Monday 00:00:00 UTC at or before now.
func WeekStart(now time.Time) time.Time {
	now = now.UTC()
	// time.Weekday puts Sunday at 0; shift so Monday is the week anchor.
	offset := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// RankWeeklyScores reduces raw weekly result rows to one ranked entry per
// taker. A taker's best score wins, not their latest or average; ties between
// takers break toward whoever reached that score first. Names are left empty
// for the caller's batched lookup.
func RankWeeklyScores(rows []ScoreRow) []ScoreEntry {
	best := make(map[int64]*ScoreEntry)
	for _, r := range rows {
		e, ok := best[r.UserID]
		if !ok {
			best[r.UserID] = &ScoreEntry{UserID: r.UserID, Score: r.Score, achieved: r.CreatedAt}
			continue
		}
		if r.Score > e.Score || (r.Score == e.Score && r.CreatedAt.Before(e.achieved)) {
			e.Score = r.Score
			e.achieved = r.CreatedAt
		}
	}

	entries := make([]ScoreEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, *e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].achieved.Before(entries[j].achieved)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RankStreaks deduplicates raw streak rows by unordered pair and ranks them
// by current streak. Rows must arrive sorted descending by current_streak
// (the store query guarantees it); the first row seen for a pair wins.
func RankStreaks(rows []StreakRow) []StreakEntry {
	seen := make(map[[2]int64]bool)
	var entries []StreakEntry
	for _, r := range rows {
		if r.CurrentStreak <= 0 {
			continue
		}
		key := streak.PairKey(r.UserID, r.FriendID)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, StreakEntry{
			Rank:     len(entries) + 1,
			UserID:   r.UserID,
			FriendID: r.FriendID,
			Days:     r.CurrentStreak,
		})
	}
	return entries
}

// ScorePosition finds userID's rank in the full ranked list. Returns nil when
// the user has no qualifying entry.
func ScorePosition(entries []ScoreEntry, userID int64) *Position {
	for _, e := range entries {
		if e.UserID == userID {
			return &Position{Rank: e.Rank, Value: e.Score}
		}
	}
	return nil
}

// StreakPosition finds the best-ranked pair containing userID on either side.
func StreakPosition(entries []StreakEntry, userID int64) *Position {
	for _, e := range entries {
		if e.UserID == userID || e.FriendID == userID {
			return &Position{Rank: e.Rank, Value: e.Days}
		}
	}
	return nil
}

// ScorePositionOutside reports userID's rank only when it falls outside the
// rendered top limit; a requester already visible on the board gets nothing
// extra.
func ScorePositionOutside(entries []ScoreEntry, userID int64, limit int) *Position {
	pos := ScorePosition(entries, userID)
	if pos == nil || pos.Rank <= limit {
		return nil
	}
	return pos
}

// StreakPositionOutside is the streak-board counterpart of
// ScorePositionOutside.
func StreakPositionOutside(entries []StreakEntry, userID int64, limit int) *Position {
	pos := StreakPosition(entries, userID)
	if pos == nil || pos.Rank <= limit {
		return nil
	}
	return pos
}
