package leaderboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func ts(day, hour int) time.Time {
	return time.Date(2025, time.June, day, hour, 0, 0, 0, time.UTC)
}

func TestWeekStartIsMostRecentMonday(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// 2025-06-09 is a Monday.
		{time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		// Sunday still belongs to the week that started the prior Monday.
		{time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC), time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC), time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := WeekStart(tc.now); !got.Equal(tc.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestRankWeeklyScoresKeepsBestPerTaker(t *testing.T) {
	rows := []ScoreRow{
		{UserID: 1, Score: 60, CreatedAt: ts(9, 10)},
		{UserID: 1, Score: 93, CreatedAt: ts(10, 10)},
		{UserID: 1, Score: 40, CreatedAt: ts(11, 10)}, // later but worse
		{UserID: 2, Score: 80, CreatedAt: ts(9, 11)},
	}

	entries := RankWeeklyScores(rows)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != 1 || entries[0].Score != 93 {
		t.Fatalf("expected taker 1 best score 93 first, got %+v", entries[0])
	}
	if entries[1].UserID != 2 || entries[1].Rank != 2 {
		t.Fatalf("expected taker 2 ranked second, got %+v", entries[1])
	}
}

func TestRankWeeklyScoresTieBreaksByEarliestAchievement(t *testing.T) {
	rows := []ScoreRow{
		{UserID: 1, Score: 86, CreatedAt: ts(12, 8)},
		{UserID: 2, Score: 86, CreatedAt: ts(10, 8)}, // same score, earlier
		{UserID: 3, Score: 86, CreatedAt: ts(11, 8)},
	}

	entries := RankWeeklyScores(rows)

	want := []int64{2, 3, 1}
	for i, id := range want {
		if entries[i].UserID != id {
			t.Fatalf("position %d: expected user %d, got %d", i+1, id, entries[i].UserID)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("position %d: bad rank %d", i+1, entries[i].Rank)
		}
	}
}

func TestRankStreaksDeduplicatesUnorderedPairs(t *testing.T) {
	rows := []StreakRow{
		{ID: uuid.New(), UserID: 1, FriendID: 2, CurrentStreak: 30},
		{ID: uuid.New(), UserID: 2, FriendID: 1, CurrentStreak: 29}, // same pair, flipped
		{ID: uuid.New(), UserID: 3, FriendID: 4, CurrentStreak: 12},
		{ID: uuid.New(), UserID: 4, FriendID: 3, CurrentStreak: 12}, // near-duplicate row
		{ID: uuid.New(), UserID: 5, FriendID: 6, CurrentStreak: 3},
	}

	entries := RankStreaks(rows)

	if len(entries) != 3 {
		t.Fatalf("expected 3 deduplicated pairs, got %d", len(entries))
	}
	if entries[0].Days != 30 || entries[1].Days != 12 || entries[2].Days != 3 {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestRankStreaksSkipsZeroStreaks(t *testing.T) {
	rows := []StreakRow{
		{UserID: 1, FriendID: 2, CurrentStreak: 5},
		{UserID: 3, FriendID: 4, CurrentStreak: 0},
	}
	if entries := RankStreaks(rows); len(entries) != 1 {
		t.Fatalf("zero-day streaks must be excluded, got %d entries", len(entries))
	}
}

func TestScorePositionScansFullList(t *testing.T) {
	rows := make([]ScoreRow, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, ScoreRow{UserID: int64(i), Score: 100 - i, CreatedAt: ts(9, i)})
	}
	entries := RankWeeklyScores(rows)

	// User 12 sits at rank 12, outside a ten-entry page. Their rank comes
	// from the full ranked list, not a re-query.
	pos := ScorePosition(entries, 12)
	if pos == nil || pos.Rank != 12 || pos.Value != 88 {
		t.Fatalf("expected rank 12 score 88, got %+v", pos)
	}

	if ScorePosition(entries, 99) != nil {
		t.Fatal("expected nil position for absent user")
	}
}

func TestScorePositionOutsideOnlyBeyondLimit(t *testing.T) {
	rows := make([]ScoreRow, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, ScoreRow{UserID: int64(i), Score: 100 - i, CreatedAt: ts(9, i)})
	}
	entries := RankWeeklyScores(rows)

	// Rank 3 is already visible on a ten-entry page; no separate position.
	if pos := ScorePositionOutside(entries, 3, 10); pos != nil {
		t.Fatalf("expected nil for user inside the top, got %+v", pos)
	}

	pos := ScorePositionOutside(entries, 12, 10)
	if pos == nil || pos.Rank != 12 || pos.Value != 88 {
		t.Fatalf("expected rank 12 score 88, got %+v", pos)
	}

	if ScorePositionOutside(entries, 99, 10) != nil {
		t.Fatal("expected nil position for absent user")
	}
}

func TestStreakPositionOutsideOnlyBeyondLimit(t *testing.T) {
	rows := make([]StreakRow, 0, 4)
	for i := 0; i < 4; i++ {
		rows = append(rows, StreakRow{UserID: int64(10 + i), FriendID: int64(20 + i), CurrentStreak: 40 - i})
	}
	entries := RankStreaks(rows)

	// Rank 2 via the friend side is already on a two-entry page.
	if pos := StreakPositionOutside(entries, 21, 2); pos != nil {
		t.Fatalf("expected nil for pair inside the top, got %+v", pos)
	}

	pos := StreakPositionOutside(entries, 12, 2)
	if pos == nil || pos.Rank != 3 || pos.Value != 38 {
		t.Fatalf("expected rank 3 days 38, got %+v", pos)
	}
}

func TestStreakPositionMatchesEitherSide(t *testing.T) {
	entries := RankStreaks([]StreakRow{
		{UserID: 1, FriendID: 2, CurrentStreak: 9},
		{UserID: 7, FriendID: 3, CurrentStreak: 5},
	})

	pos := StreakPosition(entries, 3)
	if pos == nil || pos.Rank != 2 || pos.Value != 5 {
		t.Fatalf("expected rank 2 via friend side, got %+v", pos)
	}
}
