package streak

import (
	"testing"
	"time"
)

func at(day int, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestAdvanceFirstInteraction(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}

	days := Advance(s, at(10, 14))

	if days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
	if s.CurrentStreak != 1 || s.LongestStreak != 1 {
		t.Fatalf("expected current=1 longest=1, got current=%d longest=%d", s.CurrentStreak, s.LongestStreak)
	}
	if s.LastInteraction == nil || !s.LastInteraction.Equal(at(10, 14)) {
		t.Fatalf("last interaction not recorded")
	}
}

func TestAdvanceSameDayIsIdempotent(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}
	Advance(s, at(10, 9))

	// Repeat interactions later the same UTC day must not inflate the count.
	for _, hour := range []int{10, 15, 23} {
		if days := Advance(s, at(10, hour)); days != 1 {
			t.Fatalf("same-day repeat at hour %d changed streak to %d", hour, days)
		}
	}
	if s.LongestStreak != 1 {
		t.Fatalf("longest changed on same-day repeat: %d", s.LongestStreak)
	}
}

func TestAdvanceConsecutiveDayIncrements(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}
	Advance(s, at(10, 23))

	if days := Advance(s, at(11, 0)); days != 2 {
		t.Fatalf("expected 2 after consecutive day, got %d", days)
	}
	if s.LongestStreak != 2 {
		t.Fatalf("expected longest=2, got %d", s.LongestStreak)
	}
}

func TestAdvanceGapResetsToOne(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}
	Advance(s, at(10, 12))
	Advance(s, at(11, 12))
	Advance(s, at(12, 12)) // current = 3

	// Two skipped days: fresh run starts at 1, longest stays.
	if days := Advance(s, at(15, 12)); days != 1 {
		t.Fatalf("expected reset to 1, got %d", days)
	}
	if s.LongestStreak != 3 {
		t.Fatalf("longest should survive a break, got %d", s.LongestStreak)
	}
}

func TestAdvanceLongestIsMonotonic(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}

	prev := 0
	days := []int{1, 2, 3, 7, 8, 9, 10, 20, 21}
	for _, d := range days {
		Advance(s, at(d, 12))
		if s.LongestStreak < prev {
			t.Fatalf("longest decreased: %d -> %d", prev, s.LongestStreak)
		}
		if s.LongestStreak < s.CurrentStreak {
			t.Fatalf("invariant violated: longest %d < current %d", s.LongestStreak, s.CurrentStreak)
		}
		prev = s.LongestStreak
	}

	// 1,2,3 then 7..10 (run of 4) then 20,21 (run of 2)
	if s.LongestStreak != 4 {
		t.Fatalf("expected longest=4, got %d", s.LongestStreak)
	}
	if s.CurrentStreak != 2 {
		t.Fatalf("expected current=2, got %d", s.CurrentStreak)
	}
}

func TestAdvanceAcrossMonthBoundary(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}
	Advance(s, time.Date(2025, time.March, 31, 22, 0, 0, 0, time.UTC))

	if days := Advance(s, time.Date(2025, time.April, 1, 2, 0, 0, 0, time.UTC)); days != 2 {
		t.Fatalf("month boundary treated as gap, got %d", days)
	}
}

func TestAdvanceUsesUTCDate(t *testing.T) {
	s := &Streak{UserID: 1, FriendID: 2}
	// 23:30 UTC on day 10, expressed in a +02:00 zone as 01:30 on day 11.
	plus2 := time.FixedZone("plus2", 2*3600)
	Advance(s, time.Date(2025, time.March, 11, 1, 30, 0, 0, plus2))

	// Still day 10 in UTC, so a second interaction at 23:45 UTC is same-day.
	if days := Advance(s, time.Date(2025, time.March, 10, 23, 45, 0, 0, time.UTC)); days != 1 {
		t.Fatalf("expected same UTC day, got %d", days)
	}
}

func TestPairKeyNormalizes(t *testing.T) {
	if PairKey(7, 3) != PairKey(3, 7) {
		t.Fatal("pair key must be orientation independent")
	}
	if k := PairKey(9, 4); k[0] != 4 || k[1] != 9 {
		t.Fatalf("unexpected key %v", k)
	}
}
