package streak

import "time"

// Advance applies one interaction at time now to the streak and returns the
// resulting day count. This is the only code allowed to change CurrentStreak
// or LongestStreak.
//
// The comparison uses UTC calendar dates, not elapsed hours: two interactions
// on the same date are a no-op, the next date increments, and a gap of two or
// more dates starts a fresh run at 1 (not 0 — the new interaction itself
// counts as day one).
func Advance(s *Streak, now time.Time) int {
	if s.LastInteraction == nil {
		s.CurrentStreak = 1
	} else {
		switch d := daysBetween(*s.LastInteraction, now); {
		case d == 0:
			// same calendar day, idempotent
		case d == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	t := now
	s.LastInteraction = &t

	return s.CurrentStreak
}

// daysBetween counts whole calendar days from a to b, date portion only, UTC.
func daysBetween(a, b time.Time) int {
	au := a.UTC()
	bu := b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
