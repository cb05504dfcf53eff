package quiz

import "testing"

func fullAnswers() map[int]int {
	a := make(map[int]int, QuestionCount)
	for i := 0; i < QuestionCount; i++ {
		a[i] = i % len(Questions[i].Options)
	}
	return a
}

func TestScorePerfectMatch(t *testing.T) {
	owner := fullAnswers()
	if got := Score(owner, owner); got != 100 {
		t.Fatalf("self-score should be 100, got %d", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	owner := fullAnswers()
	taker := fullAnswers()
	taker[4] = (taker[4] + 1) % len(Questions[4].Options)

	first := Score(owner, taker)
	for i := 0; i < 5; i++ {
		if got := Score(owner, taker); got != first {
			t.Fatalf("score changed between calls: %d vs %d", first, got)
		}
	}
}

func TestScoreFloorsPercentage(t *testing.T) {
	owner := fullAnswers()

	cases := []struct {
		wrong int
		want  int
	}{
		{0, 100},
		{1, 93},  // floor(1400/15)
		{3, 80},  // 12 correct
		{7, 53},  // 8 correct
		{14, 6},  // 1 correct
		{15, 0},
	}

	for _, tc := range cases {
		taker := fullAnswers()
		for i := 0; i < tc.wrong; i++ {
			taker[i] = (owner[i] + 1) % len(Questions[i].Options)
		}
		if got := Score(owner, taker); got != tc.want {
			t.Errorf("%d wrong answers: expected %d%%, got %d%%", tc.wrong, tc.want, got)
		}
	}
}

func TestTierBoundariesAreInclusive(t *testing.T) {
	cases := []struct {
		score int
		want  Tier
	}{
		{100, TierBestFriend},
		{80, TierBestFriend},
		{79, TierCloseFriend},
		{60, TierCloseFriend},
		{59, TierFriend},
		{40, TierFriend},
		{39, TierAcquaintance},
		{0, TierAcquaintance},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score); got != tc.want {
			t.Errorf("score %d: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestValidateAnswersRejectsShortSets(t *testing.T) {
	a := fullAnswers()
	delete(a, 14)
	if err := ValidateAnswers(a); err == nil {
		t.Fatal("expected error for 14 answers")
	}

	if err := ValidateAnswers(nil); err == nil {
		t.Fatal("expected error for empty answers")
	}
}

func TestValidateAnswersRejectsOutOfRangeOption(t *testing.T) {
	a := fullAnswers()
	a[1] = len(Questions[1].Options)
	if err := ValidateAnswers(a); err == nil {
		t.Fatal("expected error for option past range")
	}

	a = fullAnswers()
	a[0] = -1
	if err := ValidateAnswers(a); err == nil {
		t.Fatal("expected error for negative option")
	}
}

func TestValidateAnswersAcceptsFullSet(t *testing.T) {
	if err := ValidateAnswers(fullAnswers()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
