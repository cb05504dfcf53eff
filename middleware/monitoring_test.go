package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountInteraction(t *testing.T) {
	before := testutil.ToFloat64(interactionsRecorded.WithLabelValues("ping"))

	CountInteraction("ping")
	CountInteraction("ping")
	CountInteraction("daily_question")

	if got := testutil.ToFloat64(interactionsRecorded.WithLabelValues("ping")); got != before+2 {
		t.Fatalf("ping counter = %v, want %v", got, before+2)
	}
	if got := testutil.ToFloat64(interactionsRecorded.WithLabelValues("daily_question")); got < 1 {
		t.Fatalf("daily_question counter = %v, want >= 1", got)
	}
}

func TestCountLeaderboardRender(t *testing.T) {
	before := testutil.ToFloat64(leaderboardRenders.WithLabelValues("weekly", "degraded"))

	CountLeaderboardRender("weekly", "degraded")

	if got := testutil.ToFloat64(leaderboardRenders.WithLabelValues("weekly", "degraded")); got != before+1 {
		t.Fatalf("degraded counter = %v, want %v", got, before+1)
	}
}
