package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/mrsimple007/friends-checking-bot/internal/interaction"
)

func TestNewLogRowCarriesStreakID(t *testing.T) {
	streakID := uuid.New()
	testID := uuid.New()

	row, err := newLogRow(streakID, 42, 7, interaction.TestCompletedPayload{TestID: testID, Score: 80})
	if err != nil {
		t.Fatal(err)
	}

	if row.StreakID != streakID {
		t.Fatalf("StreakID = %s, want %s", row.StreakID, streakID)
	}
	if row.UserID != 42 || row.FriendID != 7 {
		t.Fatalf("pair = %d->%d, want 42->7", row.UserID, row.FriendID)
	}
	if row.Type != interaction.TypeTestCompleted {
		t.Fatalf("type = %s, want %s", row.Type, interaction.TypeTestCompleted)
	}

	var decoded interaction.TestCompletedPayload
	if err := json.Unmarshal(row.Data, &decoded); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if decoded.TestID != testID || decoded.Score != 80 {
		t.Fatalf("payload round trip mismatch: %+v", decoded)
	}
}

func TestNewLogRowEmptyPayload(t *testing.T) {
	row, err := newLogRow(uuid.New(), 42, 7, interaction.PingPayload{})
	if err != nil {
		t.Fatal(err)
	}
	if row.Type != interaction.TypePing {
		t.Fatalf("type = %s, want %s", row.Type, interaction.TypePing)
	}
	if string(row.Data) != "{}" {
		t.Fatalf("ping data = %s, want {}", row.Data)
	}
}
