package interaction

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type enumerates the qualifying interaction kinds between two friends.
type Type string

const (
	TypePing          Type = "ping"
	TypeDailyQuestion Type = "daily_question"
	TypeRemember      Type = "remember"
	TypeGuess         Type = "guess"
	TypeWeeklyCheckin Type = "weekly_checkin"
	TypeTestCompleted Type = "test_completed"
)

// Valid reports whether t is a known interaction type.
func (t Type) Valid() bool {
	switch t {
	case TypePing, TypeDailyQuestion, TypeRemember, TypeGuess, TypeWeeklyCheckin, TypeTestCompleted:
		return true
	}
	return false
}

// Interaction is one append-only audit row. Rows are never updated or
// deleted; the streak row's own last_interaction stays authoritative for the
// day-count logic.
type Interaction struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	StreakID  uuid.UUID       `json:"streak_id" db:"streak_id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	FriendID  int64           `json:"friend_id" db:"friend_id"`
	Type      Type            `json:"interaction_type" db:"interaction_type"`
	Data      json.RawMessage `json:"interaction_data" db:"interaction_data"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Payload is the tagged union of per-type interaction data. Each variant
// pins the shape of the jsonb column for its interaction type.
type Payload interface {
	InteractionType() Type
}

type PingPayload struct{}

type DailyQuestionPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type RememberPayload struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type GuessPayload struct {
	Correct bool `json:"correct"`
}

type WeeklyCheckinPayload struct {
	Talked bool `json:"talked"`
}

type TestCompletedPayload struct {
	TestID uuid.UUID `json:"test_id"`
	Score  int       `json:"score"`
}

func (PingPayload) InteractionType() Type          { return TypePing }
func (DailyQuestionPayload) InteractionType() Type { return TypeDailyQuestion }
func (RememberPayload) InteractionType() Type      { return TypeRemember }
func (GuessPayload) InteractionType() Type         { return TypeGuess }
func (WeeklyCheckinPayload) InteractionType() Type { return TypeWeeklyCheckin }
func (TestCompletedPayload) InteractionType() Type { return TypeTestCompleted }

// EncodePayload serializes a payload for the interaction_data column.
func EncodePayload(p Payload) (json.RawMessage, error) {
	if p == nil {
		return json.RawMessage(`{}`), nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", p.InteractionType(), err)
	}
	return raw, nil
}

// DecodePayload parses raw interaction_data back into the typed variant for t.
func DecodePayload(t Type, raw json.RawMessage) (Payload, error) {
	var p Payload
	switch t {
	case TypePing:
		p = &PingPayload{}
	case TypeDailyQuestion:
		p = &DailyQuestionPayload{}
	case TypeRemember:
		p = &RememberPayload{}
	case TypeGuess:
		p = &GuessPayload{}
	case TypeWeeklyCheckin:
		p = &WeeklyCheckinPayload{}
	case TypeTestCompleted:
		p = &TestCompletedPayload{}
	default:
		return nil, fmt.Errorf("unknown interaction type %q", t)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", t, err)
		}
	}
	return p, nil
}
