package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionCount is the fixed length of every friendship quiz.
const QuestionCount = 15

var (
	// ErrIncompleteAnswers indicates an answer set without exactly the keys
	// 0..14. This is a caller-contract violation, not a runtime condition.
	ErrIncompleteAnswers = errors.New("answer set must cover all 15 questions")
	// ErrOptionOutOfRange indicates an answer index outside the question's
	// option list.
	ErrOptionOutOfRange = errors.New("answer option out of range")
)

// Quiz is a 15-question self-description authored once by a user. Answers map
// question index (0..14) to the selected option index and are immutable after
// creation.
type Quiz struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    int64       `json:"user_id" db:"user_id"`
	Answers   map[int]int `json:"answers" db:"answers"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Result is one taker's completion of one quiz. At most one row exists per
// (test_id, user_id); a retake overwrites the previous score.
type Result struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TestID    uuid.UUID `json:"test_id" db:"test_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidateAnswers checks that answers holds exactly the keys 0..14 and that
// every selected option exists for its question.
func ValidateAnswers(answers map[int]int) error {
	if len(answers) != QuestionCount {
		return fmt.Errorf("%w: got %d answers", ErrIncompleteAnswers, len(answers))
	}
	for i := 0; i < QuestionCount; i++ {
		opt, ok := answers[i]
		if !ok {
			return fmt.Errorf("%w: question %d unanswered", ErrIncompleteAnswers, i)
		}
		if opt < 0 || opt >= len(Questions[i].Options) {
			return fmt.Errorf("%w: question %d option %d", ErrOptionOutOfRange, i, opt)
		}
	}
	return nil
}
