package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrsimple007/friends-checking-bot/internal/interaction"
	"github.com/mrsimple007/friends-checking-bot/internal/premium"
	"github.com/mrsimple007/friends-checking-bot/internal/quiz"
	"github.com/mrsimple007/friends-checking-bot/internal/session"
)

var (
	ErrQuizLimitReached = errors.New("free quiz limit reached")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrNoActiveSession  = errors.New("no active quiz session")
	ErrOwnQuiz          = errors.New("cannot take your own quiz")
)

type QuizService struct {
	db       *pgxpool.Pool
	users    *UserService
	streaks  *StreakService
	sessions session.Store
}

func NewQuizService(db *pgxpool.Pool, users *UserService, streaks *StreakService, sessions session.Store) *QuizService {
	return &QuizService{
		db:       db,
		users:    users,
		streaks:  streaks,
		sessions: sessions,
	}
}

// CreateQuiz stores the owner's own answer sheet and returns the quiz id
// friends use to take it. Free accounts get one quiz; creating another
// requires premium.
func (s *QuizService) CreateQuiz(ctx context.Context, ownerID int64, answers map[int]int) (*quiz.Quiz, error) {
	if err := quiz.ValidateAnswers(answers); err != nil {
		return nil, err
	}

	if !s.users.IsPremium(ctx, ownerID) {
		var existing int
		err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM tests WHERE user_id = $1`, ownerID).Scan(&existing)
		if err != nil {
			return nil, fmt.Errorf("failed to count quizzes: %w", err)
		}
		if existing >= premium.FreeQuizLimit {
			return nil, ErrQuizLimitReached
		}
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	q := &quiz.Quiz{UserID: ownerID, Answers: answers}
	err = s.db.QueryRow(ctx,
		`INSERT INTO tests (user_id, answers, created_at) VALUES ($1, $2, NOW()) RETURNING id, created_at`,
		ownerID, encoded,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	return q, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id uuid.UUID) (*quiz.Quiz, error) {
	var encoded []byte
	q := &quiz.Quiz{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, answers, created_at FROM tests WHERE id = $1`,
		id,
	).Scan(&q.ID, &q.UserID, &encoded, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if err := json.Unmarshal(encoded, &q.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode quiz answers: %w", err)
	}
	return q, nil
}

// StartSession opens a question-by-question run of a friend's quiz for the
// taker and returns the first question. An earlier unfinished session for
// the same taker is discarded. Retaking a quiz is allowed; the retake's
// score replaces the stored result.
func (s *QuizService) StartSession(ctx context.Context, takerID int64, quizID uuid.UUID) (*session.Session, *quiz.Question, error) {
	q, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}
	if q.UserID == takerID {
		return nil, nil, ErrOwnQuiz
	}

	var previous int
	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_results WHERE test_id = $1 AND user_id = $2`,
		quizID, takerID,
	).Scan(&previous)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check previous results: %w", err)
	}

	sess := session.New(takerID, q.UserID, quizID, previous > 0, time.Now().UTC())
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	question := quiz.Questions[0]
	return sess, &question, nil
}

type AnswerOutcome struct {
	Done         bool           `json:"done"`
	NextIndex    int            `json:"next_index,omitempty"`
	NextQuestion *quiz.Question `json:"next_question,omitempty"`
	Score        int            `json:"score,omitempty"`
	Tier         quiz.Tier      `json:"tier,omitempty"`
	OwnerID      int64          `json:"owner_id,omitempty"`
}

// SubmitAnswer records one option pick for the taker's active session. When
// the fifteenth answer lands the session is scored against the owner's
// sheet, the result stored, and a test_completed interaction credited to the
// pair's streak.
func (s *QuizService) SubmitAnswer(ctx context.Context, takerID int64, option int) (*AnswerOutcome, error) {
	sess, ok, err := s.sessions.Get(ctx, takerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, ErrNoActiveSession
	}

	// A session left behind by a failed completion has all answers already
	// collected; retry the completion instead of reading past the bank.
	if sess.NextQuestion >= quiz.QuestionCount {
		return s.complete(ctx, sess)
	}

	if option < 0 || option >= len(quiz.Questions[sess.NextQuestion].Options) {
		return nil, quiz.ErrOptionOutOfRange
	}

	sess.Answers[sess.NextQuestion] = option
	sess.NextQuestion++

	if sess.NextQuestion < quiz.QuestionCount {
		if err := s.sessions.Put(ctx, sess); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
		question := quiz.Questions[sess.NextQuestion]
		return &AnswerOutcome{
			NextIndex:    sess.NextQuestion,
			NextQuestion: &question,
		}, nil
	}

	return s.complete(ctx, sess)
}

func (s *QuizService) complete(ctx context.Context, sess *session.Session) (*AnswerOutcome, error) {
	q, err := s.GetQuiz(ctx, sess.TestID)
	if err != nil {
		return nil, err
	}

	score := quiz.Score(q.Answers, sess.Answers)

	// One row per (test, taker); a retake overwrites it.
	query := `
	INSERT INTO test_results (test_id, user_id, score, created_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (test_id, user_id)
	DO UPDATE SET score = EXCLUDED.score, created_at = EXCLUDED.created_at
	`
	if _, err := s.db.Exec(ctx, query, sess.TestID, sess.TakerID, score); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}

	if err := s.sessions.Delete(ctx, sess.TakerID); err != nil {
		log.Printf("SESSION CLEANUP ERROR: taker %d: %v", sess.TakerID, err)
	}

	payload := interaction.TestCompletedPayload{TestID: sess.TestID, Score: score}
	if _, err := s.streaks.RecordInteraction(ctx, sess.TakerID, sess.OwnerID, payload); err != nil {
		log.Printf("STREAK UPDATE ERROR: test %s taker %d: %v", sess.TestID, sess.TakerID, err)
	}

	return &AnswerOutcome{
		Done:    true,
		Score:   score,
		Tier:    quiz.TierFor(score),
		OwnerID: q.UserID,
	}, nil
}

type ResultSummary struct {
	TakerID   int64     `json:"taker_id"`
	TakerName string    `json:"taker_name"`
	Score     int       `json:"score"`
	Tier      quiz.Tier `json:"tier"`
	TakenAt   time.Time `json:"taken_at"`
}

// MyResults lists who took the owner's quiz and how they scored, best first.
func (s *QuizService) MyResults(ctx context.Context, ownerID int64) ([]ResultSummary, error) {
	query := `
	SELECT r.user_id, r.score, r.created_at
	FROM test_results r
	JOIN tests t ON t.id = r.test_id
	WHERE t.user_id = $1
	ORDER BY r.score DESC, r.created_at ASC
	`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []ResultSummary
	var takerIDs []int64
	for rows.Next() {
		var r ResultSummary
		if err := rows.Scan(&r.TakerID, &r.Score, &r.TakenAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		r.Tier = quiz.TierFor(r.Score)
		takerIDs = append(takerIDs, r.TakerID)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	names, err := s.users.ResolveNames(ctx, takerIDs)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].TakerName = name(names, results[i].TakerID)
	}

	return results, nil
}

// MyQuizzes lists the quizzes the user has created, newest first.
func (s *QuizService) MyQuizzes(ctx context.Context, ownerID int64) ([]quiz.Quiz, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, created_at FROM tests WHERE user_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []quiz.Quiz
	for rows.Next() {
		var q quiz.Quiz
		if err := rows.Scan(&q.ID, &q.UserID, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz row: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz rows: %w", err)
	}

	return quizzes, nil
}
