package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrsimple007/friends-checking-bot/internal/birthday"
	"github.com/mrsimple007/friends-checking-bot/internal/premium"
)

var (
	ErrBirthdayLimitReached = errors.New("free birthday limit reached")
	ErrBirthdayNotFound     = errors.New("birthday not found")
)

type BirthdayService struct {
	db    *pgxpool.Pool
	users *UserService
	ai    *AIService
}

func NewBirthdayService(db *pgxpool.Pool, users *UserService, ai *AIService) *BirthdayService {
	return &BirthdayService{db: db, users: users, ai: ai}
}

// AddFromText extracts a birthday from a free-form message via the model and
// stores it. Free accounts can keep up to five birthdays; premium removes
// the cap.
func (s *BirthdayService) AddFromText(ctx context.Context, userID int64, text string) (*birthday.Birthday, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("birthday extraction is not configured")
	}

	if !s.users.IsPremium(ctx, userID) {
		var existing int
		err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM birthdays WHERE user_id = $1`, userID).Scan(&existing)
		if err != nil {
			return nil, fmt.Errorf("failed to count birthdays: %w", err)
		}
		if existing >= premium.FreeBirthdayLimit {
			return nil, ErrBirthdayLimitReached
		}
	}

	parsed, err := s.ai.ParseBirthday(ctx, text)
	if err != nil {
		return nil, err
	}

	b := &birthday.Birthday{
		UserID: userID,
		Name:   parsed.Name,
		Day:    parsed.Day,
		Month:  parsed.Month,
		Year:   parsed.Year,
	}
	err = s.db.QueryRow(ctx,
		`INSERT INTO birthdays (user_id, name, day, month, year, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id, created_at`,
		b.UserID, b.Name, b.Day, b.Month, b.Year,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save birthday: %w", err)
	}

	return b, nil
}

func (s *BirthdayService) List(ctx context.Context, userID int64) ([]birthday.Birthday, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, day, month, year, created_at
		 FROM birthdays
		 WHERE user_id = $1
		 ORDER BY month, day`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	defer rows.Close()

	var birthdays []birthday.Birthday
	for rows.Next() {
		var b birthday.Birthday
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Day, &b.Month, &b.Year, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan birthday row: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthday rows: %w", err)
	}

	return birthdays, nil
}

// Delete removes one of the user's saved birthdays. Deleting someone else's
// row is reported as not found.
func (s *BirthdayService) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM birthdays WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBirthdayNotFound
	}
	return nil
}

// DueOn returns every saved birthday matching the given calendar day and
// month, across all users. The stored year is ignored for matching.
func (s *BirthdayService) DueOn(ctx context.Context, day, month int) ([]birthday.Birthday, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, day, month, year, created_at
		 FROM birthdays
		 WHERE day = $1 AND month = $2`,
		day, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query due birthdays: %w", err)
	}
	defer rows.Close()

	var due []birthday.Birthday
	for rows.Next() {
		var b birthday.Birthday
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Day, &b.Month, &b.Year, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan birthday row: %w", err)
		}
		due = append(due, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthday rows: %w", err)
	}

	return due, nil
}

// Wish returns a birthday greeting for the named friend, generated per the
// owner's language, falling back to a canned line when the model is
// unavailable.
func (s *BirthdayService) Wish(ctx context.Context, userID int64, friendName string) string {
	if s.ai != nil {
		lang := s.users.GetLanguage(ctx, userID)
		wish, err := s.ai.GenerateWish(ctx, friendName, lang)
		if err == nil {
			return wish
		}
		log.Printf("WISH FALLBACK: user %d: %v", userID, err)
	}
	return fmt.Sprintf("Happy Birthday, %s! 🎉", friendName)
}

// Reminder is one pending birthday notification for the chat gateway to
// deliver.
type Reminder struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Wish   string `json:"wish"`
}

// RemindersFor assembles today's birthday reminders with a wish per entry.
func (s *BirthdayService) RemindersFor(ctx context.Context, now time.Time) ([]Reminder, error) {
	now = now.UTC()
	due, err := s.DueOn(ctx, now.Day(), int(now.Month()))
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0, len(due))
	for _, b := range due {
		reminders = append(reminders, Reminder{
			UserID: b.UserID,
			Name:   b.Name,
			Wish:   s.Wish(ctx, b.UserID, b.Name),
		})
	}
	return reminders, nil
}

// StartReminderWorker runs the daily birthday sweep at 09:00 UTC until the
// context is cancelled. Delivered reminders are recorded so restarts within
// the same day do not notify twice.
func (s *BirthdayService) StartReminderWorker(ctx context.Context, deliver func(Reminder)) {
	go func() {
		log.Println("BIRTHDAY WORKER STARTED")
		for {
			next := nextRunAt(time.Now().UTC(), 9)
			select {
			case <-ctx.Done():
				log.Println("BIRTHDAY WORKER STOPPED")
				return
			case <-time.After(time.Until(next)):
			}

			s.sweep(ctx, deliver)
		}
	}()
}

func (s *BirthdayService) sweep(ctx context.Context, deliver func(Reminder)) {
	sweepCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	due, err := s.DueOn(sweepCtx, now.Day(), int(now.Month()))
	if err != nil {
		log.Printf("BIRTHDAY SWEEP ERROR: %v", err)
		return
	}

	sent := 0
	for _, b := range due {
		if s.alreadyNotified(sweepCtx, b.ID, now) {
			continue
		}
		deliver(Reminder{
			UserID: b.UserID,
			Name:   b.Name,
			Wish:   s.Wish(sweepCtx, b.UserID, b.Name),
		})
		s.markNotified(sweepCtx, b.ID, now)
		sent++
	}
	log.Printf("BIRTHDAY SWEEP: %d due, %d sent", len(due), sent)
}

func (s *BirthdayService) alreadyNotified(ctx context.Context, id uuid.UUID, now time.Time) bool {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM birthday_notifications WHERE birthday_id = $1 AND sent_on = $2)`,
		id, now.Format("2006-01-02"),
	).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("BIRTHDAY SWEEP ERROR: dedup check %s: %v", id, err)
	}
	return exists
}

func (s *BirthdayService) markNotified(ctx context.Context, id uuid.UUID, now time.Time) {
	_, err := s.db.Exec(ctx,
		`INSERT INTO birthday_notifications (birthday_id, sent_on)
		 VALUES ($1, $2)
		 ON CONFLICT (birthday_id, sent_on) DO NOTHING`,
		id, now.Format("2006-01-02"),
	)
	if err != nil {
		log.Printf("BIRTHDAY SWEEP ERROR: mark %s: %v", id, err)
	}
}

// nextRunAt returns the next occurrence of the given UTC hour strictly after
// now.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
