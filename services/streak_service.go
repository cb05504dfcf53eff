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

	"github.com/mrsimple007/friends-checking-bot/internal/interaction"
	"github.com/mrsimple007/friends-checking-bot/internal/streak"
	"github.com/mrsimple007/friends-checking-bot/internal/user"
	"github.com/mrsimple007/friends-checking-bot/middleware"
)

type StreakService struct {
	db    *pgxpool.Pool
	users *UserService
	now   func() time.Time
}

func NewStreakService(db *pgxpool.Pool, users *UserService) *StreakService {
	return &StreakService{
		db:    db,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateStreak loads the streak row for a friend pair regardless of
// which side is passed first, creating a fresh zero row when the pair has
// never interacted. The pair is unordered; a unique index on the normalized
// (least, greatest) columns keeps concurrent first interactions from
// creating two rows.
func (s *StreakService) GetOrCreateStreak(ctx context.Context, userID, friendID int64) (*streak.Streak, error) {
	query := `
	SELECT id, user_id, friend_id, current_streak, longest_streak, last_interaction, created_at
	FROM friendship_streaks
	WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`

	st := &streak.Streak{}
	err := s.db.QueryRow(ctx, query, userID, friendID).Scan(
		&st.ID,
		&st.UserID,
		&st.FriendID,
		&st.CurrentStreak,
		&st.LongestStreak,
		&st.LastInteraction,
		&st.CreatedAt,
	)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	insert := `
	INSERT INTO friendship_streaks (user_id, friend_id, current_streak, longest_streak, created_at)
	VALUES ($1, $2, 0, 0, NOW())
	ON CONFLICT ((LEAST(user_id, friend_id)), (GREATEST(user_id, friend_id))) DO NOTHING
	RETURNING id, user_id, friend_id, current_streak, longest_streak, last_interaction, created_at
	`

	err = s.db.QueryRow(ctx, insert, userID, friendID).Scan(
		&st.ID,
		&st.UserID,
		&st.FriendID,
		&st.CurrentStreak,
		&st.LongestStreak,
		&st.LastInteraction,
		&st.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the race to a concurrent insert, read the winner's row.
		err = s.db.QueryRow(ctx, query, userID, friendID).Scan(
			&st.ID,
			&st.UserID,
			&st.FriendID,
			&st.CurrentStreak,
			&st.LongestStreak,
			&st.LastInteraction,
			&st.CreatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create streak: %w", err)
	}

	return st, nil
}

// RecordInteraction advances the pair's streak for an interaction happening
// now and returns the resulting streak length in days. The interaction is
// also appended to the history log; a log failure never rolls back or delays
// the streak update. When the streak itself cannot be persisted the caller
// gets 0 days together with the error.
func (s *StreakService) RecordInteraction(ctx context.Context, userID, friendID int64, payload interaction.Payload) (int, error) {
	typ := payload.InteractionType()
	if !typ.Valid() {
		return 0, fmt.Errorf("unknown interaction type %q", typ)
	}

	st, err := s.GetOrCreateStreak(ctx, userID, friendID)
	if err != nil {
		return 0, err
	}

	days := streak.Advance(st, s.now())

	update := `
	UPDATE friendship_streaks
	SET current_streak = $2, longest_streak = $3, last_interaction = $4
	WHERE id = $1
	`
	_, err = s.db.Exec(ctx, update, st.ID, st.CurrentStreak, st.LongestStreak, st.LastInteraction)
	if err != nil {
		return 0, fmt.Errorf("failed to update streak: %w", err)
	}

	go s.logInteraction(st.ID, userID, friendID, payload)
	middleware.CountInteraction(string(typ))

	return days, nil
}

// newLogRow assembles the audit row for one interaction, keyed to its owning
// streak.
func newLogRow(streakID uuid.UUID, userID, friendID int64, payload interaction.Payload) (*interaction.Interaction, error) {
	data, err := interaction.EncodePayload(payload)
	if err != nil {
		return nil, err
	}
	return &interaction.Interaction{
		StreakID: streakID,
		UserID:   userID,
		FriendID: friendID,
		Type:     payload.InteractionType(),
		Data:     data,
	}, nil
}

// logInteraction appends to the history table on its own deadline. Repeats
// within the same day are logged even though they do not move the streak.
func (s *StreakService) logInteraction(streakID uuid.UUID, userID, friendID int64, payload interaction.Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row, err := newLogRow(streakID, userID, friendID, payload)
	if err != nil {
		log.Printf("INTERACTION LOG ERROR: encode %s for %d->%d: %v", payload.InteractionType(), userID, friendID, err)
		return
	}

	query := `
	INSERT INTO streak_interactions (streak_id, user_id, friend_id, interaction_type, interaction_data, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := s.db.Exec(ctx, query, row.StreakID, row.UserID, row.FriendID, row.Type, row.Data); err != nil {
		log.Printf("INTERACTION LOG ERROR: %s for %d->%d: %v", row.Type, userID, friendID, err)
	}
}

type StreakSummary struct {
	FriendID      int64  `json:"friend_id"`
	FriendName    string `json:"friend_name"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// ListStreaks returns the user's streaks with every counterpart, longest
// first, with friend names resolved in a single batch.
func (s *StreakService) ListStreaks(ctx context.Context, userID int64) ([]StreakSummary, error) {
	query := `
	SELECT user_id, friend_id, current_streak, longest_streak
	FROM friendship_streaks
	WHERE user_id = $1 OR friend_id = $1
	ORDER BY current_streak DESC, longest_streak DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streaks: %w", err)
	}
	defer rows.Close()

	var summaries []StreakSummary
	var friendIDs []int64
	for rows.Next() {
		var st streak.Streak
		if err := rows.Scan(&st.UserID, &st.FriendID, &st.CurrentStreak, &st.LongestStreak); err != nil {
			return nil, fmt.Errorf("failed to scan streak row: %w", err)
		}
		friendID := st.Other(userID)
		friendIDs = append(friendIDs, friendID)
		summaries = append(summaries, StreakSummary{
			FriendID:      friendID,
			CurrentStreak: st.CurrentStreak,
			LongestStreak: st.LongestStreak,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak rows: %w", err)
	}

	names, err := s.users.ResolveNames(ctx, friendIDs)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].FriendName = name(names, summaries[i].FriendID)
	}

	return summaries, nil
}

func name(names map[int64]user.Name, id int64) string {
	if n, ok := names[id]; ok {
		return n.Display()
	}
	return user.Name{}.Display()
}
