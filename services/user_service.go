package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrsimple007/friends-checking-bot/internal/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

// UpsertUser saves a platform account the first time it talks to the bot and
// refreshes names/language on later contacts. Premium flags are never touched
// here; they belong to the premium service.
func (s *UserService) UpsertUser(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO friends_users (telegram_id, username, first_name, last_name, language, invited_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (telegram_id)
	DO UPDATE SET
		username = COALESCE(NULLIF($2, ''), friends_users.username),
		first_name = COALESCE(NULLIF($3, ''), friends_users.first_name),
		last_name = COALESCE(NULLIF($4, ''), friends_users.last_name),
		language = COALESCE(NULLIF($5, ''), friends_users.language)
	`

	_, err := s.db.Exec(ctx, query, u.TelegramID, u.Username, u.FirstName, u.LastName, u.Language, u.InvitedBy)
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", u.TelegramID, err)
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, telegramID int64) (*user.User, error) {
	query := `
	SELECT telegram_id, username, first_name, last_name, language, is_premium, premium_until, invited_by, created_at
	FROM friends_users
	WHERE telegram_id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, telegramID).Scan(
		&u.TelegramID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Language,
		&u.IsPremium,
		&u.PremiumUntil,
		&u.InvitedBy,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetLanguage returns the user's resolved display language, defaulting to
// English for unknown users.
func (s *UserService) GetLanguage(ctx context.Context, telegramID int64) string {
	var lang string
	err := s.db.QueryRow(ctx, `SELECT language FROM friends_users WHERE telegram_id = $1`, telegramID).Scan(&lang)
	if err != nil || lang == "" {
		return "en"
	}
	return lang
}

func (s *UserService) SetLanguage(ctx context.Context, telegramID int64, lang string) error {
	_, err := s.db.Exec(ctx, `UPDATE friends_users SET language = $2 WHERE telegram_id = $1`, telegramID, lang)
	if err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	return nil
}

// ResolveNames fetches display names for a batch of user ids in one query.
// Leaderboard rendering depends on this being a single round trip, not one
// lookup per row. Unknown ids are simply absent from the result map.
func (s *UserService) ResolveNames(ctx context.Context, ids []int64) (map[int64]user.Name, error) {
	names := make(map[int64]user.Name, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `
	SELECT telegram_id, first_name, last_name, username
	FROM friends_users
	WHERE telegram_id = ANY($1)
	`

	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var n user.Name
		if err := rows.Scan(&id, &n.FirstName, &n.LastName, &n.Username); err != nil {
			return nil, fmt.Errorf("failed to scan name row: %w", err)
		}
		names[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating name rows: %w", err)
	}

	return names, nil
}

// CountInvited returns how many users joined through this user's share link.
func (s *UserService) CountInvited(ctx context.Context, telegramID int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM friends_users WHERE invited_by = $1`, telegramID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invited users: %w", err)
	}
	return count, nil
}

// IsPremium reports whether the user currently has an active subscription.
// An expired premium_until counts as not premium even if the flag is stale.
func (s *UserService) IsPremium(ctx context.Context, telegramID int64) bool {
	var isPremium bool
	var until *time.Time
	err := s.db.QueryRow(ctx,
		`SELECT is_premium, premium_until FROM friends_users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&isPremium, &until)
	if err != nil {
		return false
	}
	if !isPremium {
		return false
	}
	if until != nil && until.Before(time.Now().UTC()) {
		return false
	}
	return true
}
