package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminService struct {
	db *pgxpool.Pool
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{db: db}
}

// Stats is the admin-panel snapshot of overall bot usage.
type Stats struct {
	TotalUsers      int       `json:"total_users"`
	PremiumUsers    int       `json:"premium_users"`
	TotalQuizzes    int       `json:"total_quizzes"`
	TotalResults    int       `json:"total_results"`
	ActiveStreaks   int       `json:"active_streaks"`
	TotalBirthdays  int       `json:"total_birthdays"`
	PendingRequests int       `json:"pending_requests"`
	GeneratedAt     time.Time `json:"generated_at"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	query := `
	SELECT
		(SELECT COUNT(*) FROM friends_users),
		(SELECT COUNT(*) FROM friends_users WHERE is_premium = TRUE AND (premium_until IS NULL OR premium_until > NOW())),
		(SELECT COUNT(*) FROM tests),
		(SELECT COUNT(*) FROM test_results),
		(SELECT COUNT(*) FROM friendship_streaks WHERE current_streak > 0),
		(SELECT COUNT(*) FROM birthdays),
		(SELECT COUNT(*) FROM premium_requests WHERE status = 'pending')
	`

	stats := &Stats{GeneratedAt: time.Now().UTC()}
	err := s.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.PremiumUsers,
		&stats.TotalQuizzes,
		&stats.TotalResults,
		&stats.ActiveStreaks,
		&stats.TotalBirthdays,
		&stats.PendingRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	return stats, nil
}
