package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/mrsimple007/friends-checking-bot/internal/leaderboard"
	"github.com/mrsimple007/friends-checking-bot/middleware"
)

const (
	weeklyFetchLimit = 50
	streakFetchLimit = 30
	boardSize        = 10
)

type LeaderboardService struct {
	db    *pgxpool.Pool
	users *UserService
	now   func() time.Time
}

func NewLeaderboardService(db *pgxpool.Pool, users *UserService) *LeaderboardService {
	return &LeaderboardService{
		db:    db,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Overview builds both leaderboards for the requesting user. The two halves
// are fetched concurrently and fail independently: a broken sub-query leaves
// its half empty while the other still renders.
func (s *LeaderboardService) Overview(ctx context.Context, userID int64) (*leaderboard.Overview, error) {
	overview := &leaderboard.Overview{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		board, err := s.weeklyBoard(gctx, userID)
		if err != nil {
			log.Printf("LEADERBOARD ERROR: weekly half for %d: %v", userID, err)
			middleware.CountLeaderboardRender("weekly", "degraded")
			return nil
		}
		overview.Weekly = *board
		middleware.CountLeaderboardRender("weekly", "ok")
		return nil
	})

	g.Go(func() error {
		board, err := s.streakBoard(gctx, userID)
		if err != nil {
			log.Printf("LEADERBOARD ERROR: streak half for %d: %v", userID, err)
			middleware.CountLeaderboardRender("streaks", "degraded")
			return nil
		}
		overview.Streaks = *board
		middleware.CountLeaderboardRender("streaks", "ok")
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *LeaderboardService) weeklyBoard(ctx context.Context, userID int64) (*leaderboard.Board[leaderboard.ScoreEntry], error) {
	query := `
	SELECT user_id, score, created_at
	FROM test_results
	WHERE created_at >= $1
	ORDER BY score DESC, created_at ASC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, leaderboard.WeekStart(s.now()), weeklyFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly results: %w", err)
	}
	defer rows.Close()

	var raw []leaderboard.ScoreRow
	for rows.Next() {
		var r leaderboard.ScoreRow
		if err := rows.Scan(&r.UserID, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weekly row: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly rows: %w", err)
	}

	ranked := leaderboard.RankWeeklyScores(raw)

	top := ranked
	if len(top) > boardSize {
		top = top[:boardSize]
	}

	ids := make([]int64, 0, len(top))
	for _, e := range top {
		ids = append(ids, e.UserID)
	}
	names, err := s.users.ResolveNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]leaderboard.ScoreEntry, len(top))
	for i, e := range top {
		e.Name = name(names, e.UserID)
		entries[i] = e
	}

	board := &leaderboard.Board[leaderboard.ScoreEntry]{Entries: entries}
	// The requester's own rank comes from the full reduced list, not just
	// the rendered top, and only shows when they missed the board.
	board.UserPosition = leaderboard.ScorePositionOutside(ranked, userID, boardSize)
	return board, nil
}

func (s *LeaderboardService) streakBoard(ctx context.Context, userID int64) (*leaderboard.Board[leaderboard.StreakEntry], error) {
	query := `
	SELECT id, user_id, friend_id, current_streak
	FROM friendship_streaks
	WHERE current_streak > 0
	ORDER BY current_streak DESC
	LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, streakFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks: %w", err)
	}
	defer rows.Close()

	var raw []leaderboard.StreakRow
	for rows.Next() {
		var r leaderboard.StreakRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.FriendID, &r.CurrentStreak); err != nil {
			return nil, fmt.Errorf("failed to scan streak row: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak rows: %w", err)
	}

	ranked := leaderboard.RankStreaks(raw)

	top := ranked
	if len(top) > boardSize {
		top = top[:boardSize]
	}

	ids := make([]int64, 0, len(top)*2)
	for _, e := range top {
		ids = append(ids, e.UserID, e.FriendID)
	}
	names, err := s.users.ResolveNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]leaderboard.StreakEntry, len(top))
	for i, e := range top {
		e.UserName = name(names, e.UserID)
		e.FriendName = name(names, e.FriendID)
		entries[i] = e
	}

	board := &leaderboard.Board[leaderboard.StreakEntry]{Entries: entries}
	board.UserPosition = leaderboard.StreakPositionOutside(ranked, userID, boardSize)
	return board, nil
}
