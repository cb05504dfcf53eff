package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrsimple007/friends-checking-bot/internal/premium"
)

var (
	ErrUnknownPlan        = errors.New("unknown subscription plan")
	ErrRequestNotFound    = errors.New("subscription request not found")
	ErrRequestSettled     = errors.New("subscription request already settled")
	ErrPendingRequestOpen = errors.New("a pending subscription request already exists")
)

type PremiumService struct {
	db *pgxpool.Pool
}

func NewPremiumService(db *pgxpool.Pool) *PremiumService {
	return &PremiumService{db: db}
}

// RequestSubscription opens a pending purchase for the given plan. Payment
// happens off-platform; an admin settles the request after checking the
// transfer. One pending request per user at a time.
func (s *PremiumService) RequestSubscription(ctx context.Context, userID int64, planKey string) (*premium.SubscriptionRequest, error) {
	plan, ok := premium.PlanByKey(planKey)
	if !ok {
		return nil, ErrUnknownPlan
	}

	var pending int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM premium_requests WHERE user_id = $1 AND status = $2`,
		userID, premium.StatusPending,
	).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending > 0 {
		return nil, ErrPendingRequestOpen
	}

	req := &premium.SubscriptionRequest{
		UserID:  userID,
		PlanKey: plan.Key,
		Amount:  plan.Price,
		Status:  premium.StatusPending,
	}
	err = s.db.QueryRow(ctx,
		`INSERT INTO premium_requests (user_id, plan_key, amount, status, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, created_at`,
		req.UserID, req.PlanKey, req.Amount, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription request: %w", err)
	}

	return req, nil
}

// Approve settles a pending request and grants premium from now for the
// plan's duration. Approving an already settled request is rejected rather
// than extended twice.
func (s *PremiumService) Approve(ctx context.Context, requestID uuid.UUID) (*premium.SubscriptionRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval: %w", err)
	}
	defer tx.Rollback(ctx)

	req, err := s.settle(ctx, tx, requestID, premium.StatusApproved)
	if err != nil {
		return nil, err
	}

	plan, ok := premium.PlanByKey(req.PlanKey)
	if !ok {
		return nil, ErrUnknownPlan
	}

	grant := `
	UPDATE friends_users
	SET is_premium = TRUE,
	    premium_until = NOW() + make_interval(months => $2)
	WHERE telegram_id = $1
	`
	if _, err := tx.Exec(ctx, grant, req.UserID, plan.Months); err != nil {
		return nil, fmt.Errorf("failed to grant premium: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}
	return req, nil
}

// Decline settles a pending request without granting anything.
func (s *PremiumService) Decline(ctx context.Context, requestID uuid.UUID) (*premium.SubscriptionRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin decline: %w", err)
	}
	defer tx.Rollback(ctx)

	req, err := s.settle(ctx, tx, requestID, premium.StatusDeclined)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit decline: %w", err)
	}
	return req, nil
}

func (s *PremiumService) settle(ctx context.Context, tx pgx.Tx, requestID uuid.UUID, status premium.RequestStatus) (*premium.SubscriptionRequest, error) {
	query := `
	UPDATE premium_requests
	SET status = $2, decided_at = NOW()
	WHERE id = $1 AND status = $3
	RETURNING id, user_id, plan_key, amount, status, created_at, decided_at
	`

	req := &premium.SubscriptionRequest{}
	err := tx.QueryRow(ctx, query, requestID, status, premium.StatusPending).Scan(
		&req.ID,
		&req.UserID,
		&req.PlanKey,
		&req.Amount,
		&req.Status,
		&req.CreatedAt,
		&req.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if exErr := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM premium_requests WHERE id = $1)`, requestID,
			).Scan(&exists); exErr == nil && exists {
				return nil, ErrRequestSettled
			}
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to settle request: %w", err)
	}

	return req, nil
}

// PendingRequests lists every open request for the admin panel, oldest
// first.
func (s *PremiumService) PendingRequests(ctx context.Context) ([]premium.SubscriptionRequest, error) {
	query := `
	SELECT id, user_id, plan_key, amount, status, created_at, decided_at
	FROM premium_requests
	WHERE status = $1
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, premium.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []premium.SubscriptionRequest
	for rows.Next() {
		var req premium.SubscriptionRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.PlanKey, &req.Amount, &req.Status, &req.CreatedAt, &req.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	return requests, nil
}
