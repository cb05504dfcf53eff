package premium

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle of a manual subscription request:
// pending until an admin approves or declines it.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDeclined RequestStatus = "declined"
)

// Plan is one purchasable subscription period.
type Plan struct {
	Key    string `json:"key"`
	Months int    `json:"months"`
	// Price in UZS; payment itself happens off-platform (card transfer
	// checked by an admin), the core only tracks the request state.
	Price int `json:"price"`
}

// Plans lists the offered periods in display order.
var Plans = []Plan{
	{Key: "1_month", Months: 1, Price: 15000},
	{Key: "3_months", Months: 3, Price: 40000},
	{Key: "6_months", Months: 6, Price: 75000},
	{Key: "1_year", Months: 12, Price: 140000},
}

// PlanByKey looks up a plan; ok is false for unknown keys.
func PlanByKey(key string) (Plan, bool) {
	for _, p := range Plans {
		if p.Key == key {
			return p, true
		}
	}
	return Plan{}, false
}

// SubscriptionRequest is one user's pending/settled premium purchase.
type SubscriptionRequest struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	PlanKey   string        `json:"plan_key" db:"plan_key"`
	Amount    int           `json:"amount" db:"amount"`
	Status    RequestStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	DecidedAt *time.Time    `json:"decided_at,omitempty" db:"decided_at"`
}

// Free-tier limits; premium removes both.
const (
	FreeBirthdayLimit = 5
	FreeQuizLimit     = 1
)
