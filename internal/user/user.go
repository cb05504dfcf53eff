package user

import "time"

// User is one chat-platform account known to the bot. The platform's numeric
// user id is the primary key; there is no separate auth identity.
type User struct {
	TelegramID   int64      `json:"telegram_id" db:"telegram_id"`
	Username     string     `json:"username" db:"username"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Language     string     `json:"language" db:"language"`
	IsPremium    bool       `json:"is_premium" db:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until" db:"premium_until"`
	InvitedBy    *int64     `json:"invited_by" db:"invited_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// Name is the display-name bundle handed to the gateway for rendering.
// Formatting ("First Last (@username)" with fallbacks) happens there.
type Name struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Display is the fallback chain the leaderboards use when a side of a pair
// needs a single label.
func (n Name) Display() string {
	full := n.FirstName
	if n.LastName != "" {
		if full != "" {
			full += " "
		}
		full += n.LastName
	}
	if full != "" {
		return full
	}
	if n.Username != "" {
		return n.Username
	}
	return "Friend"
}
