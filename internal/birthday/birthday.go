package birthday

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDate marks extractions that do not form a usable birthday.
var ErrInvalidDate = errors.New("invalid birthday")

// Birthday is one friend's birthday stored by a user. Year is optional; the
// reminder sweep matches on day and month only.
type Birthday struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Day       int       `json:"day" db:"day"`
	Month     int       `json:"month" db:"month"`
	Year      *int      `json:"year,omitempty" db:"year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Parsed is the structured extraction the text-generation service returns
// for a free-text birthday message.
type Parsed struct {
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  *int   `json:"year"`
}

// Validate checks the extracted fields before storage.
func (p *Parsed) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: no name extracted", ErrInvalidDate)
	}
	if p.Day < 1 || p.Day > 31 {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidDate, p.Day)
	}
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, p.Month)
	}
	return nil
}
