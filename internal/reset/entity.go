// AngelaMos | 2026
// entity.go

package reset

import (
	"time"
)

// ResetToken is a stored password reset grant. The owning user's contact
// fields are joined in on load so consumers never make a second query.
type ResetToken struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`

	UserEmail     string `db:"user_email"`
	UserFirstname string `db:"user_firstname"`
}

func (t *ResetToken) ExpiredAt(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
