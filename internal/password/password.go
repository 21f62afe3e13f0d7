package password

import (
	"time"
)

// Entry is a stored secret owned by exactly one user. The value is
// persisted as provided; at-rest encryption is delegated to the
// database deployment.
type Entry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Placement string     `json:"placement,omitempty"`
	Password  string     `json:"password"`
	ExpiredAt *time.Time `json:"expiredAt"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Update carries a partial update; nil fields keep their stored value.
type Update struct {
	Title     *string
	Placement *string
	Password  *string
	ExpiredAt *time.Time
	Note      *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.Title == nil &&
		u.Placement == nil &&
		u.Password == nil &&
		u.ExpiredAt == nil &&
		u.Note == nil
}
