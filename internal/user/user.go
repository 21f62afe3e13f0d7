package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a directory record mapping a provider identity to an
// internal account. SessionKey is the provider-issued secret cached
// for potential future API calls; it is never sent to clients.
type User struct {
	ID         string
	OpenID     string
	UnionID    string
	Nickname   string
	AvatarURL  string
	SessionKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// New builds a fresh user for a first login: generated id, placeholder
// nickname derived from the id, and a deterministic avatar.
func New(openID, unionID, sessionKey string) User {
	id := uuid.NewString()
	suffix := strings.ToUpper(id[len(id)-4:])

	return User{
		ID:         id,
		OpenID:     openID,
		UnionID:    unionID,
		Nickname:   "user_" + suffix,
		AvatarURL:  fmt.Sprintf("https://api.dicebear.com/7.x/miniavs/svg?seed=%s", id),
		SessionKey: sessionKey,
	}
}
