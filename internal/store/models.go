package store

import "time"

// Event kinds recorded in the events table.
const (
	EventKindMessage  = "message"
	EventKindCallback = "callback"
)

// Game is one catalog entry. URL is empty until an admin sets a link.
type Game struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	URL       string
	CreatedAt time.Time
}

// HasURL reports whether a link has been set for the game.
func (g Game) HasURL() bool {
	return g.URL != ""
}

// User is a denormalized snapshot of a Telegram user, refreshed on every
// interaction. TelegramID is the platform identifier; ID is internal.
type User struct {
	ID         int64 `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex;not null"`
	Username   string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
}

// DisplayName returns @username when one is set, otherwise "id<telegram id>".
func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return "id" + formatID(u.TelegramID)
}

// UserWithActions is a user row joined with the count of their logged events.
type UserWithActions struct {
	User
	ActionCount int64
}

// Event is one logged inbound interaction: a text message or a button click.
// Rows are append-only; UserID is the actor's Telegram identifier.
type Event struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"index;not null"`
	Type      string `gorm:"not null"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}
