// Package model defines the API-facing data structures.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the public projection of a registered account. The password hash
// never appears here.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
}

// Channel is a chat channel. Messages is only populated when the caller asked
// for the relation.
type Channel struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Messages []Message `json:"messages,omitempty"`
}

// Message holds a single chat message. Author is only populated when the
// caller asked for the relation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	ChannelID uuid.UUID `json:"channel_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
	Author    *User     `json:"author,omitempty"`
}
