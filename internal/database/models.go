package database

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	ID             pgtype.UUID
	Username       string
	Password       string
	ProfilePicture pgtype.Text
}

type Session struct {
	ID     pgtype.UUID
	UserID pgtype.UUID
}

type Channel struct {
	ID   pgtype.UUID
	Name string
}

type Message struct {
	ID        pgtype.UUID
	ChannelID pgtype.UUID
	UserID    pgtype.UUID
	Message   string
	CreatedAt pgtype.Timestamptz
}

// PublicUser is the projection safe to return to callers. The password hash
// stays inside this package's full User row.
type PublicUser struct {
	ID             pgtype.UUID
	Username       string
	ProfilePicture pgtype.Text
}
