package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createChannel = `
INSERT INTO channels (id, name)
VALUES ($1, $2)
RETURNING id, name
`

type CreateChannelParams struct {
	ID   pgtype.UUID
	Name string
}

func (q *Queries) CreateChannel(ctx context.Context, arg CreateChannelParams) (Channel, error) {
	row := q.db.QueryRow(ctx, createChannel, arg.ID, arg.Name)
	var c Channel
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}

const addChannelMember = `
INSERT INTO channel_members (channel_id, user_id)
VALUES ($1, $2)
`

type AddChannelMemberParams struct {
	ChannelID pgtype.UUID
	UserID    pgtype.UUID
}

func (q *Queries) AddChannelMember(ctx context.Context, arg AddChannelMemberParams) error {
	_, err := q.db.Exec(ctx, addChannelMember, arg.ChannelID, arg.UserID)
	return err
}

const listChannelsForUser = `
SELECT c.id, c.name FROM channels c
JOIN channel_members m ON m.channel_id = c.id
WHERE m.user_id = $1
`

func (q *Queries) ListChannelsForUser(ctx context.Context, userID pgtype.UUID) ([]Channel, error) {
	rows, err := q.db.Query(ctx, listChannelsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []Channel
	for rows.Next() {
		var c Channel
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

const getChannelIfMember = `
SELECT c.id, c.name FROM channels c
JOIN channel_members m ON m.channel_id = c.id
WHERE m.user_id = $1 AND c.id = $2
`

type GetChannelIfMemberParams struct {
	UserID    pgtype.UUID
	ChannelID pgtype.UUID
}

func (q *Queries) GetChannelIfMember(ctx context.Context, arg GetChannelIfMemberParams) (Channel, error) {
	row := q.db.QueryRow(ctx, getChannelIfMember, arg.UserID, arg.ChannelID)
	var c Channel
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}
