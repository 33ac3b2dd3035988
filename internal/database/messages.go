package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMessage = `
INSERT INTO messages (id, channel_id, user_id, message)
VALUES ($1, $2, $3, $4)
RETURNING id, channel_id, user_id, message, created_at
`

type CreateMessageParams struct {
	ID        pgtype.UUID
	ChannelID pgtype.UUID
	UserID    pgtype.UUID
	Message   string
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	row := q.db.QueryRow(ctx, createMessage, arg.ID, arg.ChannelID, arg.UserID, arg.Message)
	var m Message
	err := row.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.CreatedAt)
	return m, err
}

const getMessage = `
SELECT id, channel_id, user_id, message, created_at FROM messages
WHERE id = $1
`

func (q *Queries) GetMessage(ctx context.Context, id pgtype.UUID) (Message, error) {
	row := q.db.QueryRow(ctx, getMessage, id)
	var m Message
	err := row.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.CreatedAt)
	return m, err
}

const getMessageIfVisible = `
SELECT msg.id, msg.channel_id, msg.user_id, msg.message, msg.created_at FROM messages msg
JOIN channel_members m ON m.channel_id = msg.channel_id
WHERE m.user_id = $1 AND msg.id = $2
`

type GetMessageIfVisibleParams struct {
	UserID    pgtype.UUID
	MessageID pgtype.UUID
}

// GetMessageIfVisible returns the message only when the requesting user is a
// member of its channel.
func (q *Queries) GetMessageIfVisible(ctx context.Context, arg GetMessageIfVisibleParams) (Message, error) {
	row := q.db.QueryRow(ctx, getMessageIfVisible, arg.UserID, arg.MessageID)
	var m Message
	err := row.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.CreatedAt)
	return m, err
}

const listMessagesByChannel = `
SELECT id, channel_id, user_id, message, created_at FROM messages
WHERE channel_id = $1
ORDER BY created_at
`

func (q *Queries) ListMessagesByChannel(ctx context.Context, channelID pgtype.UUID) ([]Message, error) {
	rows, err := q.db.Query(ctx, listMessagesByChannel, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const updateMessageBody = `
UPDATE messages SET message = $2
WHERE id = $1
RETURNING id, channel_id, user_id, message, created_at
`

type UpdateMessageBodyParams struct {
	ID      pgtype.UUID
	Message string
}

func (q *Queries) UpdateMessageBody(ctx context.Context, arg UpdateMessageBodyParams) (Message, error) {
	row := q.db.QueryRow(ctx, updateMessageBody, arg.ID, arg.Message)
	var m Message
	err := row.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.CreatedAt)
	return m, err
}

const deleteMessage = `
DELETE FROM messages
WHERE id = $1
`

func (q *Queries) DeleteMessage(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteMessage, id)
	return err
}
