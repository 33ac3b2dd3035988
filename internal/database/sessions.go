package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Sessions are insert-only. A token stays valid until the row is gone, which
// in this design is never.

const createSession = `
INSERT INTO sessions (id, user_id)
VALUES ($1, $2)
`

type CreateSessionParams struct {
	ID     pgtype.UUID
	UserID pgtype.UUID
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.Exec(ctx, createSession, arg.ID, arg.UserID)
	return err
}

const getSessionUser = `
SELECT user_id FROM sessions
WHERE id = $1
`

func (q *Queries) GetSessionUser(ctx context.Context, id pgtype.UUID) (pgtype.UUID, error) {
	row := q.db.QueryRow(ctx, getSessionUser, id)
	var userID pgtype.UUID
	err := row.Scan(&userID)
	return userID, err
}
