package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (id, username, password)
VALUES ($1, $2, $3)
RETURNING id, username, password, profile_picture
`

type CreateUserParams struct {
	ID       pgtype.UUID
	Username string
	Password string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Username, arg.Password)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.ProfilePicture)
	return u, err
}

const getUser = `
SELECT id, username, profile_picture FROM users
WHERE id = $1
`

func (q *Queries) GetUser(ctx context.Context, id pgtype.UUID) (PublicUser, error) {
	row := q.db.QueryRow(ctx, getUser, id)
	var u PublicUser
	err := row.Scan(&u.ID, &u.Username, &u.ProfilePicture)
	return u, err
}

const getUsersByIDs = `
SELECT id, username, profile_picture FROM users
WHERE id = ANY($1)
`

func (q *Queries) GetUsersByIDs(ctx context.Context, ids []pgtype.UUID) ([]PublicUser, error) {
	rows, err := q.db.Query(ctx, getUsersByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []PublicUser
	for rows.Next() {
		var u PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfilePicture); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const getUserWithPasswordByUsername = `
SELECT id, username, password, profile_picture FROM users
WHERE username = $1
`

func (q *Queries) GetUserWithPasswordByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserWithPasswordByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.ProfilePicture)
	return u, err
}
