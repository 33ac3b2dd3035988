package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcwaffles/concord/internal/auth"
	"github.com/mcwaffles/concord/internal/database"
)

const uniqueViolation = "23505"

// Register creates a new account and returns its id.
func (s *Service) Register(ctx context.Context, username, password, passwordConfirm string) (uuid.UUID, error) {
	if username == "" || password == "" {
		return uuid.UUID{}, ErrMissingField
	}
	if password != passwordConfirm {
		return uuid.UUID{}, ErrPasswordMismatch
	}

	// Hash outside the transaction; argon2id is deliberately slow.
	hashedPw, err := auth.HashPassword(password)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("internal/service: register: %w", err)
	}

	userID := uuid.New()
	err = s.db.WithTx(ctx, func(q database.Querier) error {
		_, err := q.CreateUser(ctx, database.CreateUserParams{
			ID:       pgUUID(userID),
			Username: username,
			Password: hashedPw,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrUsernameTaken
			}
			return fmt.Errorf("internal/service: create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}

	return userID, nil
}

// SignIn verifies the credentials and issues a new session token. Unknown
// username and wrong password both come back as ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, username, password string) (uuid.UUID, error) {
	var token uuid.UUID
	err := s.db.WithTx(ctx, func(q database.Querier) error {
		user, err := q.GetUserWithPasswordByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvalidCredentials
			}
			return fmt.Errorf("internal/service: sign in: %w", err)
		}

		ok, err := auth.CheckPasswordHash(password, user.Password)
		if err != nil {
			return fmt.Errorf("internal/service: sign in: %w", err)
		}
		if !ok {
			return ErrInvalidCredentials
		}

		token = auth.NewSessionToken()
		if err := q.CreateSession(ctx, database.CreateSessionParams{
			ID:     pgUUID(token),
			UserID: user.ID,
		}); err != nil {
			return fmt.Errorf("internal/service: create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}

	return token, nil
}
