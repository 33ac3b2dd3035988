// Package service implements the authenticated query and mutation operations.
// Every mutation follows the same protocol: begin a transaction, resolve the
// session token, run the entity mutation with the resolved user as the
// authorization subject, re-read the affected entity, commit. Any failure
// rolls the whole unit back.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/microcosm-cc/bluemonday"

	"github.com/mcwaffles/concord/internal/database"
	"github.com/mcwaffles/concord/internal/model"
)

// TxRunner opens transactions and hands a transactional query handle to fn.
// *database.DB is the production implementation.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(q database.Querier) error) error
	ReadTx(ctx context.Context, fn func(q database.Querier) error) error
}

type Service struct {
	db        TxRunner
	sanitizer *bluemonday.Policy
	authors   AuthorResolver
}

type Option func(*Service)

// WithBatchedAuthors resolves message authors with a single query per batch
// instead of one lookup per message. Results are identical.
func WithBatchedAuthors() Option {
	return func(s *Service) {
		s.authors = &batchedAuthorResolver{db: s.db}
	}
}

func New(db TxRunner, opts ...Option) *Service {
	s := &Service{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
		authors:   &naiveAuthorResolver{db: db},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveSession maps a session token to its user within the caller's
// transaction. A lookup miss is an authorization failure, not a system fault.
func resolveSession(ctx context.Context, q database.Querier, token uuid.UUID) (pgtype.UUID, error) {
	userID, err := q.GetSessionUser(ctx, pgUUID(token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgtype.UUID{}, ErrNotAuthorized
		}
		return pgtype.UUID{}, fmt.Errorf("internal/service: resolve session: %w", err)
	}
	return userID, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toUser(u database.PublicUser) model.User {
	user := model.User{
		ID:       u.ID.Bytes,
		Username: u.Username,
	}
	if u.ProfilePicture.Valid {
		pic := u.ProfilePicture.String
		user.ProfilePicture = &pic
	}
	return user
}

func toChannel(c database.Channel) model.Channel {
	return model.Channel{
		ID:   c.ID.Bytes,
		Name: c.Name,
	}
}

func toMessage(m database.Message) model.Message {
	return model.Message{
		ID:        m.ID.Bytes,
		ChannelID: m.ChannelID.Bytes,
		UserID:    m.UserID.Bytes,
		Body:      m.Message,
		CreatedAt: m.CreatedAt.Time,
	}
}
