package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the query surface the service layer depends on. *Queries is the
// PostgreSQL implementation; tests substitute in-memory fakes.
type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUser(ctx context.Context, id pgtype.UUID) (PublicUser, error)
	GetUsersByIDs(ctx context.Context, ids []pgtype.UUID) ([]PublicUser, error)
	GetUserWithPasswordByUsername(ctx context.Context, username string) (User, error)

	CreateSession(ctx context.Context, arg CreateSessionParams) error
	GetSessionUser(ctx context.Context, id pgtype.UUID) (pgtype.UUID, error)

	CreateChannel(ctx context.Context, arg CreateChannelParams) (Channel, error)
	AddChannelMember(ctx context.Context, arg AddChannelMemberParams) error
	ListChannelsForUser(ctx context.Context, userID pgtype.UUID) ([]Channel, error)
	GetChannelIfMember(ctx context.Context, arg GetChannelIfMemberParams) (Channel, error)

	CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error)
	GetMessage(ctx context.Context, id pgtype.UUID) (Message, error)
	GetMessageIfVisible(ctx context.Context, arg GetMessageIfVisibleParams) (Message, error)
	ListMessagesByChannel(ctx context.Context, channelID pgtype.UUID) ([]Message, error)
	UpdateMessageBody(ctx context.Context, arg UpdateMessageBodyParams) (Message, error)
	DeleteMessage(ctx context.Context, id pgtype.UUID) error
}

var _ Querier = (*Queries)(nil)
