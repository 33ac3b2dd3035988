package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mcwaffles/concord/internal/database"
)

type membership struct {
	channelID pgtype.UUID
	userID    pgtype.UUID
}

// FakeStore is an in-memory database.Querier for tests that don't need a real
// database. Misses surface as pgx.ErrNoRows and duplicate usernames as a
// unique-violation PgError, matching the PostgreSQL implementation.
type FakeStore struct {
	users    map[pgtype.UUID]database.User
	sessions map[pgtype.UUID]pgtype.UUID
	channels map[pgtype.UUID]database.Channel
	members  map[membership]bool
	messages map[pgtype.UUID]database.Message

	clock time.Time
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		users:    make(map[pgtype.UUID]database.User),
		sessions: make(map[pgtype.UUID]pgtype.UUID),
		channels: make(map[pgtype.UUID]database.Channel),
		members:  make(map[membership]bool),
		messages: make(map[pgtype.UUID]database.Message),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var _ database.Querier = (*FakeStore)(nil)

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (f *FakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Millisecond)
	return f.clock
}

func (f *FakeStore) CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error) {
	for _, u := range f.users {
		if u.Username == arg.Username {
			return database.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	u := database.User{ID: arg.ID, Username: arg.Username, Password: arg.Password}
	f.users[arg.ID] = u
	return u, nil
}

func (f *FakeStore) GetUser(ctx context.Context, id pgtype.UUID) (database.PublicUser, error) {
	u, ok := f.users[id]
	if !ok {
		return database.PublicUser{}, pgx.ErrNoRows
	}
	return database.PublicUser{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}, nil
}

func (f *FakeStore) GetUsersByIDs(ctx context.Context, ids []pgtype.UUID) ([]database.PublicUser, error) {
	var users []database.PublicUser
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, database.PublicUser{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture})
		}
	}
	return users, nil
}

func (f *FakeStore) GetUserWithPasswordByUsername(ctx context.Context, username string) (database.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return database.User{}, pgx.ErrNoRows
}

func (f *FakeStore) CreateSession(ctx context.Context, arg database.CreateSessionParams) error {
	f.sessions[arg.ID] = arg.UserID
	return nil
}

func (f *FakeStore) GetSessionUser(ctx context.Context, id pgtype.UUID) (pgtype.UUID, error) {
	userID, ok := f.sessions[id]
	if !ok {
		return pgtype.UUID{}, pgx.ErrNoRows
	}
	return userID, nil
}

func (f *FakeStore) CreateChannel(ctx context.Context, arg database.CreateChannelParams) (database.Channel, error) {
	c := database.Channel{ID: arg.ID, Name: arg.Name}
	f.channels[arg.ID] = c
	return c, nil
}

func (f *FakeStore) AddChannelMember(ctx context.Context, arg database.AddChannelMemberParams) error {
	f.members[membership{channelID: arg.ChannelID, userID: arg.UserID}] = true
	return nil
}

func (f *FakeStore) ListChannelsForUser(ctx context.Context, userID pgtype.UUID) ([]database.Channel, error) {
	var channels []database.Channel
	for m := range f.members {
		if m.userID == userID {
			channels = append(channels, f.channels[m.channelID])
		}
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].Name < channels[j].Name })
	return channels, nil
}

func (f *FakeStore) GetChannelIfMember(ctx context.Context, arg database.GetChannelIfMemberParams) (database.Channel, error) {
	if !f.members[membership{channelID: arg.ChannelID, userID: arg.UserID}] {
		return database.Channel{}, pgx.ErrNoRows
	}
	return f.channels[arg.ChannelID], nil
}

func (f *FakeStore) CreateMessage(ctx context.Context, arg database.CreateMessageParams) (database.Message, error) {
	m := database.Message{
		ID:        arg.ID,
		ChannelID: arg.ChannelID,
		UserID:    arg.UserID,
		Message:   arg.Message,
		CreatedAt: pgtype.Timestamptz{Time: f.tick(), Valid: true},
	}
	f.messages[arg.ID] = m
	return m, nil
}

func (f *FakeStore) GetMessage(ctx context.Context, id pgtype.UUID) (database.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return database.Message{}, pgx.ErrNoRows
	}
	return m, nil
}

func (f *FakeStore) GetMessageIfVisible(ctx context.Context, arg database.GetMessageIfVisibleParams) (database.Message, error) {
	m, ok := f.messages[arg.MessageID]
	if !ok {
		return database.Message{}, pgx.ErrNoRows
	}
	if !f.members[membership{channelID: m.ChannelID, userID: arg.UserID}] {
		return database.Message{}, pgx.ErrNoRows
	}
	return m, nil
}

func (f *FakeStore) ListMessagesByChannel(ctx context.Context, channelID pgtype.UUID) ([]database.Message, error) {
	var messages []database.Message
	for _, m := range f.messages {
		if m.ChannelID == channelID {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Time.Before(messages[j].CreatedAt.Time)
	})
	return messages, nil
}

func (f *FakeStore) UpdateMessageBody(ctx context.Context, arg database.UpdateMessageBodyParams) (database.Message, error) {
	m, ok := f.messages[arg.ID]
	if !ok {
		return database.Message{}, pgx.ErrNoRows
	}
	m.Message = arg.Message
	f.messages[arg.ID] = m
	return m, nil
}

func (f *FakeStore) DeleteMessage(ctx context.Context, id pgtype.UUID) error {
	delete(f.messages, id)
	return nil
}

// FakeDB runs transaction callbacks directly against a FakeStore. It keeps no
// rollback semantics; tests that need real transaction behavior use DBInit.
type FakeDB struct {
	Store *FakeStore
}

func NewFakeDB() *FakeDB {
	return &FakeDB{Store: NewFakeStore()}
}

func (d *FakeDB) WithTx(ctx context.Context, fn func(q database.Querier) error) error {
	return fn(d.Store)
}

func (d *FakeDB) ReadTx(ctx context.Context, fn func(q database.Querier) error) error {
	return fn(d.Store)
}
