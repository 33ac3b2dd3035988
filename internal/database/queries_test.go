package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mcwaffles/concord/internal/database"
	"github.com/mcwaffles/concord/internal/testutil"
)

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func createTestUser(t *testing.T, q *database.Queries, username string) database.User {
	t.Helper()

	user, err := q.CreateUser(context.Background(), database.CreateUserParams{
		ID:       pgUUID(uuid.New()),
		Username: username,
		Password: "argon2id-hash-placeholder",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %+v", username, err)
	}
	return user
}

func TestUserQueries(t *testing.T) {
	pool := testutil.DBInit(t)
	q := database.New(pool)
	ctx := context.Background()

	user := createTestUser(t, q, "alice")

	t.Run("public_projection_has_no_password", func(t *testing.T) {
		got, err := q.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser() error = %+v", err)
		}
		if got.Username != "alice" {
			t.Errorf("Username = %q, want alice", got.Username)
		}
		if got.ProfilePicture.Valid {
			t.Errorf("ProfilePicture = %+v, want NULL", got.ProfilePicture)
		}
	})

	t.Run("lookup_by_username", func(t *testing.T) {
		got, err := q.GetUserWithPasswordByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserWithPasswordByUsername() error = %+v", err)
		}
		if got.ID != user.ID || got.Password == "" {
			t.Errorf("unexpected row: %+v", got)
		}

		if _, err := q.GetUserWithPasswordByUsername(ctx, "ghost"); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("lookup of unknown username error = %+v, want pgx.ErrNoRows", err)
		}
	})

	t.Run("duplicate_username_violates_unique", func(t *testing.T) {
		_, err := q.CreateUser(ctx, database.CreateUserParams{
			ID:       pgUUID(uuid.New()),
			Username: "alice",
			Password: "another-hash",
		})

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
			t.Fatalf("duplicate insert error = %+v, want unique violation", err)
		}
	})

	t.Run("batch_lookup", func(t *testing.T) {
		bob := createTestUser(t, q, "bob")

		users, err := q.GetUsersByIDs(ctx, []pgtype.UUID{user.ID, bob.ID})
		if err != nil {
			t.Fatalf("GetUsersByIDs() error = %+v", err)
		}
		if len(users) != 2 {
			t.Errorf("GetUsersByIDs() returned %d users, want 2", len(users))
		}
	})
}

func TestSessionQueries(t *testing.T) {
	pool := testutil.DBInit(t)
	q := database.New(pool)
	ctx := context.Background()

	user := createTestUser(t, q, "alice")
	token := pgUUID(uuid.New())

	if err := q.CreateSession(ctx, database.CreateSessionParams{ID: token, UserID: user.ID}); err != nil {
		t.Fatalf("CreateSession() error = %+v", err)
	}

	t.Run("resolves_to_user", func(t *testing.T) {
		userID, err := q.GetSessionUser(ctx, token)
		if err != nil {
			t.Fatalf("GetSessionUser() error = %+v", err)
		}
		if userID != user.ID {
			t.Errorf("GetSessionUser() = %v, want %v", userID, user.ID)
		}
	})

	t.Run("miss_is_no_rows", func(t *testing.T) {
		if _, err := q.GetSessionUser(ctx, pgUUID(uuid.New())); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("GetSessionUser() error = %+v, want pgx.ErrNoRows", err)
		}
	})
}

func TestChannelQueries(t *testing.T) {
	pool := testutil.DBInit(t)
	q := database.New(pool)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")

	channel, err := q.CreateChannel(ctx, database.CreateChannelParams{
		ID:   pgUUID(uuid.New()),
		Name: "general",
	})
	if err != nil {
		t.Fatalf("CreateChannel() error = %+v", err)
	}
	if err := q.AddChannelMember(ctx, database.AddChannelMemberParams{
		ChannelID: channel.ID,
		UserID:    alice.ID,
	}); err != nil {
		t.Fatalf("AddChannelMember() error = %+v", err)
	}

	t.Run("member_sees_channel", func(t *testing.T) {
		got, err := q.GetChannelIfMember(ctx, database.GetChannelIfMemberParams{
			UserID:    alice.ID,
			ChannelID: channel.ID,
		})
		if err != nil {
			t.Fatalf("GetChannelIfMember() error = %+v", err)
		}
		if got.Name != "general" {
			t.Errorf("Name = %q, want general", got.Name)
		}

		channels, err := q.ListChannelsForUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListChannelsForUser() error = %+v", err)
		}
		if len(channels) != 1 {
			t.Errorf("ListChannelsForUser() returned %d channels, want 1", len(channels))
		}
	})

	t.Run("non_member_sees_nothing", func(t *testing.T) {
		if _, err := q.GetChannelIfMember(ctx, database.GetChannelIfMemberParams{
			UserID:    bob.ID,
			ChannelID: channel.ID,
		}); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("GetChannelIfMember() error = %+v, want pgx.ErrNoRows", err)
		}

		channels, err := q.ListChannelsForUser(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListChannelsForUser() error = %+v", err)
		}
		if len(channels) != 0 {
			t.Errorf("ListChannelsForUser() returned %d channels, want 0", len(channels))
		}
	})
}

func TestMessageQueries(t *testing.T) {
	pool := testutil.DBInit(t)
	q := database.New(pool)
	ctx := context.Background()

	alice := createTestUser(t, q, "alice")
	bob := createTestUser(t, q, "bob")

	channel, err := q.CreateChannel(ctx, database.CreateChannelParams{
		ID:   pgUUID(uuid.New()),
		Name: "general",
	})
	if err != nil {
		t.Fatalf("CreateChannel() error = %+v", err)
	}
	if err := q.AddChannelMember(ctx, database.AddChannelMemberParams{
		ChannelID: channel.ID,
		UserID:    alice.ID,
	}); err != nil {
		t.Fatalf("AddChannelMember() error = %+v", err)
	}

	// Insert with explicit timestamps, newest first, to prove ordering comes
	// from the query and not insertion order.
	base := time.Now().UTC().Add(-time.Hour)
	bodies := []string{"third", "second", "first"}
	offsets := []time.Duration{2 * time.Minute, time.Minute, 0}
	for i, body := range bodies {
		_, err := pool.Exec(ctx,
			`INSERT INTO messages (id, channel_id, user_id, message, created_at) VALUES ($1, $2, $3, $4, $5)`,
			pgUUID(uuid.New()), channel.ID, alice.ID, body, base.Add(offsets[i]))
		if err != nil {
			t.Fatalf("seed insert error = %+v", err)
		}
	}

	t.Run("ordered_by_created_at_ascending", func(t *testing.T) {
		messages, err := q.ListMessagesByChannel(ctx, channel.ID)
		if err != nil {
			t.Fatalf("ListMessagesByChannel() error = %+v", err)
		}
		if len(messages) != 3 {
			t.Fatalf("ListMessagesByChannel() returned %d messages, want 3", len(messages))
		}
		for i, want := range []string{"first", "second", "third"} {
			if messages[i].Message != want {
				t.Errorf("messages[%d] = %q, want %q", i, messages[i].Message, want)
			}
		}
	})

	t.Run("visibility_follows_membership", func(t *testing.T) {
		msg, err := q.CreateMessage(ctx, database.CreateMessageParams{
			ID:        pgUUID(uuid.New()),
			ChannelID: channel.ID,
			UserID:    alice.ID,
			Message:   "hi",
		})
		if err != nil {
			t.Fatalf("CreateMessage() error = %+v", err)
		}

		if _, err := q.GetMessageIfVisible(ctx, database.GetMessageIfVisibleParams{
			UserID:    alice.ID,
			MessageID: msg.ID,
		}); err != nil {
			t.Errorf("GetMessageIfVisible() for member error = %+v", err)
		}

		if _, err := q.GetMessageIfVisible(ctx, database.GetMessageIfVisibleParams{
			UserID:    bob.ID,
			MessageID: msg.ID,
		}); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("GetMessageIfVisible() for non-member error = %+v, want pgx.ErrNoRows", err)
		}
	})

	t.Run("update_and_delete", func(t *testing.T) {
		msg, err := q.CreateMessage(ctx, database.CreateMessageParams{
			ID:        pgUUID(uuid.New()),
			ChannelID: channel.ID,
			UserID:    alice.ID,
			Message:   "draft",
		})
		if err != nil {
			t.Fatalf("CreateMessage() error = %+v", err)
		}

		updated, err := q.UpdateMessageBody(ctx, database.UpdateMessageBodyParams{
			ID:      msg.ID,
			Message: "final",
		})
		if err != nil {
			t.Fatalf("UpdateMessageBody() error = %+v", err)
		}
		if updated.Message != "final" || !updated.CreatedAt.Time.Equal(msg.CreatedAt.Time) {
			t.Errorf("updated row = %+v", updated)
		}

		if err := q.DeleteMessage(ctx, msg.ID); err != nil {
			t.Fatalf("DeleteMessage() error = %+v", err)
		}
		if _, err := q.GetMessage(ctx, msg.ID); !errors.Is(err, pgx.ErrNoRows) {
			t.Errorf("GetMessage() after delete error = %+v, want pgx.ErrNoRows", err)
		}
	})
}

func TestWithTxRollsBack(t *testing.T) {
	pool := testutil.DBInit(t)
	db := database.NewDB(pool)
	ctx := context.Background()

	userID := pgUUID(uuid.New())
	boom := fmt.Errorf("boom")

	err := db.WithTx(ctx, func(q database.Querier) error {
		if _, err := q.CreateUser(ctx, database.CreateUserParams{
			ID:       userID,
			Username: "alice",
			Password: "hash",
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %+v, want boom", err)
	}

	if _, err := database.New(pool).GetUser(ctx, userID); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("row survived a rolled back transaction: err = %+v", err)
	}
}
