package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mcwaffles/concord/internal/database"
	"github.com/mcwaffles/concord/internal/model"
)

// AuthorResolver fills in the author of each message. The two variants
// differ only in how many lookups they issue; results are identical.
type AuthorResolver interface {
	Resolve(ctx context.Context, messages []model.Message) error
}

// Authors resolves the author of every message in place using the configured
// resolver.
func (s *Service) Authors(ctx context.Context, messages []model.Message) error {
	return s.authors.Resolve(ctx, messages)
}

// naiveAuthorResolver issues one lookup per message, each in its own read
// transaction. This is the N+1 pattern the lazy relation design implies.
type naiveAuthorResolver struct {
	db TxRunner
}

func (r *naiveAuthorResolver) Resolve(ctx context.Context, messages []model.Message) error {
	for i := range messages {
		var author model.User
		err := r.db.ReadTx(ctx, func(q database.Querier) error {
			row, err := q.GetUser(ctx, pgUUID(messages[i].UserID))
			if err != nil {
				return err
			}
			author = toUser(row)
			return nil
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return fmt.Errorf("internal/service: resolve author: %w", err)
		}
		messages[i].Author = &author
	}
	return nil
}

// batchedAuthorResolver fetches all distinct authors with a single query.
type batchedAuthorResolver struct {
	db TxRunner
}

func (r *batchedAuthorResolver) Resolve(ctx context.Context, messages []model.Message) error {
	if len(messages) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	var ids []pgtype.UUID
	for _, m := range messages {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			ids = append(ids, pgUUID(m.UserID))
		}
	}

	authors := make(map[uuid.UUID]model.User, len(ids))
	err := r.db.ReadTx(ctx, func(q database.Querier) error {
		rows, err := q.GetUsersByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, row := range rows {
			authors[row.ID.Bytes] = toUser(row)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("internal/service: resolve authors: %w", err)
	}

	for i := range messages {
		if author, ok := authors[messages[i].UserID]; ok {
			a := author
			messages[i].Author = &a
		}
	}
	return nil
}
