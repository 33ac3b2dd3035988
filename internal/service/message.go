package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mcwaffles/concord/internal/database"
	"github.com/mcwaffles/concord/internal/model"
)

// GetMessage returns the message if the token's user is a member of its
// channel, or nil when it is absent or not visible.
func (s *Service) GetMessage(ctx context.Context, token, messageID uuid.UUID) (*model.Message, error) {
	var message *model.Message
	err := s.db.ReadTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		row, err := q.GetMessageIfVisible(ctx, database.GetMessageIfVisibleParams{
			UserID:    userID,
			MessageID: pgUUID(messageID),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("internal/service: get message: %w", err)
		}

		m := toMessage(row)
		message = &m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return message, nil
}

// SendMessage posts a message to a channel the token's user is a member of.
// Membership is checked here, at send time only.
func (s *Service) SendMessage(ctx context.Context, token, channelID uuid.UUID, body string) (*model.Message, error) {
	body = s.cleanBody(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	messageID := uuid.New()
	var message model.Message
	err := s.db.WithTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		if _, err := q.GetChannelIfMember(ctx, database.GetChannelIfMemberParams{
			UserID:    userID,
			ChannelID: pgUUID(channelID),
		}); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotAuthorized
			}
			return fmt.Errorf("internal/service: membership check: %w", err)
		}

		if _, err := q.CreateMessage(ctx, database.CreateMessageParams{
			ID:        pgUUID(messageID),
			ChannelID: pgUUID(channelID),
			UserID:    userID,
			Message:   body,
		}); err != nil {
			return fmt.Errorf("internal/service: create message: %w", err)
		}

		// Authoritative reload for the response.
		row, err := q.GetMessage(ctx, pgUUID(messageID))
		if err != nil {
			return fmt.Errorf("internal/service: reload message: %w", err)
		}

		message = toMessage(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// UpdateMessage changes the body of a message owned by the token's user.
// A missing message and someone else's message report the same failure.
func (s *Service) UpdateMessage(ctx context.Context, token, messageID uuid.UUID, body string) (*model.Message, error) {
	body = s.cleanBody(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	var message model.Message
	err := s.db.WithTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		if err := fetchOwned(ctx, q, pgUUID(messageID), userID); err != nil {
			return err
		}

		if _, err := q.UpdateMessageBody(ctx, database.UpdateMessageBodyParams{
			ID:      pgUUID(messageID),
			Message: body,
		}); err != nil {
			return fmt.Errorf("internal/service: update message: %w", err)
		}

		row, err := q.GetMessage(ctx, pgUUID(messageID))
		if err != nil {
			return fmt.Errorf("internal/service: reload message: %w", err)
		}

		message = toMessage(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// DeleteMessage removes a message owned by the token's user and returns its
// id after confirming the row is gone.
func (s *Service) DeleteMessage(ctx context.Context, token, messageID uuid.UUID) (uuid.UUID, error) {
	err := s.db.WithTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		if err := fetchOwned(ctx, q, pgUUID(messageID), userID); err != nil {
			return err
		}

		if err := q.DeleteMessage(ctx, pgUUID(messageID)); err != nil {
			return fmt.Errorf("internal/service: delete message: %w", err)
		}

		// Confirm non-existence before committing.
		if _, err := q.GetMessage(ctx, pgUUID(messageID)); !errors.Is(err, pgx.ErrNoRows) {
			if err != nil {
				return fmt.Errorf("internal/service: confirm delete: %w", err)
			}
			return fmt.Errorf("internal/service: message still present after delete")
		}
		return nil
	})
	if err != nil {
		return uuid.UUID{}, err
	}

	return messageID, nil
}

// fetchOwned loads the message and checks authorship. An explicit fetch and
// compare, so "absent" and "not yours" are one and the same outcome.
func fetchOwned(ctx context.Context, q database.Querier, messageID, userID pgtype.UUID) error {
	row, err := q.GetMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotAuthorized
		}
		return fmt.Errorf("internal/service: fetch message: %w", err)
	}
	if row.UserID != userID {
		return ErrNotAuthorized
	}
	return nil
}

func (s *Service) cleanBody(body string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(body))
}
