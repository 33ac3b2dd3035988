package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mcwaffles/concord/internal/database"
	"github.com/mcwaffles/concord/internal/model"
)

// Channels lists every channel the token's user belongs to.
func (s *Service) Channels(ctx context.Context, token uuid.UUID) ([]model.Channel, error) {
	var channels []model.Channel
	err := s.db.ReadTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		rows, err := q.ListChannelsForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("internal/service: list channels: %w", err)
		}

		channels = make([]model.Channel, 0, len(rows))
		for _, row := range rows {
			channels = append(channels, toChannel(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return channels, nil
}

// GetChannel returns the channel if the token's user is a member, or nil when
// it is absent or not visible. Absence is not an error on the query side.
func (s *Service) GetChannel(ctx context.Context, token, channelID uuid.UUID) (*model.Channel, error) {
	var channel *model.Channel
	err := s.db.ReadTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		row, err := q.GetChannelIfMember(ctx, database.GetChannelIfMemberParams{
			UserID:    userID,
			ChannelID: pgUUID(channelID),
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("internal/service: get channel: %w", err)
		}

		c := toChannel(row)
		channel = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return channel, nil
}

// CreateChannel creates a channel and adds the creator as its first member in
// the same transaction. A channel never exists without its creator as member.
func (s *Service) CreateChannel(ctx context.Context, token uuid.UUID, name string) (*model.Channel, error) {
	if name == "" {
		return nil, ErrEmptyChannelName
	}

	channelID := uuid.New()
	var channel model.Channel
	err := s.db.WithTx(ctx, func(q database.Querier) error {
		userID, err := resolveSession(ctx, q, token)
		if err != nil {
			return err
		}

		if _, err := q.CreateChannel(ctx, database.CreateChannelParams{
			ID:   pgUUID(channelID),
			Name: name,
		}); err != nil {
			return fmt.Errorf("internal/service: create channel: %w", err)
		}

		if err := q.AddChannelMember(ctx, database.AddChannelMemberParams{
			ChannelID: pgUUID(channelID),
			UserID:    userID,
		}); err != nil {
			return fmt.Errorf("internal/service: add channel member: %w", err)
		}

		// Authoritative reload through the membership join.
		row, err := q.GetChannelIfMember(ctx, database.GetChannelIfMemberParams{
			UserID:    userID,
			ChannelID: pgUUID(channelID),
		})
		if err != nil {
			return fmt.Errorf("internal/service: reload channel: %w", err)
		}

		channel = toChannel(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &channel, nil
}

// ChannelMessages lists a channel's messages ordered by creation time
// ascending. Runs in its own short read transaction.
func (s *Service) ChannelMessages(ctx context.Context, channelID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.ReadTx(ctx, func(q database.Querier) error {
		rows, err := q.ListMessagesByChannel(ctx, pgUUID(channelID))
		if err != nil {
			return fmt.Errorf("internal/service: list messages: %w", err)
		}

		messages = make([]model.Message, 0, len(rows))
		for _, row := range rows {
			messages = append(messages, toMessage(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}
