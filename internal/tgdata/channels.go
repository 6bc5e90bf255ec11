package tgdata

import (
	"context"
	"fmt"

	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
)

// JoinChannel joins the channel. ErrInvalidChannel is returned when the ID or
// access hash is rejected.
func (s *Service) JoinChannel(ctx context.Context, id int64, accessHash *int64) error {
	if _, err := s.raw.ChannelsJoinChannel(ctx, tgclient.InputChannel(tgclient.ChannelID(id), accessHash)); err != nil {
		if isBadRequest(err) {
			return fmt.Errorf("%w: %w", ErrInvalidChannel, err)
		}
		return fmt.Errorf("joining channel: %w", err)
	}
	return nil
}

// DeleteChannel deletes the channel. The account must be its creator.
func (s *Service) DeleteChannel(ctx context.Context, id int64, accessHash *int64) error {
	if _, err := s.raw.ChannelsDeleteChannel(ctx, tgclient.InputChannel(tgclient.ChannelID(id), accessHash)); err != nil {
		if isBadRequest(err) {
			return fmt.Errorf("%w: %w", ErrInvalidChannel, err)
		}
		return fmt.Errorf("deleting channel: %w", err)
	}
	return nil
}
