package tgdata

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
)

// OpenTakeout starts a data export session scoped to chats, megagroups and
// channels. A *CooldownError is returned while Telegram delays the export.
func (s *Service) OpenTakeout(ctx context.Context) (int64, error) {
	takeout, err := s.raw.AccountInitTakeoutSession(ctx, &tg.AccountInitTakeoutSessionRequest{
		MessageChats:      true,
		MessageMegagroups: true,
		MessageChannels:   true,
	})
	if err != nil {
		if cooldown, ok := asCooldown(err); ok {
			return 0, cooldown
		}
		return 0, fmt.Errorf("initializing takeout session: %w", err)
	}
	return takeout.ID, nil
}

// CloseTakeout finishes the takeout session with the given outcome.
func (s *Service) CloseTakeout(ctx context.Context, takeoutID int64, success bool) error {
	_, err := s.takeout(takeoutID).AccountFinishTakeoutSession(ctx, &tg.AccountFinishTakeoutSessionRequest{
		Success: success,
	})
	if err != nil {
		return fmt.Errorf("finishing takeout session: %w", err)
	}
	return nil
}

// LeftChats lists the chats and channels the account has left.
func (s *Service) LeftChats(ctx context.Context, takeoutID int64) ([]LeftChat, error) {
	res, err := s.takeout(takeoutID).ChannelsGetLeftChannels(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("getting left channels: %w", err)
	}

	var chats []tg.ChatClass
	switch r := res.(type) {
	case *tg.MessagesChats:
		chats = r.Chats
	case *tg.MessagesChatsSlice:
		chats = r.Chats
	default:
		return nil, fmt.Errorf("unexpected left channels response: %T", res)
	}

	left := make([]LeftChat, 0, len(chats))
	for _, c := range chats {
		left = append(left, leftChatFromClass(c))
	}
	return left, nil
}

// TakeoutMessages fetches up to limit most recent messages of a left chat
// through the takeout session.
func (s *Service) TakeoutMessages(ctx context.Context, takeoutID int64, chat ChatRef, limit int) ([]messages.Message, error) {
	return fetchSample(ctx, s.provider.WithClient(s.takeout(takeoutID)), chat, limit)
}

func (s *Service) takeout(takeoutID int64) *tg.Client {
	return tg.NewClient(takeoutInvoker{id: takeoutID, next: s.invoker})
}

func leftChatFromClass(c tg.ChatClass) LeftChat {
	switch chat := c.(type) {
	case *tg.ChatEmpty:
		return LeftChat{Kind: LeftKindEmpty, ID: chat.ID, Raw: c}
	case *tg.ChatForbidden:
		return LeftChat{Kind: LeftKindForbidden, ID: chat.ID, Title: chat.Title, Raw: c}
	case *tg.ChannelForbidden:
		hash := chat.AccessHash
		return LeftChat{
			Kind:       LeftKindForbidden,
			ID:         chat.ID,
			AccessHash: &hash,
			Title:      chat.Title,
			Megagroup:  chat.Megagroup,
			Broadcast:  chat.Broadcast,
			Raw:        c,
		}
	case *tg.Chat:
		return LeftChat{
			Kind:    LeftKindChat,
			ID:      chat.ID,
			Title:   chat.Title,
			Creator: chat.Creator,
			Raw:     c,
		}
	case *tg.Channel:
		left := LeftChat{
			Kind:      LeftKindChannel,
			ID:        chat.ID,
			Title:     chat.Title,
			Username:  chat.Username,
			Creator:   chat.Creator,
			Megagroup: chat.Megagroup,
			Gigagroup: chat.Gigagroup,
			Broadcast: chat.Broadcast,
			Raw:       c,
		}
		if hash, ok := chat.GetAccessHash(); ok {
			left.AccessHash = &hash
		}
		return left
	default:
		return LeftChat{Kind: LeftKindForbidden, ID: c.GetID(), Raw: c}
	}
}
