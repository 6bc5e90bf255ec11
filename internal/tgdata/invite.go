package tgdata

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"

	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
)

// InviteLink exports an invite link for the chat. An empty link is returned
// when the account may not create invites or the chat only accepts join requests.
func (s *Service) InviteLink(ctx context.Context, chat ChatRef) (string, error) {
	res, err := s.raw.MessagesExportChatInvite(ctx, &tg.MessagesExportChatInviteRequest{
		Peer: tgclient.InputPeer(chat.Kind != KindChat, chat.ID, chat.AccessHash),
	})
	if err != nil {
		if isForbidden(err) {
			return "", nil
		}
		return "", fmt.Errorf("exporting invite link for %d: %w", chat.ID, err)
	}

	switch invite := res.(type) {
	case *tg.ChatInviteExported:
		return invite.Link, nil
	default:
		return "", nil
	}
}
