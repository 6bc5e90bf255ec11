package tgdata

import (
	"context"
	"fmt"
	"iter"

	"github.com/gotd/td/telegram/query"
	"github.com/gotd/td/telegram/query/dialogs"
	"github.com/gotd/td/tg"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
)

const dialogsBatchSize = 100

// Dialogs returns the joined dialogs, fetching one page at a time while the
// sequence is consumed. Every range over the sequence starts from the first page.
// A listing error is yielded once as the last element.
func (s *Service) Dialogs(ctx context.Context) iter.Seq2[Dialog, error] {
	return func(yield func(Dialog, error) bool) {
		it := query.GetDialogs(s.raw).BatchSize(dialogsBatchSize).Iter()
		for it.Next(ctx) {
			d, ok := dialogFromElem(it.Value())
			if !ok {
				continue
			}
			if !yield(d, nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Dialog{}, fmt.Errorf("listing dialogs: %w", err))
		}
	}
}

func dialogFromElem(elem dialogs.Elem) (Dialog, bool) {
	dlg, ok := elem.Dialog.(*tg.Dialog)
	if !ok {
		return Dialog{}, false
	}

	d := Dialog{
		Chat: chatRef(elem.Peer, dlg.Peer, elem.Entities.Users(), elem.Entities.Chats(), elem.Entities.Channels()),
	}
	if elem.Last != nil {
		if m, ok := messages.FromClass(elem.Last); ok {
			d.Last = &m
		}
	}
	return d, true
}

// chatRef resolves the dialog peer. Peers gotd could not resolve into an
// input peer (e.g. groups the account was kicked from) fall back to dialogPeer.
func chatRef(
	peer tg.InputPeerClass,
	dialogPeer tg.PeerClass,
	users map[int64]*tg.User,
	chats map[int64]*tg.Chat,
	channels map[int64]*tg.Channel,
) ChatRef {
	switch p := peer.(type) {
	case *tg.InputPeerChat:
		ref := ChatRef{ID: p.ChatID, Kind: KindChat}
		if chat, ok := chats[p.ChatID]; ok {
			ref.Title = chat.Title
		}
		return ref
	case *tg.InputPeerChannel:
		if channel, ok := channels[p.ChannelID]; ok {
			return channelRef(channel)
		}
		hash := p.AccessHash
		return ChatRef{ID: p.ChannelID, AccessHash: &hash, Kind: KindBroadcast}
	case *tg.InputPeerUser:
		ref := ChatRef{ID: p.UserID, Kind: KindUser}
		if user, ok := users[p.UserID]; ok {
			ref.Username = user.Username
			if user.Bot {
				ref.Kind = KindBot
			}
		}
		return ref
	case *tg.InputPeerSelf:
		return ChatRef{Kind: KindUser}
	default:
		return dialogPeerRef(dialogPeer, chats, channels)
	}
}

func dialogPeerRef(peer tg.PeerClass, chats map[int64]*tg.Chat, channels map[int64]*tg.Channel) ChatRef {
	switch p := peer.(type) {
	case *tg.PeerChat:
		ref := ChatRef{ID: p.ChatID, Kind: KindChat}
		if chat, ok := chats[p.ChatID]; ok {
			ref.Title = chat.Title
		}
		return ref
	case *tg.PeerChannel:
		if channel, ok := channels[p.ChannelID]; ok {
			return channelRef(channel)
		}
		return ChatRef{ID: p.ChannelID, Kind: KindBroadcast}
	case *tg.PeerUser:
		return ChatRef{ID: p.UserID, Kind: KindUser}
	default:
		return ChatRef{Kind: KindUser}
	}
}

func channelRef(channel *tg.Channel) ChatRef {
	ref := ChatRef{
		ID:       channel.ID,
		Kind:     KindBroadcast,
		Title:    channel.Title,
		Username: channel.Username,
	}
	if hash, ok := channel.GetAccessHash(); ok {
		ref.AccessHash = &hash
	}
	switch {
	case channel.Megagroup:
		ref.Kind = KindMegagroup
	case channel.Gigagroup:
		ref.Kind = KindGigagroup
	}
	return ref
}
