package tgdata

import (
	"github.com/gotd/td/tg"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
)

// Kind is the packed type of a chat.
type Kind string

const (
	KindUser      Kind = "User"
	KindBot       Kind = "Bot"
	KindChat      Kind = "Chat"
	KindMegagroup Kind = "Megagroup"
	KindBroadcast Kind = "Broadcast"
	KindGigagroup Kind = "Gigagroup"
)

// IsUser reports whether the kind is a direct user chat.
func (k Kind) IsUser() bool {
	return k == KindUser || k == KindBot
}

// IsChannel reports whether the kind is backed by a channel.
func (k Kind) IsChannel() bool {
	switch k {
	case KindMegagroup, KindBroadcast, KindGigagroup:
		return true
	default:
		return false
	}
}

// ChatRef identifies a chat together with the display data retained for it.
type ChatRef struct {
	ID         int64  `json:"id" yaml:"id"`
	AccessHash *int64 `json:"access_hash,omitempty" yaml:"access_hash,omitempty"`
	Kind       Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
}

// Dialog is a joined chat together with its last known message.
type Dialog struct {
	Chat ChatRef
	Last *messages.Message // nil when the dialog has no last message
}

// LeftKind tags the variant of a left chat record.
type LeftKind int

const (
	LeftKindEmpty LeftKind = iota
	LeftKindForbidden
	LeftKindChat
	LeftKindChannel
)

// LeftChat is a chat or channel the account has left.
type LeftChat struct {
	Kind       LeftKind
	ID         int64
	AccessHash *int64
	Title      string
	Username   string
	Creator    bool
	Megagroup  bool
	Gigagroup  bool
	Broadcast  bool
	Raw        tg.ChatClass
}

// ChannelKind resolves the packed type of a left channel.
func (c LeftChat) ChannelKind() (Kind, error) {
	switch {
	case c.Megagroup:
		return KindMegagroup, nil
	case c.Gigagroup:
		return KindGigagroup, nil
	case c.Broadcast:
		return KindBroadcast, nil
	default:
		return "", ErrUnknownChannelKind
	}
}

// Ref returns the identity of the record. The kind of a channel is left
// empty when its flags do not resolve to a known channel type.
func (c LeftChat) Ref() ChatRef {
	ref := ChatRef{
		ID:         c.ID,
		AccessHash: c.AccessHash,
		Title:      c.Title,
		Username:   c.Username,
	}
	switch c.Kind {
	case LeftKindChat:
		ref.Kind = KindChat
	case LeftKindChannel:
		ref.Kind, _ = c.ChannelKind()
	}
	return ref
}
