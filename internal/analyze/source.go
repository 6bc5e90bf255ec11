package analyze

import (
	"context"
	"iter"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

// JoinedSource lists joined dialogs and samples their history.
type JoinedSource interface {
	Dialogs(ctx context.Context) iter.Seq2[tgdata.Dialog, error]
	Messages(ctx context.Context, chat tgdata.ChatRef, limit int) ([]messages.Message, error)
}

// LeftSource lists left chats and samples their history through a takeout session.
type LeftSource interface {
	LeftChats(ctx context.Context, takeoutID int64) ([]tgdata.LeftChat, error)
	TakeoutMessages(ctx context.Context, takeoutID int64, chat tgdata.ChatRef, limit int) ([]messages.Message, error)
}

// TakeoutService opens and finishes takeout sessions.
type TakeoutService interface {
	OpenTakeout(ctx context.Context) (int64, error)
	CloseTakeout(ctx context.Context, takeoutID int64, success bool) error
}

// InviteSource exports invite links.
type InviteSource interface {
	InviteLink(ctx context.Context, chat tgdata.ChatRef) (string, error)
}

// Service is everything a full analysis run needs.
type Service interface {
	JoinedSource
	LeftSource
	TakeoutService
	InviteSource
}

var _ Service = (*tgdata.Service)(nil)
