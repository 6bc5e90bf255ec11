package tgdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
)

// Service implements the remote calls used by chat analysis and lifecycle commands.
type Service struct {
	invoker  tg.Invoker
	raw      *tg.Client
	provider *messages.Provider
}

// NewService creates a Service on top of invoker. Message history requests
// are limited to rps requests per second.
func NewService(invoker tg.Invoker, rps int) *Service {
	raw := tg.NewClient(invoker)
	return &Service{
		invoker:  invoker,
		raw:      raw,
		provider: messages.NewProvider(raw, rps),
	}
}

// Messages fetches up to limit most recent messages of a joined chat.
func (s *Service) Messages(ctx context.Context, chat ChatRef, limit int) ([]messages.Message, error) {
	return fetchSample(ctx, s.provider, chat, limit)
}

func fetchSample(ctx context.Context, p *messages.Provider, chat ChatRef, limit int) ([]messages.Message, error) {
	peer := tgclient.InputPeer(chat.Kind != KindChat, chat.ID, chat.AccessHash)
	msgs, err := p.Fetch(ctx, peer, limit)
	if err != nil {
		if isAccessDenied(err) {
			return nil, fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
		return nil, fmt.Errorf("fetching chat %d messages: %w", chat.ID, err)
	}
	return msgs, nil
}

// takeoutInvoker wraps every request into invokeWithTakeout.
type takeoutInvoker struct {
	id   int64
	next tg.Invoker
}

func (t takeoutInvoker) Invoke(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
	return t.next.Invoke(ctx, &tg.InvokeWithTakeoutRequest{
		TakeoutID: t.id,
		Query:     encodeOnly{input},
	}, output)
}

// encodeOnly adapts a request encoder to bin.Object. Requests are never decoded.
type encodeOnly struct {
	bin.Encoder
}

func (encodeOnly) Decode(*bin.Buffer) error {
	return errors.New("decoding a request is not supported")
}
