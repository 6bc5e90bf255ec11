package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/tg"
	"go.uber.org/ratelimit"
)

// Provider fetches bounded message samples from Telegram with rate limiting.
type Provider struct {
	client  *tg.Client
	limiter ratelimit.Limiter
}

// NewProvider creates a new message provider limited to rps history requests per second.
func NewProvider(client *tg.Client, rps int) *Provider {
	if rps <= 0 {
		rps = 1
	}
	return &Provider{
		client:  client,
		limiter: ratelimit.New(rps),
	}
}

// WithClient returns a provider that sends requests through client
// while sharing the rate limiter of p. Used to route history requests
// through a takeout session.
func (p *Provider) WithClient(client *tg.Client) *Provider {
	return &Provider{
		client:  client,
		limiter: p.limiter,
	}
}

// Fetch retrieves up to limit most recent messages of peer, newest first.
// A non-positive limit fetches SampleLimit messages.
func (p *Provider) Fetch(ctx context.Context, peer tg.InputPeerClass, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = SampleLimit
	}

	p.limiter.Take()

	history, err := p.client.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer:  peer,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("getting messages: %w", err)
	}

	return processHistory(history)
}

func processHistory(history tg.MessagesMessagesClass) ([]Message, error) {
	var messages []tg.MessageClass

	switch hist := history.(type) {
	case *tg.MessagesMessages:
		messages = hist.Messages
	case *tg.MessagesMessagesSlice:
		messages = hist.Messages
	case *tg.MessagesChannelMessages:
		messages = hist.Messages
	default:
		return nil, fmt.Errorf("unexpected response type: %T", history)
	}

	result := make([]Message, 0, len(messages))
	for _, msgClass := range messages {
		if m, ok := FromClass(msgClass); ok {
			result = append(result, m)
		}
	}
	return result, nil
}

// FromClass converts a raw message. Empty messages are reported as not ok.
func FromClass(msg any) (Message, bool) {
	switch m := msg.(type) {
	case *tg.Message:
		return Message{
			ID:   m.ID,
			Date: unixDate(m.Date),
			Raw:  m,
		}, true
	case *tg.MessageService:
		return Message{
			ID:     m.ID,
			Date:   unixDate(m.Date),
			Action: actionName(m.Action),
			Raw:    m,
		}, true
	default:
		return Message{}, false
	}
}

func actionName(action tg.MessageActionClass) string {
	if action == nil {
		return ""
	}
	return action.TypeName()
}

func unixDate(date int) time.Time {
	return time.Unix(int64(date), 0).UTC()
}
