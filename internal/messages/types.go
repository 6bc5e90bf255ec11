package messages

import (
	"time"

	"github.com/gotd/td/tg"
)

// SampleLimit is the size of the message window fetched per chat.
const SampleLimit = 15

// Message represents a Telegram message reduced to what the staleness heuristics need.
type Message struct {
	ID     int       `json:"id" yaml:"id"`
	Date   time.Time `json:"date" yaml:"date"`
	Action string    `json:"action,omitempty" yaml:"action,omitempty"` // service action type name, empty for regular messages
	// Original message for advanced use cases
	Raw tg.MessageClass `json:"-" yaml:"-"`
}
