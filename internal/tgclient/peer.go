package tgclient

import (
	"github.com/gotd/td/tg"
)

// channelIDPrefix is the offset Bot API style IDs add to channel IDs.
const channelIDPrefix = 1000000000000

// ChannelID converts a channel ID to the MTProto format.
//
// Telegram uses different ID formats:
//   - MTProto API uses raw channel ID (e.g., 1234567890)
//   - Bot API / user-facing format adds -100 prefix (e.g., -1001234567890)
//
// Raw IDs are returned unchanged.
func ChannelID(id int64) int64 {
	if id >= 0 {
		return id
	}
	channelID := -id // Remove minus sign: -(-1001234567890) = 1001234567890
	if channelID > channelIDPrefix {
		// Has -100 prefix, remove it: 1001234567890 - 1000000000000 = 1234567890
		channelID -= channelIDPrefix
	}
	return channelID
}

// InputChannel builds an input channel. A missing access hash is sent as zero.
func InputChannel(id int64, accessHash *int64) *tg.InputChannel {
	return &tg.InputChannel{
		ChannelID:  id,
		AccessHash: hashOrZero(accessHash),
	}
}

// InputPeer builds an input peer for a basic chat or a channel.
func InputPeer(channel bool, id int64, accessHash *int64) tg.InputPeerClass {
	if !channel {
		return &tg.InputPeerChat{ChatID: id}
	}
	return &tg.InputPeerChannel{
		ChannelID:  id,
		AccessHash: hashOrZero(accessHash),
	}
}

func hashOrZero(accessHash *int64) int64 {
	if accessHash == nil {
		return 0
	}
	return *accessHash
}
