package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

func TestVerdictString(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	msg := messages.Message{ID: 7, Date: date}
	created := messages.Message{ID: 1, Date: date, Action: "messageActionChannelCreate"}

	tests := []struct {
		name string
		v    Verdict
		want string
	}{
		{
			name: "joined last message old",
			v: Verdict{
				Subject: SubjectJoinedChat,
				Reason:  ReasonLastMessageOld,
				Chat:    tgdata.ChatRef{ID: 10, AccessHash: ptr(int64(42)), Kind: tgdata.KindMegagroup, Title: "Devs", Username: "devs"},
				Message: &msg,
			},
			want: `Last message too old: Megagroup(10, @devs, title="Devs", access_hash=42)` + "\n" +
				"Msg(id=7, date=2024-01-02 03:04:05 UTC, action=none)",
		},
		{
			name: "joined messages empty",
			v: Verdict{
				Subject: SubjectJoinedChat,
				Reason:  ReasonMessagesEmpty,
				Chat:    tgdata.ChatRef{ID: 5, Kind: tgdata.KindChat, Title: "Family"},
			},
			want: `Messages empty: Chat(5, title="Family", access_hash=unknown)`,
		},
		{
			name: "joined last messages old",
			v: Verdict{
				Subject:  SubjectJoinedChat,
				Reason:   ReasonLastMessagesOld,
				Chat:     tgdata.ChatRef{ID: 6, Kind: tgdata.KindBroadcast, Title: "News"},
				Messages: []messages.Message{msg, created},
			},
			want: `Last messages too old: Broadcast(6, title="News", access_hash=unknown)` + "\n" +
				"Msg(id=7, date=2024-01-02 03:04:05 UTC, action=none), " +
				"Msg(id=1, date=2024-01-02 03:04:05 UTC, action=messageActionChannelCreate)",
		},
		{
			name: "left chat as creator",
			v: Verdict{
				Subject: SubjectLeftChat,
				Reason:  ReasonCreatorAndLeft,
				Chat:    tgdata.ChatRef{ID: 3, Kind: tgdata.KindChat, Title: "Old"},
			},
			want: `Left as creator: Chat(3, title="Old")`,
		},
		{
			name: "left channel with invite link",
			v: Verdict{
				Subject:    SubjectLeftChannel,
				Reason:     ReasonMessagesTooFew,
				Chat:       tgdata.ChatRef{ID: 4, Kind: tgdata.KindBroadcast, Title: "Feed", Username: "feed"},
				Messages:   []messages.Message{created},
				InviteLink: "https://t.me/+abc",
			},
			want: `Messages count too small: Channel(4, @feed, title="Feed", access_hash=unknown) (https://t.me/+abc)` + "\n" +
				"Msg(id=1, date=2024-01-02 03:04:05 UTC, action=messageActionChannelCreate)",
		},
		{
			name: "left channel too few without messages",
			v: Verdict{
				Subject: SubjectLeftChannel,
				Reason:  ReasonMessagesTooFew,
				Chat:    tgdata.ChatRef{ID: 8, AccessHash: ptr(int64(-3)), Kind: tgdata.KindMegagroup, Title: "Quiet"},
			},
			want: `Messages count too small: Channel(8, title="Quiet", access_hash=-3)`,
		},
		{
			name: "empty record",
			v: Verdict{
				Subject: SubjectLeftChat,
				Reason:  ReasonEmptyRecord,
				Chat:    tgdata.ChatRef{ID: 9},
			},
			want: "Empty(9)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestStyledHeader(t *testing.T) {
	brackets := func(strs ...string) string { return "[" + strs[0] + "]" }
	chat := tgdata.ChatRef{ID: 3, Kind: tgdata.KindBroadcast, Title: "News"}

	tests := []struct {
		name string
		v    Verdict
		want string
	}{
		{
			name: "label and link",
			v:    Verdict{Subject: SubjectLeftChannel, Reason: ReasonCreatorAndLeft, Chat: chat, InviteLink: "https://t.me/+abc"},
			want: `[Left as creator:] Channel(3, title="News", access_hash=unknown) ([https://t.me/+abc])`,
		},
		{
			name: "empty record has no label",
			v:    Verdict{Subject: SubjectLeftChat, Reason: ReasonEmptyRecord, Chat: tgdata.ChatRef{ID: 4}},
			want: "Empty(4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.StyledHeader(brackets, brackets))
			assert.Equal(t, tt.v.Header(), tt.v.StyledHeader(nil, nil))
		})
	}
}
