package analyze

import (
	"fmt"
	"strings"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

// Subject is what a verdict is about.
type Subject string

const (
	SubjectJoinedChat  Subject = "joined-chat"
	SubjectLeftChat    Subject = "left-chat"
	SubjectLeftChannel Subject = "left-channel"
)

// Reason is why a chat was flagged.
type Reason string

const (
	ReasonLastMessageOld  Reason = "last-message-old"
	ReasonMessagesEmpty   Reason = "messages-empty"
	ReasonMessagesTooFew  Reason = "messages-too-few"
	ReasonLastMessagesOld Reason = "last-messages-old"
	ReasonCreatorAndLeft  Reason = "creator-and-left"
	ReasonEmptyRecord     Reason = "empty-record"
)

// Verdict flags one chat as likely abandoned.
type Verdict struct {
	Subject    Subject            `json:"subject" yaml:"subject"`
	Reason     Reason             `json:"reason" yaml:"reason"`
	Chat       tgdata.ChatRef     `json:"chat" yaml:"chat"`
	Message    *messages.Message  `json:"message,omitempty" yaml:"message,omitempty"`
	Messages   []messages.Message `json:"messages,omitempty" yaml:"messages,omitempty"`
	InviteLink string             `json:"invite_link,omitempty" yaml:"invite_link,omitempty"`
}

var labels = map[Reason]string{
	ReasonLastMessageOld:  "Last message too old",
	ReasonLastMessagesOld: "Last messages too old",
	ReasonMessagesEmpty:   "Messages empty",
	ReasonMessagesTooFew:  "Messages count too small",
	ReasonCreatorAndLeft:  "Left as creator",
}

// Label returns the display prefix of the reason. Empty records have none.
func (v Verdict) Label() string {
	return labels[v.Reason]
}

// Identity renders the chat the verdict is about.
func (v Verdict) Identity() string {
	c := v.Chat
	switch {
	case v.Reason == ReasonEmptyRecord:
		return fmt.Sprintf("Empty(%d)", c.ID)
	case v.Subject == SubjectLeftChat:
		return fmt.Sprintf("Chat(%d, title=%q)", c.ID, c.Title)
	case v.Subject == SubjectLeftChannel:
		return "Channel" + channelFields(c)
	default:
		return string(c.Kind) + channelFields(c)
	}
}

func channelFields(c tgdata.ChatRef) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d", c.ID)
	if c.Username != "" {
		fmt.Fprintf(&sb, ", @%s", c.Username)
	}
	fmt.Fprintf(&sb, ", title=%q, access_hash=", c.Title)
	if c.AccessHash != nil {
		fmt.Fprintf(&sb, "%d", *c.AccessHash)
	} else {
		sb.WriteString("unknown")
	}
	sb.WriteString(")")
	return sb.String()
}

// Evidence renders the messages attached to the verdict, or an empty string.
func (v Verdict) Evidence() string {
	switch {
	case v.Message != nil:
		return messages.Format(*v.Message)
	case len(v.Messages) > 0:
		return messages.FormatBatch(v.Messages)
	default:
		return ""
	}
}

// Header renders the label, identity and invite link on one line.
func (v Verdict) Header() string {
	return v.StyledHeader(nil, nil)
}

// RenderFunc decorates a piece of text, e.g. lipgloss.Style.Render.
type RenderFunc func(strs ...string) string

// StyledHeader is Header with the "Label:" prefix and the invite link passed
// through the given render funcs. Nil funcs leave the text as is.
func (v Verdict) StyledHeader(label, link RenderFunc) string {
	header := v.Identity()
	if l := v.Label(); l != "" {
		header = apply(label, l+":") + " " + header
	}
	if v.InviteLink != "" {
		header += " (" + apply(link, v.InviteLink) + ")"
	}
	return header
}

func apply(render RenderFunc, s string) string {
	if render == nil {
		return s
	}
	return render(s)
}

func (v Verdict) String() string {
	if evidence := v.Evidence(); evidence != "" {
		return v.Header() + "\n" + evidence
	}
	return v.Header()
}
