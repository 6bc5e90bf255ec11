package messages

import (
	"fmt"
	"strings"
)

// DateFormat is the timestamp format for rendered messages. Dates are rendered in UTC.
const DateFormat = "2006-01-02 15:04:05 MST"

// Format renders a message as evidence for a verdict.
// Format: Msg(id=N, date=<date>, action=<action|none>)
func Format(msg Message) string {
	action := msg.Action
	if action == "" {
		action = "none"
	}
	return fmt.Sprintf("Msg(id=%d, date=%s, action=%s)",
		msg.ID,
		msg.Date.UTC().Format(DateFormat),
		action,
	)
}

// FormatBatch renders messages in the given order separated by ", ".
func FormatBatch(messages []Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Format(msg))
	}
	return sb.String()
}
