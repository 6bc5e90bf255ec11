package analyze

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
)

// Joined classifies every joined group and channel. Direct chats with users
// and bots are skipped. Any error aborts the pass.
func Joined(ctx context.Context, src JoinedSource, clf Classifier, now time.Time, log *zap.Logger) ([]Verdict, error) {
	var verdicts []Verdict

	num := 0
	for dialog, err := range src.Dialogs(ctx) {
		if err != nil {
			return nil, err
		}
		num++
		chat := dialog.Chat
		if chat.Kind.IsUser() {
			continue
		}
		log := log.With(zap.Int("num", num), zap.Int64("chat_id", chat.ID))

		if dialog.Last == nil {
			log.Debug("No last message")
			verdicts = append(verdicts, Verdict{Subject: SubjectJoinedChat, Reason: ReasonMessagesEmpty, Chat: chat})
			continue
		}

		th := ThresholdsFor(chat.Kind)
		if clf.LastMessageOld(*dialog.Last, now, th.StaleDays) {
			log.Debug("Last message too old")
			last := *dialog.Last
			verdicts = append(verdicts, Verdict{Subject: SubjectJoinedChat, Reason: ReasonLastMessageOld, Chat: chat, Message: &last})
			continue
		}

		sample, err := src.Messages(ctx, chat, messages.SampleLimit)
		if err != nil {
			return nil, err
		}

		if IsSampleTooSmall(sample) {
			log.Debug("Messages count too small", zap.Int("count", len(sample)))
			verdicts = append(verdicts, Verdict{Subject: SubjectJoinedChat, Reason: ReasonMessagesTooFew, Chat: chat, Messages: sample})
			continue
		}

		if clf.HasCadenceGap(sample, th.CadenceGapDays) {
			log.Debug("Last messages too old")
			verdicts = append(verdicts, Verdict{Subject: SubjectJoinedChat, Reason: ReasonLastMessagesOld, Chat: chat, Messages: sample})
			continue
		}

		log.Debug("Chat is active")
	}

	return verdicts, nil
}
