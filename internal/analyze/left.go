package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

// Left classifies the chats and channels the account has left. Records whose
// history is not accessible are skipped; other errors abort the pass and are
// returned with the verdicts gathered so far.
func Left(ctx context.Context, src LeftSource, takeoutID int64, clf Classifier, now time.Time, log *zap.Logger) ([]Verdict, error) {
	records, err := src.LeftChats(ctx, takeoutID)
	if err != nil {
		return nil, err
	}

	th := LeftThresholds()
	var verdicts []Verdict

	for i, rec := range records {
		log := log.With(zap.Int("num", i+1), zap.Int64("chat_id", rec.ID))

		subject := SubjectLeftChat
		switch rec.Kind {
		case tgdata.LeftKindEmpty:
			log.Debug("Empty record")
			verdicts = append(verdicts, Verdict{Subject: subject, Reason: ReasonEmptyRecord, Chat: rec.Ref()})
			continue
		case tgdata.LeftKindForbidden:
			log.Debug("Forbidden record skipped")
			continue
		case tgdata.LeftKindChannel:
			subject = SubjectLeftChannel
		}

		chat := rec.Ref()
		if rec.Creator {
			log.Debug("Left as creator")
			verdicts = append(verdicts, Verdict{Subject: subject, Reason: ReasonCreatorAndLeft, Chat: chat})
			continue
		}

		if rec.Kind == tgdata.LeftKindChannel {
			kind, err := rec.ChannelKind()
			if err != nil {
				return verdicts, fmt.Errorf("resolving channel %d: %w", rec.ID, err)
			}
			chat.Kind = kind
		}

		sample, err := src.TakeoutMessages(ctx, takeoutID, chat, messages.SampleLimit)
		if err != nil {
			if errors.Is(err, tgdata.ErrAccessDenied) {
				log.Debug("Messages not accessible", zap.Error(err))
				continue
			}
			return verdicts, err
		}

		if IsSampleTooSmall(sample) {
			log.Debug("Messages count too small", zap.Int("count", len(sample)))
			verdicts = append(verdicts, Verdict{Subject: subject, Reason: ReasonMessagesTooFew, Chat: chat, Messages: sample})
			continue
		}

		last, rest := sample[0], sample[1:]
		if clf.LastMessageOld(last, now, th.StaleDays) {
			log.Debug("Last message too old")
			verdicts = append(verdicts, Verdict{Subject: subject, Reason: ReasonLastMessageOld, Chat: chat, Message: &last})
			continue
		}

		if clf.HasCadenceGap(rest, th.CadenceGapDays) {
			log.Debug("Last messages too old")
			verdicts = append(verdicts, Verdict{Subject: subject, Reason: ReasonLastMessagesOld, Chat: chat, Messages: rest})
			continue
		}

		log.Debug("Chat is active")
	}

	return verdicts, nil
}
