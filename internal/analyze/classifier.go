package analyze

import (
	"time"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

const (
	// StaleDays is the base number of days after which a last message is old.
	StaleDays = 30
	// CadenceGapDays is the base number of days between two messages that counts as a gap.
	CadenceGapDays = 30
	// ChannelMultiplier scales both thresholds for channel-backed chats.
	ChannelMultiplier = 2
	// CadenceGapLimit is the number of gaps that marks a sample as stale.
	CadenceGapLimit = messages.SampleLimit / 3
)

const day = 24 * time.Hour

// Thresholds are the day limits used by the staleness tests.
type Thresholds struct {
	StaleDays      int
	CadenceGapDays int
}

// ThresholdsFor returns the thresholds for a chat kind.
func ThresholdsFor(kind tgdata.Kind) Thresholds {
	if kind.IsChannel() {
		return LeftThresholds()
	}
	return Thresholds{StaleDays: StaleDays, CadenceGapDays: CadenceGapDays}
}

// LeftThresholds returns the thresholds for left chats, which are always doubled.
func LeftThresholds() Thresholds {
	return Thresholds{
		StaleDays:      StaleDays * ChannelMultiplier,
		CadenceGapDays: CadenceGapDays * ChannelMultiplier,
	}
}

// ElapsedFunc measures the time from one timestamp to another.
type ElapsedFunc func(from, to time.Time) time.Duration

// TimeOfDay compares only the UTC clock components of both timestamps.
// The result is always within (-24h, 24h), so it never spans a whole day.
func TimeOfDay(from, to time.Time) time.Duration {
	return sinceMidnight(to) - sinceMidnight(from)
}

// Calendar returns the full difference between both timestamps.
func Calendar(from, to time.Time) time.Duration {
	return to.Sub(from)
}

func sinceMidnight(t time.Time) time.Duration {
	t = t.UTC()
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

// wholeDays truncates toward zero.
func wholeDays(d time.Duration) int {
	return int(d / day)
}

// Classifier holds the staleness predicates.
type Classifier struct {
	Elapsed ElapsedFunc
}

// NewClassifier creates a Classifier. Calendar elapsed time is used when
// calendar is set, time-of-day otherwise.
func NewClassifier(calendar bool) Classifier {
	if calendar {
		return Classifier{Elapsed: Calendar}
	}
	return Classifier{Elapsed: TimeOfDay}
}

func (c Classifier) days(from, to time.Time) int {
	elapsed := c.Elapsed
	if elapsed == nil {
		elapsed = TimeOfDay
	}
	return wholeDays(elapsed(from, to))
}

// LastMessageOld reports whether more than staleDays whole days passed since last.
func (c Classifier) LastMessageOld(last messages.Message, now time.Time, staleDays int) bool {
	return c.days(last.Date, now) > staleDays
}

// IsSampleTooSmall reports whether the sample has fewer than two messages.
func IsSampleTooSmall(sample []messages.Message) bool {
	return len(sample) < 2
}

// HasCadenceGap reports whether at least CadenceGapLimit consecutive pairs of
// the newest-first sample are gapDays or more apart.
func (c Classifier) HasCadenceGap(sample []messages.Message, gapDays int) bool {
	if IsSampleTooSmall(sample) {
		return false
	}

	gaps := 0
	for i := len(sample) - 1; i > 0; i-- {
		older, newer := sample[i], sample[i-1]
		if c.days(older.Date, newer.Date) >= gapDays {
			gaps++
			if gaps >= CadenceGapLimit {
				return true
			}
		}
	}
	return false
}
