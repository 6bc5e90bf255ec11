package analyze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

func TestThresholdsFor(t *testing.T) {
	base := Thresholds{StaleDays: 30, CadenceGapDays: 30}
	doubled := Thresholds{StaleDays: 60, CadenceGapDays: 60}

	tests := []struct {
		kind tgdata.Kind
		want Thresholds
	}{
		{kind: tgdata.KindChat, want: base},
		{kind: tgdata.KindMegagroup, want: doubled},
		{kind: tgdata.KindBroadcast, want: doubled},
		{kind: tgdata.KindGigagroup, want: doubled},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ThresholdsFor(tt.kind), "ThresholdsFor(%q)", tt.kind)
	}
	assert.Equal(t, doubled, LeftThresholds())
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     time.Duration
	}{
		{
			name: "same day",
			from: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
			want: 150 * time.Minute,
		},
		{
			name: "days apart ignored",
			from: time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 2, 10, 1, 0, 0, 0, time.UTC),
			want: -22 * time.Hour,
		},
		{
			name: "non UTC input",
			from: time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			to:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			want: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeOfDay(tt.from, tt.to))
		})
	}
}

func TestLastMessageOld(t *testing.T) {
	calendar := NewClassifier(true)

	tests := []struct {
		name      string
		clf       Classifier
		last      time.Time
		now       time.Time
		staleDays int
		want      bool
	}{
		{name: "calendar 31 days", clf: calendar, last: daysAgo(31), now: testNow, staleDays: 30, want: true},
		{name: "calendar exactly 30 days", clf: calendar, last: daysAgo(30), now: testNow, staleDays: 30, want: false},
		{name: "calendar partial day truncated", clf: calendar, last: daysAgo(30).Add(-23 * time.Hour), now: testNow, staleDays: 30, want: false},
		{name: "calendar doubled threshold", clf: calendar, last: daysAgo(45), now: testNow, staleDays: 60, want: false},
		{
			name:      "time of day 40 days apart",
			clf:       NewClassifier(false),
			last:      time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			now:       time.Date(2024, 2, 10, 1, 0, 0, 0, time.UTC),
			staleDays: 30,
			want:      false,
		},
		{name: "zero value classifier", clf: Classifier{}, last: daysAgo(400), now: testNow, staleDays: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.clf.LastMessageOld(msgAt(1, tt.last), tt.now, tt.staleDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSampleTooSmall(t *testing.T) {
	assert.True(t, IsSampleTooSmall(nil))
	assert.True(t, IsSampleTooSmall([]messages.Message{msgAt(1, testNow)}))
	assert.False(t, IsSampleTooSmall([]messages.Message{msgAt(2, testNow), msgAt(1, daysAgo(900))}))
}

func TestHasCadenceGap(t *testing.T) {
	calendar := NewClassifier(true)
	month := 30 * day

	tests := []struct {
		name    string
		clf     Classifier
		sample  []messages.Message
		gapDays int
		want    bool
	}{
		{name: "empty", clf: calendar, gapDays: 30},
		{name: "single message", clf: calendar, sample: sampleWithGaps(testNow), gapDays: 30},
		{name: "uniform daily", clf: calendar, sample: sampleWithGaps(testNow, uniformGaps(14, day)...), gapDays: 30},
		{
			name:    "five gaps at threshold",
			clf:     calendar,
			sample:  sampleWithGaps(testNow, append(uniformGaps(5, month), uniformGaps(9, time.Hour)...)...),
			gapDays: 30,
			want:    true,
		},
		{
			name:    "four gaps",
			clf:     calendar,
			sample:  sampleWithGaps(testNow, append(uniformGaps(4, 40*day), uniformGaps(10, time.Hour)...)...),
			gapDays: 30,
		},
		{
			name:    "gaps below doubled threshold",
			clf:     calendar,
			sample:  sampleWithGaps(testNow, uniformGaps(14, 45*day)...),
			gapDays: 60,
		},
		{
			name:    "time of day never spans days",
			clf:     NewClassifier(false),
			sample:  sampleWithGaps(testNow, uniformGaps(14, 40*day)...),
			gapDays: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clf.HasCadenceGap(tt.sample, tt.gapDays))
		})
	}
}

func TestHasCadenceGapCount(t *testing.T) {
	clf := NewClassifier(true)
	for k := 0; k <= 14; k++ {
		gaps := append(uniformGaps(k, 31*day), uniformGaps(14-k, day)...)
		sample := sampleWithGaps(testNow, gaps...)
		assert.Equal(t, k >= CadenceGapLimit, clf.HasCadenceGap(sample, CadenceGapDays), "gaps=%d", k)
	}
}
