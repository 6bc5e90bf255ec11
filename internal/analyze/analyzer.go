package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
)

// Scope selects which passes a run performs.
type Scope struct {
	Joined bool
	Left   bool
	// Title keeps only verdicts whose chat title fuzzy-matches it. Empty keeps all.
	Title string
}

// Report is the result of one analysis run.
type Report struct {
	RunID    string    `json:"run_id" yaml:"run_id"`
	Verdicts []Verdict `json:"verdicts" yaml:"verdicts"`
}

// Analyzer runs the joined and left passes and enriches their verdicts.
type Analyzer struct {
	svc Service
	log *zap.Logger
	clf Classifier
	now func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClassifier sets the classifier. Time-of-day elapsed time is used by default.
func WithClassifier(clf Classifier) Option {
	return func(a *Analyzer) {
		a.clf = clf
	}
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// New creates a new Analyzer.
func New(svc Service, log *zap.Logger, opts ...Option) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Analyzer{
		svc: svc,
		log: log,
		clf: NewClassifier(false),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs the passes selected by scope in order, joined first.
//
// A joined pass error or a failure to open the takeout session aborts the run
// without a report. A left pass error is returned together with a report of
// everything gathered so far.
func (a *Analyzer) Run(ctx context.Context, scope Scope) (*Report, error) {
	runID := uuid.NewString()
	log := a.log.With(zap.String("run_id", runID))
	report := &Report{RunID: runID}
	now := a.now().UTC()

	if scope.Joined {
		log.Info("Analyzing joined chats")
		verdicts, err := Joined(ctx, a.svc, a.clf, now, log.Named("joined"))
		if err != nil {
			return nil, fmt.Errorf("analyzing joined chats: %w", err)
		}
		report.Verdicts = append(report.Verdicts, verdicts...)
	}

	var leftErr error
	if scope.Left {
		log.Info("Analyzing left chats")
		var (
			verdicts []Verdict
			opened   bool
		)
		err := WithTakeout(ctx, a.svc, func(ctx context.Context, takeoutID int64) error {
			opened = true
			var err error
			verdicts, err = Left(ctx, a.svc, takeoutID, a.clf, now, log.Named("left"))
			if err != nil {
				log.Error("Left chats pass failed", zap.Error(err))
			}
			return err
		})
		if err != nil {
			if !opened {
				return nil, err
			}
			leftErr = fmt.Errorf("analyzing left chats: %w", err)
		}
		report.Verdicts = append(report.Verdicts, verdicts...)
	}

	report.Verdicts = filterByTitle(report.Verdicts, scope.Title)
	a.attachInviteLinks(ctx, log, report.Verdicts)

	log.Info("Analysis finished", zap.Int("verdicts", len(report.Verdicts)))
	return report, leftErr
}

func filterByTitle(verdicts []Verdict, title string) []Verdict {
	if title == "" {
		return verdicts
	}
	filtered := verdicts[:0]
	for _, v := range verdicts {
		if fuzzy.MatchNormalizedFold(title, v.Chat.Title) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func (a *Analyzer) attachInviteLinks(ctx context.Context, log *zap.Logger, verdicts []Verdict) {
	for i := range verdicts {
		v := &verdicts[i]
		if v.Reason == ReasonEmptyRecord {
			continue
		}
		link, err := a.svc.InviteLink(ctx, v.Chat)
		if err != nil {
			log.Debug("Invite link not available", zap.Int64("chat_id", v.Chat.ID), zap.Error(err))
			continue
		}
		v.InviteLink = link
	}
}
