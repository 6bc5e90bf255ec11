package analyze

import (
	"context"
	"errors"
)

// WithTakeout runs fn inside a takeout session. The session is finished exactly
// once after fn returns or panics, successfully only when fn returned nil.
// Open errors are returned as is, so a *tgdata.CooldownError stays visible.
func WithTakeout(ctx context.Context, svc TakeoutService, fn func(ctx context.Context, takeoutID int64) error) (err error) {
	takeoutID, err := svc.OpenTakeout(ctx)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		// The session must be finished even when ctx was cancelled.
		if closeErr := svc.CloseTakeout(context.WithoutCancel(ctx), takeoutID, success); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if err = fn(ctx, takeoutID); err != nil {
		return err
	}
	success = true
	return nil
}
