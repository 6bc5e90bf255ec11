package analyze

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

func TestWithTakeout(t *testing.T) {
	errPass := errors.New("pass failed")
	errClose := errors.New("close failed")

	tests := []struct {
		name        string
		closeErr    error
		fnErr       error
		wantErrs    []error
		wantSuccess bool
	}{
		{name: "success", wantSuccess: true},
		{name: "pass error", fnErr: errPass, wantErrs: []error{errPass}},
		{name: "close error", closeErr: errClose, wantErrs: []error{errClose}, wantSuccess: true},
		{name: "both errors", fnErr: errPass, closeErr: errClose, wantErrs: []error{errPass, errClose}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{takeoutID: 42, closeErr: tt.closeErr}
			var gotID int64

			err := WithTakeout(context.Background(), svc, func(_ context.Context, takeoutID int64) error {
				gotID = takeoutID
				return tt.fnErr
			})

			if len(tt.wantErrs) == 0 {
				require.NoError(t, err)
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
			assert.Equal(t, int64(42), gotID)
			assert.Equal(t, 1, svc.opens)
			assert.Equal(t, []bool{tt.wantSuccess}, svc.closes)
		})
	}
}

func TestWithTakeoutPanic(t *testing.T) {
	svc := &fakeService{takeoutID: 1}

	assert.Panics(t, func() {
		_ = WithTakeout(context.Background(), svc, func(context.Context, int64) error {
			panic("boom")
		})
	})
	assert.Equal(t, []bool{false}, svc.closes)
}

func TestWithTakeoutCooldown(t *testing.T) {
	svc := &fakeService{openErr: &tgdata.CooldownError{Wait: 24 * time.Hour}}
	called := false

	err := WithTakeout(context.Background(), svc, func(context.Context, int64) error {
		called = true
		return nil
	})

	var cooldown *tgdata.CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 24*time.Hour, cooldown.Wait)
	assert.False(t, called)
	assert.Empty(t, svc.closes)
}

func TestWithTakeoutCancelledContext(t *testing.T) {
	svc := &fakeService{takeoutID: 1}
	ctx, cancel := context.WithCancel(context.Background())

	err := WithTakeout(ctx, svc, func(ctx context.Context, _ int64) error {
		cancel()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []bool{false}, svc.closes)
}
