package internal

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/analyze"
	"github.com/Desiders/tg-old-chats-manager/internal/messages"
	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := New(strings.NewReader(""), &out, &errOut)
	err := app.Run(context.Background(), append([]string{serviceName}, args...))
	return out.String(), err
}

func TestAnalyzeWithoutScope(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: outputText, want: ""},
		{format: outputJSON, want: "[]\n"},
		{format: outputYAML, want: "[]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runApp(t, "analyze", "--output", tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "output format", args: []string{"analyze", "--api-id", "1", "--api-hash", "hash", "--output", "xml"}},
		{name: "log level", args: []string{"--log-level", "loud", "analyze", "--api-id", "1", "--api-hash", "hash"}},
		{name: "log format", args: []string{"--log-format", "logfmt", "analyze", "--api-id", "1", "--api-hash", "hash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

// stubService implements analyze.Service with no chats.
type stubService struct {
	openErr error
	closes  int
}

func (s *stubService) Dialogs(context.Context) iter.Seq2[tgdata.Dialog, error] {
	return func(func(tgdata.Dialog, error) bool) {}
}

func (s *stubService) Messages(context.Context, tgdata.ChatRef, int) ([]messages.Message, error) {
	return nil, nil
}

func (s *stubService) LeftChats(context.Context, int64) ([]tgdata.LeftChat, error) {
	return nil, nil
}

func (s *stubService) TakeoutMessages(context.Context, int64, tgdata.ChatRef, int) ([]messages.Message, error) {
	return nil, nil
}

func (s *stubService) OpenTakeout(context.Context) (int64, error) {
	return 1, s.openErr
}

func (s *stubService) CloseTakeout(context.Context, int64, bool) error {
	s.closes++
	return nil
}

func (s *stubService) InviteLink(context.Context, tgdata.ChatRef) (string, error) {
	return "", nil
}

func stubConnector(svc analyze.Service) analyzeConnector {
	return func(ctx context.Context, _ *tgclient.Config, _ *zap.Logger, _ int,
		fn func(ctx context.Context, svc analyze.Service) error,
	) error {
		return fn(ctx, svc)
	}
}

func TestAnalyzeCooldownExitCode(t *testing.T) {
	svc := &stubService{openErr: &tgdata.CooldownError{Wait: 3 * time.Hour, Err: errors.New("TAKEOUT_INIT_DELAY_10800")}}
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(""), &out, &errOut, stubConnector(svc))
	var handled error
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, err error) {
		handled = err
	}

	err := app.Run(context.Background(), []string{serviceName, "analyze", "--left"})
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr), "error %v is not an exit coder", err)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "3h0m0s")
	assert.Equal(t, err, handled)
	assert.Zero(t, svc.closes)
	assert.Empty(t, out.String())
}

func TestAnalyzeWithoutCredentials(t *testing.T) {
	_, err := runApp(t, "analyze", "--joined")
	assert.ErrorIs(t, err, tgclient.ErrMissingCredentials)
}
