package tgclient

import (
	"context"
	"errors"
	"testing"

	"github.com/gotd/td/telegram"
)

func TestRunMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty", cfg: Config{}},
		{name: "no hash", cfg: Config{APIID: 1}},
		{name: "no id", cfg: Config{APIHash: "hash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			err := Run(context.Background(), &tt.cfg, nil, func(context.Context, *telegram.Client) error {
				called = true
				return nil
			})
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Run() error = %v, want ErrMissingCredentials", err)
			}
			if called {
				t.Error("Run() called fn without credentials")
			}
		})
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	err := Login(context.Background(), &Config{}, nil, "+1234567890", nil, nil)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Login() error = %v, want ErrMissingCredentials", err)
	}
}
