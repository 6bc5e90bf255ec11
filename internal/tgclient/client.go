package tgclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrNotAuthorized is returned when the stored session is missing or revoked.
var ErrNotAuthorized = errors.New("not authorized, please run 'login' command first")

// ErrMissingCredentials is returned when the API ID or API hash is not set.
var ErrMissingCredentials = errors.New("telegram API ID and API hash are required (--api-id and --api-hash)")

const maxFloodWait = 60 * time.Second

// Config holds Telegram API credentials and the session location.
type Config struct {
	APIID   int
	APIHash string
	// SessionPath overrides the default session storage. Empty uses the
	// platform default.
	SessionPath string
}

func (c *Config) validate() error {
	if c.APIID == 0 || c.APIHash == "" {
		return ErrMissingCredentials
	}
	return nil
}

// userAuthenticator implements auth.UserAuthenticator
type userAuthenticator struct {
	phone string
	in    *bufio.Reader
	out   io.Writer
}

func (a userAuthenticator) Phone(_ context.Context) (string, error) {
	return a.phone, nil
}

func (a userAuthenticator) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	fmt.Fprint(a.out, "Enter login code: ")
	code, err := a.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading code: %w", err)
	}
	return strings.TrimSpace(code), nil
}

func (a userAuthenticator) Password(_ context.Context) (string, error) {
	fmt.Fprint(a.out, "Enter 2FA password: ")

	// Use hidden input if running in a real terminal, otherwise fall back to plain input
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(password), nil
	}

	password, err := a.in.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(password), nil
}

func (a userAuthenticator) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a userAuthenticator) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, fmt.Errorf("sign up is not supported")
}

// CreateClient creates a new Telegram client with session storage and flood wait handling.
// Returns the client and a floodwait.Waiter that should wrap the client.Run() call.
func CreateClient(cfg *Config, log *zap.Logger) (*telegram.Client, *floodwait.Waiter) {
	if log == nil {
		log = zap.NewNop()
	}
	waiter := floodwait.NewWaiter().WithMaxWait(maxFloodWait)

	client := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: NewSessionStorage(cfg.SessionPath),
		Middlewares:    []telegram.Middleware{waiter},
		Logger:         log.Named("telegram"),
	})

	return client, waiter
}

// Run connects to Telegram and calls fn with an authorized client.
// ErrNotAuthorized is returned when no valid session is stored.
func Run(ctx context.Context, cfg *Config, log *zap.Logger, fn func(ctx context.Context, client *telegram.Client) error) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	client, waiter := CreateClient(cfg, log)

	// waiter.Run wraps a client.Run to handle FLOOD_WAIT errors automatically
	return waiter.Run(ctx, func(ctx context.Context) error {
		return client.Run(ctx, func(ctx context.Context) error {
			status, err := client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("checking auth status: %w", err)
			}
			if !status.Authorized {
				return ErrNotAuthorized
			}
			return fn(ctx, client)
		})
	})
}

// Login performs interactive sign-in to Telegram
func Login(ctx context.Context, cfg *Config, log *zap.Logger, phone string, in io.Reader, out io.Writer) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	client, waiter := CreateClient(cfg, log)

	err := waiter.Run(ctx, func(ctx context.Context) error {
		return client.Run(ctx, func(ctx context.Context) error {
			status, err := client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("checking auth status: %w", err)
			}

			if status.Authorized {
				user, err := client.Self(ctx)
				if err == nil {
					fmt.Fprintf(out, "Already logged in as %s\n", AccountName(user))
				}
				return nil
			}

			flow := auth.NewFlow(
				userAuthenticator{phone: phone, in: bufio.NewReader(in), out: out},
				auth.SendCodeOptions{},
			)

			if err := flow.Run(ctx, client.Auth()); err != nil {
				return fmt.Errorf("running auth flow: %w", err)
			}

			user, err := client.Self(ctx)
			if err != nil {
				return fmt.Errorf("getting user info: %w", err)
			}

			fmt.Fprintf(out, "Logged in as %s\n", AccountName(user))
			fmt.Fprintln(out, "You can now run the analyze command.")

			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	return nil
}

// Logout logs out from Telegram and wipes the stored session.
func Logout(ctx context.Context, cfg *Config, log *zap.Logger, out io.Writer) error {
	if log == nil {
		log = zap.NewNop()
	}
	err := Run(ctx, cfg, log, func(ctx context.Context, client *telegram.Client) error {
		if _, err := client.API().AuthLogOut(ctx); err != nil {
			return fmt.Errorf("calling auth logout: %w", err)
		}

		if err := NewSessionStorage(cfg.SessionPath).DeleteSession(); err != nil {
			log.Warn("Failed to wipe session", zap.Error(err))
		}

		fmt.Fprintln(out, "Successfully logged out from Telegram.")
		return nil
	})
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	return nil
}
