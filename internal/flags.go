package internal

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

const (
	flagAPIID           = "api-id"
	flagAPIHash         = "api-hash"
	flagSessionPath     = "session-path"
	flagLogLevel        = "log-level"
	flagLogFormat       = "log-format"
	flagPhone           = "phone"
	flagJoined          = "joined"
	flagLeft            = "left"
	flagCalendarElapsed = "calendar-elapsed"
	flagTitle           = "title"
	flagRPS             = "rps"
	flagOutput          = "output"
	flagID              = "id"
	flagAccessHash      = "access-hash"
)

func apiIDFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    flagAPIID,
		Usage:   "Telegram API ID",
		Sources: cli.EnvVars("TELEGRAM_API_ID"),
	}
}

func apiHashFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagAPIHash,
		Usage:   "Telegram API Hash",
		Sources: cli.EnvVars("TELEGRAM_API_HASH"),
	}
}

func sessionPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagSessionPath,
		Usage:   "Session file path (default: Keychain on macOS, XDG state directory elsewhere)",
		Sources: cli.EnvVars("TELEGRAM_SESSION_PATH"),
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{apiIDFlag(), apiHashFlag(), sessionPathFlag()}
}

func logLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagLogLevel,
		Value:   "info",
		Usage:   "Log level: debug, info, warn or error",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Action: func(_ context.Context, _ *cli.Command, value string) error {
			if _, err := zapcore.ParseLevel(value); err != nil {
				return fmt.Errorf("invalid log level %q: %w", value, err)
			}
			return nil
		},
	}
}

func logFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagLogFormat,
		Value:   logFormatConsole,
		Usage:   "Log format: 'console' or 'json'",
		Sources: cli.EnvVars("LOG_FORMAT"),
		Action: func(_ context.Context, _ *cli.Command, value string) error {
			return validateChoice("log format", value, logFormatConsole, logFormatJSON)
		},
	}
}

func phoneFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     flagPhone,
		Aliases:  []string{"p"},
		Usage:    "Phone number with country code (e.g., +1234567890)",
		Required: true,
	}
}

func joinedFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    flagJoined,
		Aliases: []string{"j"},
		Usage:   "Analyze chats the account is a member of",
	}
}

func leftFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    flagLeft,
		Aliases: []string{"l"},
		Usage:   "Analyze chats and channels the account has left (opens a takeout session)",
	}
}

func calendarElapsedFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  flagCalendarElapsed,
		Usage: "Compare full timestamps instead of the time of day only",
	}
}

func titleFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  flagTitle,
		Usage: "Only report chats whose title fuzzy-matches this query",
	}
}

func rpsFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    flagRPS,
		Value:   1,
		Usage:   "Maximum message history requests per second",
		Sources: cli.EnvVars("TELEGRAM_RPS"),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Value:   outputText,
		Usage:   "Output format: 'text', 'json' or 'yaml'",
		Action: func(_ context.Context, _ *cli.Command, value string) error {
			return validateChoice("output format", value, outputText, outputJSON, outputYAML)
		},
	}
}

func idFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:     flagID,
		Aliases:  []string{"i"},
		Usage:    "Channel or supergroup ID",
		Required: true,
	}
}

func accessHashFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:    flagAccessHash,
		Aliases: []string{"a"},
		Usage:   "Channel access hash",
	}
}

func validateChoice(name, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, expected one of %v", name, value, choices)
}
