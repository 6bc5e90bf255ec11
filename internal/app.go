package internal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gotd/td/telegram"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/analyze"
	"github.com/Desiders/tg-old-chats-manager/internal/server"
	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
	"github.com/Desiders/tg-old-chats-manager/internal/tools"
)

// Version contains semantic version number of application.
var Version = "dev"

const serviceName = "tg-old-chats-manager"

func clientConfig(cmd *cli.Command) *tgclient.Config {
	return &tgclient.Config{
		APIID:       cmd.Int(flagAPIID),
		APIHash:     cmd.String(flagAPIHash),
		SessionPath: cmd.String(flagSessionPath),
	}
}

// analyzeConnector connects to Telegram and calls fn with the analysis service.
type analyzeConnector func(ctx context.Context, cfg *tgclient.Config, log *zap.Logger, rps int,
	fn func(ctx context.Context, svc analyze.Service) error) error

func connectAnalyze(ctx context.Context, cfg *tgclient.Config, log *zap.Logger, rps int,
	fn func(ctx context.Context, svc analyze.Service) error,
) error {
	return tgclient.Run(ctx, cfg, log, func(ctx context.Context, client *telegram.Client) error {
		return fn(ctx, tgdata.NewService(client, rps))
	})
}

// New creates a new instance of application.
func New(in io.Reader, out, errOut io.Writer) *cli.Command {
	return newApp(in, out, errOut, connectAnalyze)
}

func newApp(in io.Reader, out, errOut io.Writer, connect analyzeConnector) *cli.Command {
	log := zap.NewNop()

	return &cli.Command{
		Name:      serviceName,
		Version:   Version,
		Usage:     "Find Telegram chats that look abandoned",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			logLevelFlag(),
			logFormatFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger, err := newLogger(cmd.Root().ErrWriter, cmd.String(flagLogLevel), cmd.String(flagLogFormat))
			if err != nil {
				return ctx, err
			}
			log = logger
			return ctx, nil
		},
		After: func(_ context.Context, _ *cli.Command) error {
			_ = log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Report joined and left chats that look abandoned",
				Flags: append(credentialFlags(),
					joinedFlag(),
					leftFlag(),
					calendarElapsedFlag(),
					titleFlag(),
					rpsFlag(),
					outputFlag(),
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAnalyze(ctx, cmd, log, connect)
				},
			},
			{
				Name:  "join",
				Usage: "Join a channel or supergroup",
				Flags: append(credentialFlags(), idFlag(), accessHashFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runChannelAction(ctx, cmd, log, (*tgdata.Service).JoinChannel, "Joined channel %d\n")
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a channel or supergroup created by this account",
				Flags: append(credentialFlags(), idFlag(), accessHashFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runChannelAction(ctx, cmd, log, (*tgdata.Service).DeleteChannel, "Deleted channel %d\n")
				},
			},
			{
				Name:  "serve",
				Usage: "Run the MCP server over stdio",
				Flags: append(credentialFlags(), rpsFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					root := cmd.Root()
					srv := server.New(clientConfig(cmd), Version, cmd.Int(flagRPS), log, root.Reader, root.Writer)
					return srv.Run(ctx)
				},
			},
			{
				Name:  "login",
				Usage: "Login to Telegram",
				Flags: append(credentialFlags(), phoneFlag()),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					phone := cmd.String(flagPhone)
					if phone == "" {
						return fmt.Errorf("phone number is required")
					}
					root := cmd.Root()
					return tgclient.Login(ctx, clientConfig(cmd), log, phone, root.Reader, root.Writer)
				},
			},
			{
				Name:  "logout",
				Usage: "Logout from Telegram",
				Flags: credentialFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return tgclient.Logout(ctx, clientConfig(cmd), log, cmd.Root().Writer)
				},
			},
		},
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command, log *zap.Logger, connect analyzeConnector) error {
	scope := analyze.Scope{
		Joined: cmd.Bool(flagJoined),
		Left:   cmd.Bool(flagLeft),
		Title:  cmd.String(flagTitle),
	}
	out := cmd.Root().Writer
	format := cmd.String(flagOutput)

	if !scope.Joined && !scope.Left {
		return writeVerdicts(out, format, nil)
	}

	var (
		report *analyze.Report
		runErr error
	)
	err := connect(ctx, clientConfig(cmd), log, cmd.Int(flagRPS), func(ctx context.Context, svc analyze.Service) error {
		a := analyze.New(svc, log, analyze.WithClassifier(analyze.NewClassifier(cmd.Bool(flagCalendarElapsed))))
		report, runErr = a.Run(ctx, scope)
		return nil
	})
	if err != nil {
		return err
	}

	if report != nil {
		if err := writeVerdicts(out, format, report.Verdicts); err != nil {
			return err
		}
	}

	var cooldown *tgdata.CooldownError
	if errors.As(runErr, &cooldown) {
		return cli.Exit(cooldown.Error(), 1)
	}
	return runErr
}

type channelAction func(s *tgdata.Service, ctx context.Context, id int64, accessHash *int64) error

func runChannelAction(ctx context.Context, cmd *cli.Command, log *zap.Logger, action channelAction, done string) error {
	id := cmd.Int64(flagID)
	var accessHash *int64
	if cmd.IsSet(flagAccessHash) {
		hash := cmd.Int64(flagAccessHash)
		accessHash = &hash
	}

	err := tgclient.Run(ctx, clientConfig(cmd), log, func(ctx context.Context, client *telegram.Client) error {
		return action(tgdata.NewService(client, 1), ctx, id, accessHash)
	})

	out := cmd.Root().Writer
	switch {
	case errors.Is(err, tgdata.ErrInvalidChannel):
		_, err = fmt.Fprintln(out, tools.InvalidChannelMessage)
		return err
	case err != nil:
		return err
	default:
		_, err = fmt.Fprintf(out, done, id)
		return err
	}
}
