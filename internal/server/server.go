package server

import (
	"context"
	"fmt"
	"io"

	"github.com/gotd/td/telegram"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Desiders/tg-old-chats-manager/internal/tgclient"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
	"github.com/Desiders/tg-old-chats-manager/internal/tools"
)

const serverName = "tg-old-chats-manager"

// Server exposes chat analysis and lifecycle actions as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	tgConfig  *tgclient.Config
	rps       int
	log       *zap.Logger
	stdin     io.Reader
	stdout    io.Writer
}

// New creates a new MCP server
func New(cfg *tgclient.Config, version string, rps int, log *zap.Logger, stdin io.Reader, stdout io.Writer) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)

	return &Server{
		mcpServer: mcpServer,
		tgConfig:  cfg,
		rps:       rps,
		log:       log,
		stdin:     stdin,
		stdout:    stdout,
	}
}

// Handlers returns the tool handlers backed by svc.
func Handlers(svc *tgdata.Service, log *zap.Logger) []tools.Handler {
	return []tools.Handler{
		tools.NewAnalyzeChatsHandler(svc, log.Named("analyze")),
		tools.NewJoinChatHandler(svc),
		tools.NewDeleteChatHandler(svc),
	}
}

// Run starts the MCP server over stdio
func (s *Server) Run(ctx context.Context) error {
	err := tgclient.Run(ctx, s.tgConfig, s.log, func(ctx context.Context, client *telegram.Client) error {
		svc := tgdata.NewService(client, s.rps)
		tools.RegisterTools(s.mcpServer, Handlers(svc, s.log))

		stdioServer := server.NewStdioServer(s.mcpServer)
		stdioServer.SetErrorLogger(zap.NewStdLog(s.log.Named("mcp")))

		s.log.Info("Serving MCP over stdio")
		return stdioServer.Listen(ctx, s.stdin, s.stdout)
	})
	if err != nil {
		return fmt.Errorf("running server: %w", err)
	}
	return nil
}
