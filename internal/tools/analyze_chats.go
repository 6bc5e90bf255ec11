package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Desiders/tg-old-chats-manager/internal/analyze"
	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

// AnalyzeChatsHandler handles the AnalyzeChats tool
type AnalyzeChatsHandler struct {
	svc analyze.Service
	log *zap.Logger

	group singleflight.Group
	// mu keeps at most one takeout session open.
	mu sync.Mutex
}

// NewAnalyzeChatsHandler creates a new AnalyzeChatsHandler
func NewAnalyzeChatsHandler(svc analyze.Service, log *zap.Logger) *AnalyzeChatsHandler {
	return &AnalyzeChatsHandler{svc: svc, log: log}
}

// Tool returns the MCP tool definition
func (h *AnalyzeChatsHandler) Tool() mcp.Tool {
	return mcp.NewTool("AnalyzeChats",
		mcp.WithDescription("Find joined and left chats that look abandoned, judging by the age of the last message "+
			"and the gaps between recent messages. Analyzing left chats opens a Telegram data export session, "+
			"which Telegram may delay for security reasons."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithBoolean("joined",
			mcp.Description("Analyze chats the account is a member of"),
		),
		mcp.WithBoolean("left",
			mcp.Description("Analyze chats and channels the account has left"),
		),
		mcp.WithString("title",
			mcp.Description("Only report chats whose title fuzzy-matches this query"),
		),
		mcp.WithBoolean("calendar_elapsed",
			mcp.Description("Compare full timestamps instead of the time of day only"),
		),
	)
}

type analyzeResult struct {
	report *analyze.Report
	err    error
}

// Handle processes the AnalyzeChats tool request
func (h *AnalyzeChatsHandler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := analyze.Scope{
		Joined: request.GetBool("joined", false),
		Left:   request.GetBool("left", false),
		Title:  strings.TrimSpace(request.GetString("title", "")),
	}
	calendar := request.GetBool("calendar_elapsed", false)
	if !scope.Joined && !scope.Left {
		return mcp.NewToolResultText("Nothing to analyze: set joined and/or left."), nil
	}

	progress(ctx, 0, "Analyzing chats")

	// The shared run outlives any single caller; each caller stops waiting on its own ctx.
	runCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%t/%t/%t/%s", scope.Joined, scope.Left, calendar, scope.Title)
	ch := h.group.DoChan(key, func() (any, error) {
		h.mu.Lock()
		defer h.mu.Unlock()

		a := analyze.New(h.svc, h.log, analyze.WithClassifier(analyze.NewClassifier(calendar)))
		report, err := a.Run(runCtx, scope)
		return analyzeResult{report: report, err: err}, nil
	})

	var res analyzeResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		res = r.Val.(analyzeResult)
	}

	var cooldown *tgdata.CooldownError
	switch {
	case errors.As(res.err, &cooldown):
		return mcp.NewToolResultError(cooldown.Error()), nil
	case res.err != nil && res.report == nil:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze chats: %v", res.err)), nil
	case res.err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("%s\n\nAnalysis stopped early: %v", renderReport(res.report), res.err)), nil
	default:
		return mcp.NewToolResultText(renderReport(res.report)), nil
	}
}

func renderReport(report *analyze.Report) string {
	if len(report.Verdicts) == 0 {
		return "No abandoned chats found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chats (run %s):", len(report.Verdicts), report.RunID)
	for _, v := range report.Verdicts {
		sb.WriteString("\n\n")
		sb.WriteString(v.String())
	}
	return sb.String()
}
