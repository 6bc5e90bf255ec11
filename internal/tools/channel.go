package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Desiders/tg-old-chats-manager/internal/tgdata"
)

// InvalidChannelMessage is shown when Telegram rejects a channel ID or access hash.
const InvalidChannelMessage = "Channel invalid. Probably specified incorrect channel/supergroup ID or access hash is missing."

// ChannelManager joins and deletes channels.
type ChannelManager interface {
	JoinChannel(ctx context.Context, id int64, accessHash *int64) error
	DeleteChannel(ctx context.Context, id int64, accessHash *int64) error
}

// JoinChatHandler handles the JoinChat tool
type JoinChatHandler struct {
	channels ChannelManager
}

// NewJoinChatHandler creates a new JoinChatHandler
func NewJoinChatHandler(channels ChannelManager) *JoinChatHandler {
	return &JoinChatHandler{channels: channels}
}

// Tool returns the MCP tool definition
func (h *JoinChatHandler) Tool() mcp.Tool {
	return mcp.NewTool("JoinChat",
		mcp.WithDescription("Join a channel or supergroup, for example one reported by AnalyzeChats."),
		mcp.WithNumber("id",
			mcp.Description("The ID of the channel or supergroup"),
			mcp.Required(),
		),
		mcp.WithString("access_hash",
			mcp.Description("Access hash of the channel as a decimal string"),
		),
	)
}

// Handle processes the JoinChat tool request
func (h *JoinChatHandler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return channelAction(ctx, request, h.channels.JoinChannel, "Joined channel %d.")
}

// DeleteChatHandler handles the DeleteChat tool
type DeleteChatHandler struct {
	channels ChannelManager
}

// NewDeleteChatHandler creates a new DeleteChatHandler
func NewDeleteChatHandler(channels ChannelManager) *DeleteChatHandler {
	return &DeleteChatHandler{channels: channels}
}

// Tool returns the MCP tool definition
func (h *DeleteChatHandler) Tool() mcp.Tool {
	return mcp.NewTool("DeleteChat",
		mcp.WithDescription("Delete a channel or supergroup created by this account. This action cannot be undone."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithNumber("id",
			mcp.Description("The ID of the channel or supergroup"),
			mcp.Required(),
		),
		mcp.WithString("access_hash",
			mcp.Description("Access hash of the channel as a decimal string"),
		),
	)
}

// Handle processes the DeleteChat tool request
func (h *DeleteChatHandler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return channelAction(ctx, request, h.channels.DeleteChannel, "Deleted channel %d.")
}

func channelAction(
	ctx context.Context,
	request mcp.CallToolRequest,
	action func(ctx context.Context, id int64, accessHash *int64) error,
	done string,
) (*mcp.CallToolResult, error) {
	id := mcp.ParseInt64(request, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("id is required"), nil
	}
	accessHash, err := parseAccessHash(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := action(ctx, id, accessHash); err != nil {
		if errors.Is(err, tgdata.ErrInvalidChannel) {
			return mcp.NewToolResultError(InvalidChannelMessage), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(done, id)), nil
}
