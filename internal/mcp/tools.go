package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/roulette/internal/game"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, sess *Session) {
	s.AddTool(getStatusTool(), sess.handleGetStatus)
	s.AddTool(pullTriggerTool(), sess.handlePullTrigger)
	s.AddTool(whereTool(), sess.handleWhere)
}

// --- Tool definitions ---

func getStatusTool() mcp.Tool {
	return mcp.NewTool("get_status",
		mcp.WithDescription("Report whether the player is dead, when they died, and what revival is available. Read-only."),
		mcp.WithBoolean("hardcore", mcp.Description("Inspect the hardcore player instead of the normal one")),
	)
}

func pullTriggerTool() mcp.Tool {
	return mcp.NewTool("pull_trigger",
		mcp.WithDescription("Spin the cylinder and pull the trigger once in normal mode. "+
			"A fatal shot spends the oldest extra life from the lives directory, or kills the player permanently. "+
			"Hardcore mode is not available here."),
	)
}

func whereTool() mcp.Tool {
	return mcp.NewTool("where",
		mcp.WithDescription("Show where the death marker and related files live. Read-only."),
		mcp.WithBoolean("hardcore", mcp.Description("Locate the hardcore files instead of the normal ones")),
	)
}

// --- Tool handlers ---

func modeFrom(request mcp.CallToolRequest) mortality.Mode {
	if request.GetBool("hardcore", false) {
		return mortality.Hardcore
	}
	return mortality.Normal
}

func (s *Session) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.Status(modeFrom(request))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read status: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Session) handlePullTrigger(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ctx.Err(); err != nil {
		return mcp.NewToolResultError("Request cancelled before the trigger was pulled."), nil
	}
	resp, err := s.PullTrigger(ctx)
	if errors.Is(err, game.ErrAlreadyDead) {
		return mcp.NewToolResultError("The player is already dead. Use `roulette revive` if a life predates the death."), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Round failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Session) handleWhere(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.Where(modeFrom(request))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to locate files: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
