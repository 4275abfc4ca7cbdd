package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/assignit/internal/domain/allocation"
	boardsvc "github.com/alanyang/assignit/internal/service/board"
)

// RegisterTools registers all MCP tools on the server.
func RegisterTools(s *mcpserver.MCPServer, reg *SessionRegistry, boardSvc *boardsvc.Service) {
	s.AddTool(mcpmcp.NewTool("get_board",
		mcpmcp.WithDescription("Returns the board with its roster, its stories and the per-member load summary."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
	), getBoardHandler(boardSvc))

	s.AddTool(mcpmcp.NewTool("allocate_board",
		mcpmcp.WithDescription("Runs the bulk allocator: largest stories first, each to the least-loaded member with room. Existing assignments are replaced. Stories that fit nobody stay unassigned."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
	), allocateBoardHandler(boardSvc))

	s.AddTool(mcpmcp.NewTool("reassign_story",
		mcpmcp.WithDescription("Moves a story to a member. Rejected without any change when the member would go over capacity; the error reports the overflow."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
		mcpmcp.WithString("story_id", mcpmcp.Required(), mcpmcp.Description("Story UUID")),
		mcpmcp.WithString("member_id", mcpmcp.Required(), mcpmcp.Description("Target member UUID")),
	), reassignStoryHandler(boardSvc))

	s.AddTool(mcpmcp.NewTool("unassign_story",
		mcpmcp.WithDescription("Returns a story to the unassigned pool. Always succeeds for an existing story."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
		mcpmcp.WithString("story_id", mcpmcp.Required(), mcpmcp.Description("Story UUID")),
	), unassignStoryHandler(boardSvc))

	s.AddTool(mcpmcp.NewTool("suggest_members",
		mcpmcp.WithDescription("Lists members with nothing assigned yet. With story_id, only those who could take that story without going over capacity."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
		mcpmcp.WithString("story_id", mcpmcp.Description("Optional story UUID to filter by capacity")),
	), suggestMembersHandler(boardSvc))

	s.AddTool(mcpmcp.NewTool("watch_board",
		mcpmcp.WithDescription("Subscribes this session to a board. Every later change to the board arrives as a notifications/message carrying the event."),
		mcpmcp.WithString("board_id", mcpmcp.Required(), mcpmcp.Description("Board UUID")),
	), watchBoardHandler(reg, boardSvc))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func parseUUIDArg(req mcpmcp.CallToolRequest, name string) (uuid.UUID, *mcpmcp.CallToolResult) {
	id, err := uuid.Parse(mcpmcp.ParseString(req, name, ""))
	if err != nil {
		return uuid.Nil, mcpmcp.NewToolResultError("invalid " + name)
	}
	return id, nil
}

func jsonResult(v any) (*mcpmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcpmcp.NewToolResultErrorFromErr("encode result", err), nil
	}
	return mcpmcp.NewToolResultText(string(data)), nil
}

// errorResult turns a service error into a tool error. Capacity rejections
// carry their figures so the caller can pick another member.
func errorResult(err error) *mcpmcp.CallToolResult {
	var capErr *allocation.CapacityExceededError
	if errors.As(err, &capErr) {
		data, _ := json.Marshal(map[string]any{
			"error":       capErr.Error(),
			"member_id":   capErr.MemberID,
			"member_name": capErr.MemberName,
			"max_points":  capErr.MaxPoints,
			"load":        capErr.Load,
			"overflow":    capErr.Overflow,
		})
		return mcpmcp.NewToolResultError(string(data))
	}
	return mcpmcp.NewToolResultError(fmt.Sprintf("error: %s", err))
}

func getBoardHandler(boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}

		snap, err := boardSvc.Snapshot(ctx, boardID)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(map[string]any{
			"board":   snap.Board,
			"members": snap.Members,
			"stories": snap.Stories,
			"summary": allocation.Summarize(snap.Stories, snap.Members),
		})
	}
}

func allocateBoardHandler(boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}

		res, err := boardSvc.Allocate(ctx, boardID)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(res)
	}
}

func reassignStoryHandler(boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}
		storyID, bad := parseUUIDArg(req, "story_id")
		if bad != nil {
			return bad, nil
		}
		memberID, bad := parseUUIDArg(req, "member_id")
		if bad != nil {
			return bad, nil
		}

		s, err := boardSvc.Reassign(ctx, boardID, storyID, &memberID)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(s)
	}
}

func unassignStoryHandler(boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}
		storyID, bad := parseUUIDArg(req, "story_id")
		if bad != nil {
			return bad, nil
		}

		s, err := boardSvc.Reassign(ctx, boardID, storyID, nil)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(s)
	}
}

func suggestMembersHandler(boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}

		var storyID *uuid.UUID
		if mcpmcp.ParseString(req, "story_id", "") != "" {
			id, bad := parseUUIDArg(req, "story_id")
			if bad != nil {
				return bad, nil
			}
			storyID = &id
		}

		members, err := boardSvc.Candidates(ctx, boardID, storyID)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(members)
	}
}

func watchBoardHandler(reg *SessionRegistry, boardSvc *boardsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		boardID, bad := parseUUIDArg(req, "board_id")
		if bad != nil {
			return bad, nil
		}

		session := mcpserver.ClientSessionFromContext(ctx)
		if session == nil {
			return mcpmcp.NewToolResultError("watch_board needs a session"), nil
		}
		if _, err := boardSvc.Snapshot(ctx, boardID); err != nil {
			return errorResult(err), nil
		}

		reg.Watch(session.SessionID(), boardID)
		return jsonResult(map[string]string{"board_id": boardID.String(), "session_id": session.SessionID()})
	}
}
