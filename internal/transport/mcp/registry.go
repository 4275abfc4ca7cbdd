package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/assignit/internal/domain/event"
)

// SessionRegistry tracks which board each MCP session is watching and pushes
// that board's events to the session as notifications/message.
type SessionRegistry struct {
	mu        sync.RWMutex
	bySession map[string]uuid.UUID              // sessionID → boardID
	byBoard   map[uuid.UUID]map[string]struct{} // boardID → sessionIDs

	// mcpSrv is set after the MCP server is constructed.
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		bySession: make(map[string]uuid.UUID),
		byBoard:   make(map[uuid.UUID]map[string]struct{}),
	}
}

func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Watch binds a session to a board. A session watches at most one board;
// watching another replaces the previous binding.
func (r *SessionRegistry) Watch(sessionID string, boardID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dropLocked(sessionID)
	r.bySession[sessionID] = boardID
	if r.byBoard[boardID] == nil {
		r.byBoard[boardID] = make(map[string]struct{})
	}
	r.byBoard[boardID][sessionID] = struct{}{}
}

// Unregister forgets a session. Returns the board it was watching.
func (r *SessionRegistry) Unregister(sessionID string) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropLocked(sessionID)
}

func (r *SessionRegistry) dropLocked(sessionID string) (uuid.UUID, bool) {
	boardID, ok := r.bySession[sessionID]
	if !ok {
		return uuid.Nil, false
	}
	delete(r.bySession, sessionID)
	delete(r.byBoard[boardID], sessionID)
	if len(r.byBoard[boardID]) == 0 {
		delete(r.byBoard, boardID)
	}
	return boardID, true
}

// Watching returns the board a session is bound to.
func (r *SessionRegistry) Watching(sessionID string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySession[sessionID]
	return id, ok
}

// NotifyBoard sends e to every session watching e.BoardID.
// No watchers, or no server yet, is a no-op.
func (r *SessionRegistry) NotifyBoard(_ context.Context, e event.Event) error {
	r.mu.RLock()
	targets := make([]string, 0, len(r.byBoard[e.BoardID]))
	for sessionID := range r.byBoard[e.BoardID] {
		targets = append(targets, sessionID)
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		return nil
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()
	if srv == nil {
		return nil
	}

	params, err := toParams(e)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	var lastErr error
	for _, sessionID := range targets {
		if err := srv.SendNotificationToSpecificClient(sessionID, "notifications/message", params); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func toParams(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": v}, nil
	}
	return params, nil
}
