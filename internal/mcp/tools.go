// ABOUTME: MCP tools for note CRUD and search.
// ABOUTME: Store errors an agent can act on come back as IsError results.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note with title and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleAddNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, newest first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results, 0 for all", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Case-insensitive substring search over titles and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search term"},
				"limit": {"type": "integer", "description": "Max results, 0 for all", "default": 10}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title and/or content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "clear_notes",
		Description: "Delete every note. Cannot be undone.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"confirm": {"type": "boolean", "description": "Must be true"}
			},
			"required": ["confirm"]
		}`),
	}, s.handleClearNotes)
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.store.Create(params.Title, params.Content)
	if res := s.storeError("create note", err); res != nil {
		return res, nil
	}
	return textResult(fmt.Sprintf("Created note %s%s", note.ID, persistSuffix(err))), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := struct {
		Limit int `json:"limit"`
	}{Limit: 20}
	if err := unmarshalOptional(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	return jsonResult(limit(s.store.List(), params.Limit))
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}{Limit: 10}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	return jsonResult(limit(s.store.Filter(params.Query), params.Limit))
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.resolve(params.ID)
	if res := s.storeError("get note", err); res != nil {
		return res, nil
	}
	return jsonResult(note)
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string  `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.resolve(params.ID)
	if res := s.storeError("find note", err); res != nil {
		return res, nil
	}

	title, content := note.Title, note.Content
	if params.Title != nil {
		title = *params.Title
	}
	if params.Content != nil {
		content = *params.Content
	}

	updated, err := s.store.Update(note.ID, title, content)
	if res := s.storeError("update note", err); res != nil {
		return res, nil
	}
	return textResult(fmt.Sprintf("Updated note %s%s", updated.ID, persistSuffix(err))), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.resolve(params.ID)
	if errors.Is(err, store.ErrNoteNotFound) {
		return textResult(fmt.Sprintf("No note matched %s; nothing deleted", params.ID)), nil
	}
	if res := s.storeError("find note", err); res != nil {
		return res, nil
	}

	err = s.store.Delete(note.ID)
	if res := s.storeError("delete note", err); res != nil {
		return res, nil
	}
	return textResult(fmt.Sprintf("Deleted note %s%s", note.ID, persistSuffix(err))), nil
}

func (s *Server) handleClearNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if !params.Confirm {
		return errorResult("refusing to clear notes without confirm: true"), nil
	}

	n := s.store.Len()
	err := s.store.Clear()
	if res := s.storeError("clear notes", err); res != nil {
		return res, nil
	}
	return textResult(fmt.Sprintf("Deleted %d notes%s", n, persistSuffix(err))), nil
}

// resolve accepts a full id or a unique prefix.
func (s *Server) resolve(id string) (*models.Note, error) {
	note, err := s.store.Get(id)
	if err == nil {
		return note, nil
	}
	return s.store.GetByPrefix(id)
}

// storeError turns a store failure into a tool error result. A persistence
// failure is not one: the change is live for this process, so it only logs.
func (s *Server) storeError(action string, err error) *mcp.CallToolResult {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPersist) {
		s.logger.Warn("change not persisted", zap.String("action", action), zap.Error(err))
		return nil
	}
	return errorResult(fmt.Sprintf("failed to %s: %v", action, err))
}

func persistSuffix(err error) string {
	if errors.Is(err, store.ErrPersist) {
		return " (not saved to disk)"
	}
	return ""
}

func limit(notes []*models.Note, n int) []*models.Note {
	if n > 0 && len(notes) > n {
		return notes[:n]
	}
	return notes
}

// unmarshalOptional tolerates a missing arguments object.
func unmarshalOptional(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	res := textResult(text)
	res.IsError = true
	return res
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return textResult(string(data)), nil
}
