// ABOUTME: MCP resources exposing notes as markdown documents.
// ABOUTME: Agents read a note via notes://note/{id}.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notes/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "notes://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or ID prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.resolve(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     noteMarkdown(note),
			},
		},
	}, nil
}

func noteMarkdown(note *models.Note) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", note.Title)
	fmt.Fprintf(&sb, "_Created %s", note.CreatedAt.Format("2006-01-02 15:04"))
	if note.Edited() {
		fmt.Fprintf(&sb, ", updated %s", note.UpdatedAt.Format("2006-01-02 15:04"))
	}
	sb.WriteString("_\n\n")
	sb.WriteString(note.Content)
	return sb.String()
}
