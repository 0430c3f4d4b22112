// ABOUTME: MCP server exposing the note store to AI agents over stdio.
// ABOUTME: Registers note tools, a note resource template, and prompts.

package mcp

import (
	"context"

	"github.com/harper/notes/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type Server struct {
	server *mcp.Server
	store  *store.Store
	logger *zap.Logger
}

func NewServer(s *store.Store, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{store: s, logger: logger}

	srv.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notes",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	srv.registerTools()
	srv.registerResources()
	srv.registerPrompts()

	return srv
}

// Serve blocks until the client disconnects or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.Int("notes", s.store.Len()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
