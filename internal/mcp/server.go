// ABOUTME: MCP server setup for the fittrack session.
// ABOUTME: Wraps the MCP server around an open app.Session.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/fittrack/internal/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with session access.
type Server struct {
	mcpServer *mcp.Server
	session   *app.Session
}

// NewServer creates a new MCP server over the given session.
func NewServer(session *app.Session) (*Server, error) {
	if session == nil {
		return nil, errors.New("mcp server needs an open session")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittrack",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		session:   session,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
