// Package toolserver wires the chrono MCP server: the date-math tools, the
// festival calendar resource and the duration-extraction prompt. All
// domain logic lives in server/dateparse and server/calendar; this package
// is transport and registration only.
package toolserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyago/chrono/internal/profile"
)

// ServerName is the implementation name reported during the MCP handshake.
const ServerName = "chrono"

// Server hosts the MCP server instance.
type Server struct {
	server  *mcp.Server
	profile *profile.Profile

	// now is the wall clock, swappable in tests. Handlers sample it once
	// per call; results are never cached across calls.
	now func() time.Time
}

// New creates the server and registers every tool, resource and prompt.
func New(p *profile.Profile) *Server {
	s := &Server{
		profile: p,
		now:     time.Now,
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: p.Version,
	}, nil)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// Run serves MCP over stdin/stdout until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
