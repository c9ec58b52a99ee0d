package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/emprendelab/vitrina/internal/listing"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the listing directory as tools.
type Server struct {
	store *listing.Store
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over store.
func NewServer(store *listing.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"vitrina",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchListingsTool, s.handleSearchListings)
	s.mcp.AddTool(getListingTool, s.handleGetListing)
	s.mcp.AddTool(getStatsTool, s.handleGetStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
