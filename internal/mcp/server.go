// Package mcp exposes Augi's memory over the Model Context Protocol so
// other AI tools can read and extend what Augi has learned.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
	"github.com/Lonewolfgaming5250/Augi/internal/prompt"
)

// Server wraps an MCP stdio server over a memory manager.
type Server struct {
	mem     *memory.Manager
	builder *prompt.Builder
	mcp     *server.MCPServer
}

// NewServer registers Augi's tools on a fresh MCP server.
func NewServer(mem *memory.Manager, builder *prompt.Builder, version string) *Server {
	s := &Server{
		mem:     mem,
		builder: builder,
		mcp: server.NewMCPServer(
			"augi",
			version,
			server.WithToolCapabilities(false),
		),
	}

	s.mcp.AddTool(mcp.NewTool("augi_remember",
		mcp.WithDescription("Teach Augi a fact about the user: an interest, a skill, or a preference."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Kind of fact: interest, skill, name, location, or preference."),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("The fact itself. For preferences use key=value."),
		),
	), s.handleRemember)

	s.mcp.AddTool(mcp.NewTool("augi_get_context",
		mcp.WithDescription("Build the prompt context Augi would use for a question: profile, permissions, and relevant past conversations."),
		mcp.WithString("question",
			mcp.Description("The question to recall context for. Empty returns profile and recent history."),
		),
	), s.handleGetContext)

	s.mcp.AddTool(mcp.NewTool("augi_search_conversations",
		mcp.WithDescription("Search saved conversations for a keyword."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keyword to search conversation transcripts for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum conversations to return (default 5)."),
		),
	), s.handleSearchConversations)

	s.mcp.AddTool(mcp.NewTool("augi_profile_summary",
		mcp.WithDescription("Summarize what Augi has learned about the user."),
	), s.handleProfileSummary)

	return s
}

// ServeStdio blocks serving the MCP protocol over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
