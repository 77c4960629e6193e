package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Lonewolfgaming5250/Augi/internal/prompt"
)

func (s *Server) handleRemember(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: kind"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return mcp.NewToolResultError("value must not be empty"), nil
	}

	p := s.mem.Profile()
	switch strings.ToLower(kind) {
	case "interest":
		p.AddInterest(value)
	case "skill":
		p.AddSkill(value)
	case "name":
		p.PreferredName = value
	case "location":
		p.Location = value
	case "preference":
		key, val, ok := strings.Cut(value, "=")
		if !ok {
			return mcp.NewToolResultError("preference value must be key=value"), nil
		}
		p.SetPreference(strings.TrimSpace(key), strings.TrimSpace(val))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid kind %q (valid: interest, skill, name, location, preference)", kind)), nil
	}

	if saveErr := s.mem.SaveProfile(p); saveErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save profile: %v", saveErr)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Remembered %s: %s", strings.ToLower(kind), value)), nil
}

func (s *Server) handleGetContext(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question := req.GetString("question", "")

	built, err := s.builder.Build(prompt.BuildOptions{Query: question})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build context: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(built.SystemPrompt)
	if built.ContextText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(built.ContextText)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSearchConversations(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := req.GetInt("limit", 5)

	matches, err := s.mem.Sessions().SearchText(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText("No conversations matched."), nil
	}

	var sb strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&sb, "[%s] %s (%d messages)\n", m.SessionID, m.Timestamp, m.MessageCount)
		if m.MatchedContent != "" {
			fmt.Fprintf(&sb, "  → %s\n", m.MatchedContent)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleProfileSummary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.mem.Profile().LearningSummary()), nil
}
