package export

import (
	"fmt"
	"strings"
)

// MarkdownExporter renders a conversation as a markdown transcript.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(data ExportData) (string, error) {
	conv := data.Conversation

	var b strings.Builder
	fmt.Fprintf(&b, "# Conversation %s\n\n", conv.SessionID)
	fmt.Fprintf(&b, "- Saved: %s\n", conv.Timestamp)
	fmt.Fprintf(&b, "- Messages: %d\n\n", conv.MessageCount)

	for _, msg := range conv.Messages {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", headingFor(string(msg.Role)), msg.Content)
	}
	return b.String(), nil
}

func headingFor(role string) string {
	switch role {
	case "user":
		return "You"
	case "assistant":
		return "Augi"
	default:
		if role == "" {
			return "Unknown"
		}
		return strings.ToUpper(role[:1]) + role[1:]
	}
}
