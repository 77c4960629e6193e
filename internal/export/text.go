package export

import (
	"fmt"
	"strings"
)

// TextExporter renders a conversation as a plain transcript, one
// "role: content" block per message.
type TextExporter struct{}

func (e *TextExporter) Export(data ExportData) (string, error) {
	conv := data.Conversation

	var b strings.Builder
	fmt.Fprintf(&b, "Conversation %s (%s)\n\n", conv.SessionID, conv.Timestamp)
	for _, msg := range conv.Messages {
		fmt.Fprintf(&b, "%s: %s\n\n", msg.Role, msg.Content)
	}
	return b.String(), nil
}
