package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
)

func sampleExportData() ExportData {
	return ExportData{
		Conversation: memory.Conversation{
			Timestamp: "2026-08-26T10:00:00Z",
			SessionID: "20260826_100000",
			Messages: []memory.Message{
				{Role: memory.RoleUser, Content: "What is the capital of France?"},
				{Role: memory.RoleAssistant, Content: "The capital of France is Paris."},
				{Role: memory.RoleUser, Content: "Thanks!"},
			},
			MessageCount: 3,
		},
	}
}

func TestGet_ValidFormats(t *testing.T) {
	for _, name := range []string{"markdown", "json", "text"} {
		exp, ok := Get(name)
		if !ok {
			t.Errorf("Get(%q) returned false", name)
		}
		if exp == nil {
			t.Errorf("Get(%q) returned nil exporter", name)
		}
	}
}

func TestGet_InvalidFormat(t *testing.T) {
	if _, ok := Get("invalid"); ok {
		t.Error("expected Get('invalid') to return false")
	}
}

func TestValidFormats(t *testing.T) {
	formats := ValidFormats()
	if len(formats) != 3 {
		t.Errorf("expected 3 formats, got %d: %v", len(formats), formats)
	}
	for i := 1; i < len(formats); i++ {
		if formats[i-1] > formats[i] {
			t.Errorf("formats not sorted: %v", formats)
		}
	}
}

func TestMarkdownExporter(t *testing.T) {
	exp, _ := Get("markdown")
	result, err := exp.Export(sampleExportData())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	checks := []string{
		"# Conversation 20260826_100000",
		"Messages: 3",
		"## You",
		"What is the capital of France?",
		"## Augi",
		"The capital of France is Paris.",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("markdown export missing %q", check)
		}
	}

	// User message should precede the assistant reply.
	if strings.Index(result, "capital of France?") > strings.Index(result, "is Paris.") {
		t.Error("messages rendered out of order")
	}
}

func TestJSONExporter(t *testing.T) {
	exp, _ := Get("json")
	result, err := exp.Export(sampleExportData())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(result), &parsed); err != nil {
		t.Fatalf("JSON export is invalid JSON: %v", err)
	}
	if parsed["session_id"] != "20260826_100000" {
		t.Errorf("session_id: got %v", parsed["session_id"])
	}
	msgs, ok := parsed["messages"].([]interface{})
	if !ok || len(msgs) != 3 {
		t.Errorf("expected 3 messages, got %v", parsed["messages"])
	}
}

func TestTextExporter(t *testing.T) {
	exp, _ := Get("text")
	result, err := exp.Export(sampleExportData())
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	checks := []string{
		"Conversation 20260826_100000",
		"user: What is the capital of France?",
		"assistant: The capital of France is Paris.",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("text export missing %q", check)
		}
	}
}

func TestExport_EmptyConversation(t *testing.T) {
	data := ExportData{Conversation: memory.Conversation{SessionID: "20260101_000000"}}
	for _, format := range []string{"markdown", "json", "text"} {
		t.Run(format, func(t *testing.T) {
			exp, _ := Get(format)
			result, err := exp.Export(data)
			if err != nil {
				t.Fatalf("Export error: %v", err)
			}
			if !strings.Contains(result, "20260101_000000") {
				t.Error("export missing session id")
			}
		})
	}
}

func TestHeadingFor(t *testing.T) {
	cases := map[string]string{
		"user":      "You",
		"assistant": "Augi",
		"system":    "System",
		"":          "Unknown",
	}
	for role, want := range cases {
		if got := headingFor(role); got != want {
			t.Errorf("headingFor(%q) = %q, want %q", role, got, want)
		}
	}
}
