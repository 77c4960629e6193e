package memory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestManagerRecordTurnPersistsEverything(t *testing.T) {
	m := newTestManager(t)

	id, err := m.RecordTurn("", []Message{
		{Role: RoleUser, Content: "I love hiking. Help me plan a trip"},
		{Role: RoleAssistant, Content: "Glad to help with the plan"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Sessions().Load(id); err != nil {
		t.Fatalf("conversation not stored: %v", err)
	}
	if m.Index().Len() != 1 {
		t.Fatalf("Index.Len = %d, want 1", m.Index().Len())
	}
	if !m.Profile().Interests.Contains("hiking") {
		t.Fatalf("profile did not learn the interest: %v", m.Profile().Interests.Values())
	}
}

func TestManagerRelevantHistoryByKeyword(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("hiking_session", []Message{
		{Role: RoleUser, Content: "help me plan a hiking trip"},
		{Role: RoleAssistant, Content: "sure"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.RecordTurn("cooking_session", []Message{
		{Role: RoleUser, Content: "best risotto recipe"},
		{Role: RoleAssistant, Content: "arborio rice"},
	}); err != nil {
		t.Fatal(err)
	}

	results, err := m.RelevantHistory("can you help me plan something", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("no relevant conversations found")
	}
	if results[0].SessionID != "hiking_session" {
		t.Fatalf("top result = %q, want hiking_session", results[0].SessionID)
	}
}

func TestManagerRelevantHistoryFallsBackToRecency(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("only", []Message{
		{Role: RoleUser, Content: "lorem ipsum"},
	}); err != nil {
		t.Fatal(err)
	}

	// No topic vocabulary word in the query.
	results, err := m.RelevantHistory("zzzz qqqq", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].SessionID != "only" {
		t.Fatalf("fallback results = %+v", results)
	}
}

func TestManagerConversationContext(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("ctx", []Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}); err != nil {
		t.Fatal(err)
	}

	context := m.ConversationContext("ctx", 2)
	if !strings.Contains(context, "ASSISTANT: two") {
		t.Fatalf("context missing tail message: %q", context)
	}
	if strings.Contains(context, "USER: one") {
		t.Fatalf("context includes message beyond the limit: %q", context)
	}
	if m.ConversationContext("missing", 2) != "" {
		t.Fatal("missing conversation should yield empty context")
	}
}

func TestManagerReindexRebuilds(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("s1", []Message{
		{Role: RoleUser, Content: "a python question"},
	}); err != nil {
		t.Fatal(err)
	}

	// Corrupt the index file, then rebuild from the conversations.
	indexPath := filepath.Join(m.Dir(), "conversation_index.json")
	if err := os.WriteFile(indexPath, []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	reopened, err := NewManager(m.Dir())
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	n, err := reopened.Reindex(func(id string) { seen = append(seen, id) })
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(seen) != 1 || seen[0] != "s1" {
		t.Fatalf("Reindex = %d, seen %v", n, seen)
	}

	matches := reopened.Index().SearchByKeywords([]string{"python"}, 5)
	if len(matches) != 1 || matches[0].SessionID != "s1" {
		t.Fatalf("rebuilt index search = %+v", matches)
	}
}

func TestManagerClearAllRequiresConfirm(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("s1", []Message{{Role: RoleUser, Content: "hello"}}); err != nil {
		t.Fatal(err)
	}

	if err := m.ClearAll(false); err == nil {
		t.Fatal("ClearAll without confirmation should fail")
	}
	if m.Index().Len() != 1 {
		t.Fatal("unconfirmed ClearAll touched the index")
	}

	if err := m.ClearAll(true); err != nil {
		t.Fatal(err)
	}
	if m.Index().Len() != 0 {
		t.Fatal("index not cleared")
	}
	if _, err := m.LatestSessionID(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LatestSessionID after clear = %v, want ErrNotFound", err)
	}
	if m.Profile().Interests.Len() != 0 {
		t.Fatal("profile not cleared")
	}
}

func TestManagerLatestSessionID(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.RecordTurn("20240101_000000", []Message{{Role: RoleUser, Content: "old"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := m.RecordTurn("20240601_000000", []Message{{Role: RoleUser, Content: "new"}}); err != nil {
		t.Fatal(err)
	}

	latest, err := m.LatestSessionID()
	if err != nil {
		t.Fatal(err)
	}
	if latest != "20240601_000000" {
		t.Fatalf("LatestSessionID = %q", latest)
	}
}
