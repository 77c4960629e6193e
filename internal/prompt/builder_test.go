package prompt

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
	"github.com/Lonewolfgaming5250/Augi/internal/permission"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
)

// wordCounter approximates tokens as whitespace-separated words, avoiding
// the network fetch the real encoding needs.
type wordCounter struct{}

func (wordCounter) Count(s string) int { return len(strings.Fields(s)) }

type fakeRecaller struct {
	summaries []memory.Summary
	contexts  map[string]string
	profile   memory.Profile
}

func (f *fakeRecaller) RelevantHistory(query string, limit int) ([]memory.Summary, error) {
	if limit > 0 && len(f.summaries) > limit {
		return f.summaries[:limit], nil
	}
	return f.summaries, nil
}

func (f *fakeRecaller) ConversationContext(sessionID string, maxMessages int) string {
	return f.contexts[sessionID]
}

func (f *fakeRecaller) Profile() memory.Profile { return f.profile }

func newTestBuilder(t *testing.T, recaller *fakeRecaller) *Builder {
	t.Helper()
	perms := permission.NewManager(filepath.Join(t.TempDir(), "permissions.json"))
	persona, err := personality.Get(personality.Default)
	if err != nil {
		t.Fatal(err)
	}
	return NewBuilder(recaller, perms, persona, wordCounter{})
}

func TestBuildSystemPromptLayers(t *testing.T) {
	profile := memory.NewProfile()
	profile.Merge(memory.Facts{
		PreferredName: "Sam",
		Interests:     memory.NewStringSet("hiking"),
	})

	b := newTestBuilder(t, &fakeRecaller{profile: profile})

	built, err := b.Build(BuildOptions{Query: "hello"})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"You are Augi",
		"friendly", // personality addition
		"Name: Sam",
		"Interests: hiking",
		"Current Permissions Status:",
		"File Reading: REQUIRE_CONFIRMATION",
		"Internet Access: DENY",
	} {
		if !strings.Contains(built.SystemPrompt, want) {
			t.Errorf("system prompt missing %q:\n%s", want, built.SystemPrompt)
		}
	}
}

func TestBuildIncludesRelevantConversations(t *testing.T) {
	recaller := &fakeRecaller{
		summaries: []memory.Summary{{SessionID: "s1"}, {SessionID: "s2"}},
		contexts: map[string]string{
			"s1": "Previous conversation from t1:\nUSER: about hiking\n",
			"s2": "Previous conversation from t2:\nUSER: about cooking\n",
		},
		profile: memory.NewProfile(),
	}
	b := newTestBuilder(t, recaller)

	built, err := b.Build(BuildOptions{Query: "hiking help"})
	if err != nil {
		t.Fatal(err)
	}
	if built.SessionsUsed != 2 {
		t.Fatalf("SessionsUsed = %d, want 2", built.SessionsUsed)
	}
	if !strings.Contains(built.ContextText, "hiking") || !strings.Contains(built.ContextText, "cooking") {
		t.Fatalf("ContextText = %q", built.ContextText)
	}
	if len(built.Sources) != 2 || built.Sources[0] != "conversation: s1" {
		t.Fatalf("Sources = %v", built.Sources)
	}
}

func TestBuildRespectsTokenBudget(t *testing.T) {
	big := strings.Repeat("word ", 500)
	recaller := &fakeRecaller{
		summaries: []memory.Summary{{SessionID: "big"}, {SessionID: "small"}},
		contexts: map[string]string{
			"big":   big,
			"small": "tiny context",
		},
		profile: memory.NewProfile(),
	}
	b := newTestBuilder(t, recaller)

	// Budget fits the system prompt plus the small block only.
	built, err := b.Build(BuildOptions{Query: "q", MaxTokens: 200})
	if err != nil {
		t.Fatal(err)
	}
	if built.SessionsUsed != 1 {
		t.Fatalf("SessionsUsed = %d, want 1", built.SessionsUsed)
	}
	if strings.Contains(built.ContextText, "word word") {
		t.Fatal("oversized block included despite budget")
	}
	if built.TokensUsed > 200 {
		t.Fatalf("TokensUsed = %d exceeds budget", built.TokensUsed)
	}
}

func TestBuildSkipsEmptyContexts(t *testing.T) {
	recaller := &fakeRecaller{
		summaries: []memory.Summary{{SessionID: "ghost"}},
		contexts:  map[string]string{},
		profile:   memory.NewProfile(),
	}
	b := newTestBuilder(t, recaller)

	built, err := b.Build(BuildOptions{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if built.SessionsUsed != 0 || built.ContextText != "" {
		t.Fatalf("empty context counted: %+v", built)
	}
}
