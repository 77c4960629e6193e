package memory

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileMergeGrowsSets(t *testing.T) {
	p := NewProfile()

	first := Facts{Interests: NewStringSet("hiking")}
	if !p.Merge(first) {
		t.Fatal("first merge should report a change")
	}

	second := Facts{Interests: NewStringSet("coding")}
	p.Merge(second)

	values := p.Interests.Values()
	if len(values) != 2 || values[0] != "hiking" || values[1] != "coding" {
		t.Fatalf("Interests = %v", values)
	}
}

func TestProfileMergeIdempotent(t *testing.T) {
	p := NewProfile()
	facts := Facts{Skills: NewStringSet("go")}

	p.Merge(facts)
	if p.Merge(facts) {
		t.Fatal("repeated merge of same facts should report no change")
	}
	if p.Skills.Len() != 1 {
		t.Fatalf("Skills.Len = %d, want 1", p.Skills.Len())
	}
}

func TestProfileScalarLastWins(t *testing.T) {
	p := NewProfile()

	p.Merge(Facts{PreferredName: "Alex"})
	p.Merge(Facts{PreferredName: "Sam"})
	if p.PreferredName != "Sam" {
		t.Fatalf("PreferredName = %q, want Sam", p.PreferredName)
	}

	p.SetPreference("editor", "vim")
	p.SetPreference("editor", "emacs")
	if got, _ := p.Preference("editor"); got != "emacs" {
		t.Fatalf("Preference(editor) = %q, want emacs", got)
	}
}

func TestProfilePreferenceCoercion(t *testing.T) {
	p := NewProfile()
	p.SetPreference("verbosity", 3)

	got, ok := p.Preference("verbosity")
	if !ok || got != "3" {
		t.Fatalf("Preference(verbosity) = %q, %v", got, ok)
	}
}

func TestProfileStoreRoundTrip(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), "user_profile.json"))

	p := NewProfile()
	p.Merge(Facts{
		PreferredName: "Jordan",
		Interests:     NewStringSet("astronomy"),
	})
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}

	loaded := store.Load()
	if loaded.PreferredName != "Jordan" {
		t.Fatalf("PreferredName = %q", loaded.PreferredName)
	}
	if !loaded.Interests.Contains("astronomy") {
		t.Fatalf("Interests = %v", loaded.Interests.Values())
	}
}

func TestProfileStoreMissingFileReturnsEmpty(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), "user_profile.json"))

	p := store.Load()
	if p.Interests.Len() != 0 || p.PreferredName != "" {
		t.Fatalf("expected empty profile, got %+v", p)
	}
	if p.Created == "" {
		t.Fatal("empty profile should carry a created timestamp")
	}
}

func TestProfileLearningSummary(t *testing.T) {
	p := NewProfile()
	p.Merge(Facts{
		PreferredName: "Kim",
		Interests:     NewStringSet("hiking", "chess", "piano", "sailing"),
	})

	summary := p.LearningSummary()
	if !strings.Contains(summary, "hiking, chess, piano") {
		t.Fatalf("summary missing interests: %q", summary)
	}
	if !strings.Contains(summary, "(+ 1 more)") {
		t.Fatalf("summary missing overflow marker: %q", summary)
	}
	if !strings.Contains(summary, "Kim") {
		t.Fatalf("summary missing name: %q", summary)
	}
}

func TestProfileContextForPromptEmpty(t *testing.T) {
	p := NewProfile()
	if got := p.ContextForPrompt(); got != "" {
		t.Fatalf("ContextForPrompt on empty profile = %q", got)
	}
}

func TestExtractFactsName(t *testing.T) {
	facts := ExtractFacts([]Message{
		{Role: RoleUser, Content: "Hi, my name is morgan."},
	})
	if facts.PreferredName != "Morgan" {
		t.Fatalf("PreferredName = %q, want Morgan", facts.PreferredName)
	}
}

func TestExtractFactsRejectsNonAlphaName(t *testing.T) {
	facts := ExtractFacts([]Message{
		{Role: RoleUser, Content: "my name is x2go"},
	})
	if facts.PreferredName != "" {
		t.Fatalf("PreferredName = %q, want empty", facts.PreferredName)
	}
}

func TestExtractFactsInterestsAndSkills(t *testing.T) {
	facts := ExtractFacts([]Message{
		{Role: RoleUser, Content: "I love mountain biking. It keeps me fit."},
		{Role: RoleUser, Content: "I'm good at woodworking"},
	})

	if !facts.Interests.Contains("mountain biking") {
		t.Fatalf("Interests = %v", facts.Interests.Values())
	}
	if !facts.Skills.Contains("woodworking") {
		t.Fatalf("Skills = %v", facts.Skills.Values())
	}
}

func TestExtractFactsIntoAndMasterTriggers(t *testing.T) {
	facts := ExtractFacts([]Message{
		{Role: RoleUser, Content: "I'm really into rock climbing. Any tips?"},
		{Role: RoleUser, Content: "After years of practice I master sourdough baking"},
	})

	if !facts.Interests.Contains("rock climbing") {
		t.Fatalf("Interests = %v", facts.Interests.Values())
	}
	if !facts.Skills.Contains("sourdough baking") {
		t.Fatalf("Skills = %v", facts.Skills.Values())
	}
}

func TestExtractFactsIgnoresAssistant(t *testing.T) {
	facts := ExtractFacts([]Message{
		{Role: RoleAssistant, Content: "I love helping with code"},
	})
	if !facts.Empty() {
		t.Fatalf("assistant message fed the profile: %+v", facts)
	}
}
