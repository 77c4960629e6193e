package personality

import (
	"strings"
	"testing"
)

func TestGetKnownPersonality(t *testing.T) {
	p, err := Get("witty")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Witty" {
		t.Fatalf("Name = %q", p.Name)
	}
	if p.Greeting == "" || p.Farewell == "" || p.SystemPromptAddition == "" {
		t.Fatalf("incomplete profile: %+v", p)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	p, err := Get("  Tech_Savvy ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Tech Savvy" {
		t.Fatalf("Name = %q", p.Name)
	}
}

func TestGetUnknownPersonality(t *testing.T) {
	_, err := Get("sarcastic")
	if err == nil {
		t.Fatal("expected error for unknown personality")
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Fatalf("error should list available personalities: %v", err)
	}
}

func TestNamesCoversAllProfiles(t *testing.T) {
	names := Names()
	if len(names) != 6 {
		t.Fatalf("Names() = %v", names)
	}
	for _, name := range names {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%s): %v", name, err)
		}
	}
}

func TestDefaultExists(t *testing.T) {
	if _, err := Get(Default); err != nil {
		t.Fatal(err)
	}
}
