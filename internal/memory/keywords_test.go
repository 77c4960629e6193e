package memory

import (
	"fmt"
	"reflect"
	"testing"
)

func TestExtractKeywordsVocabularyAndPhrases(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "help me plan a trip"},
	}

	got := ExtractKeywords(messages)

	// Vocabulary hits come first in list order, then two-word phrases.
	want := []string{"help", "plan", "help me", "me plan", "plan a", "a trip"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsPhraseLengthBounds(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "go up"}, // "go up" is 5 chars, too short
	}
	if got := ExtractKeywords(messages); len(got) != 0 {
		t.Fatalf("short phrase indexed: %v", got)
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	var messages []Message
	for i := 0; i < 10; i++ {
		messages = append(messages, Message{
			Role:    RoleUser,
			Content: fmt.Sprintf("alpha%d bravo%d charlie%d delta%d", i, i, i, i),
		})
	}

	got := ExtractKeywords(messages)
	if len(got) != MaxKeywordsPerConversation {
		t.Fatalf("len = %d, want %d", len(got), MaxKeywordsPerConversation)
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	messages := []Message{
		{Role: RoleUser, Content: "how do I build a python project"},
		{Role: RoleAssistant, Content: "let's discuss the design"},
	}

	first := ExtractKeywords(messages)
	for i := 0; i < 5; i++ {
		if got := ExtractKeywords(messages); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestQueryKeywords(t *testing.T) {
	got := QueryKeywords("how do I fix this python error?")
	want := []string{"python", "error", "how"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("QueryKeywords = %v, want %v", got, want)
	}

	if got := QueryKeywords("zzzz qqqq"); len(got) != 0 {
		t.Fatalf("unrecognized query produced keywords: %v", got)
	}
}
