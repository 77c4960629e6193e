package memory

import "strings"

// topicVocabulary is the fixed list of topic words checked against every
// conversation and query. Order matters: it fixes the encounter order of
// extracted keywords.
var topicVocabulary = []string{
	"python", "code", "help", "learn", "project", "question",
	"error", "problem", "solution", "idea", "discuss", "explain",
	"how", "what", "why", "when", "where", "about", "like",
	"build", "create", "develop", "design", "plan", "work",
}

// MaxKeywordsPerConversation caps how many keywords a conversation
// contributes to the index. The first ones encountered win; keywords are
// not ranked.
const MaxKeywordsPerConversation = 20

// ExtractKeywords derives the keyword set for a conversation: any topic
// vocabulary word contained in a message, plus contiguous two-word phrases
// of 6-49 characters. All keywords are lowercase. Deterministic for a given
// message sequence.
func ExtractKeywords(messages []Message) []string {
	var keywords []string
	seen := make(map[string]struct{})

	add := func(k string) bool {
		if len(keywords) >= MaxKeywordsPerConversation {
			return false
		}
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
		keywords = append(keywords, k)
		return true
	}

	for _, msg := range messages {
		content := strings.ToLower(msg.Content)

		for _, word := range topicVocabulary {
			if strings.Contains(content, word) && !add(word) {
				return keywords
			}
		}

		words := strings.Fields(content)
		for i := 0; i+1 < len(words); i++ {
			phrase := words[i] + " " + words[i+1]
			if len(phrase) > 5 && len(phrase) < 50 && !add(phrase) {
				return keywords
			}
		}
	}

	return keywords
}

// QueryKeywords returns the topic vocabulary words contained in a query.
// An empty result means the query has no recognized topic and callers
// should fall back to recency.
func QueryKeywords(query string) []string {
	lower := strings.ToLower(query)
	var out []string
	for _, word := range topicVocabulary {
		if strings.Contains(lower, word) {
			out = append(out, word)
		}
	}
	return out
}
