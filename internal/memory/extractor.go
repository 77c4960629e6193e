package memory

import (
	"strings"
	"unicode"
)

// Facts holds information extracted from a conversation, ready to merge
// into the profile.
type Facts struct {
	PreferredName string
	Location      string
	Interests     StringSet
	Skills        StringSet
	Hobbies       StringSet
	Preferences   map[string]any
}

// Empty reports whether nothing was extracted.
func (f Facts) Empty() bool {
	return f.PreferredName == "" && f.Location == "" &&
		f.Interests.Len() == 0 && f.Skills.Len() == 0 &&
		f.Hobbies.Len() == 0 && len(f.Preferences) == 0
}

var (
	namePhrases = []string{
		"my name is ",
		"call me ",
		"you can call me ",
		"people call me ",
	}

	interestTriggers = []string{
		"i like", "i love", "i enjoy", "interested in", "hobby",
		"passion", "fascinated", "enthusiast", "fan of", "into",
	}

	skillTriggers = []string{
		"i know", "i can", "i'm good at", "expertise", "skilled in",
		"experienced with", "proficient", "master", "expert",
	}
)

// ExtractFacts scans the user's messages for statements about themselves:
// a preferred name, interests, and skills. Only user turns are considered;
// assistant output never feeds the profile.
func ExtractFacts(messages []Message) Facts {
	facts := Facts{}

	for _, msg := range messages {
		if msg.Role != RoleUser {
			continue
		}
		content := strings.TrimSpace(msg.Content)
		lower := strings.ToLower(content)

		if name := extractName(content, lower); name != "" {
			facts.PreferredName = name
		}
		for _, trigger := range interestTriggers {
			if fragment := afterTrigger(lower, trigger); fragment != "" {
				facts.Interests.Add(fragment)
			}
		}
		for _, trigger := range skillTriggers {
			if fragment := afterTrigger(lower, trigger); fragment != "" {
				facts.Skills.Add(fragment)
			}
		}
	}

	return facts
}

// extractName picks the first word following a name phrase, accepting it
// only when purely alphabetic and longer than one rune.
func extractName(content, lower string) string {
	for _, phrase := range namePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		rest := content[idx+len(phrase):]
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		candidate := strings.TrimFunc(fields[0], func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if len(candidate) > 1 && isAlpha(candidate) {
			return capitalize(candidate)
		}
	}
	return ""
}

// afterTrigger returns the cleaned clause following a trigger phrase, up to
// the next sentence break and at most 50 bytes. Fragments of two characters
// or fewer are discarded as noise.
func afterTrigger(lower, trigger string) string {
	idx := strings.Index(lower, trigger)
	if idx < 0 {
		return ""
	}
	fragment := lower[idx+len(trigger):]
	if len(fragment) > 50 {
		fragment = fragment[:50]
	}
	if dot := strings.IndexByte(fragment, '.'); dot >= 0 {
		fragment = fragment[:dot]
	}
	fragment = strings.TrimSpace(fragment)
	if len(fragment) <= 2 {
		return ""
	}
	return fragment
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
