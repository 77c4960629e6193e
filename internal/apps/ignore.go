package apps

import (
	"os"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreMatcher wraps a gitignore pattern matcher over the user's scan
// exclude file.
type IgnoreMatcher struct {
	gi *gitignore.GitIgnore
}

// NewIgnoreMatcher loads gitignore-style patterns from path.
// If the file is absent or unreadable, the matcher accepts everything.
func NewIgnoreMatcher(path string) *IgnoreMatcher {
	if _, err := os.Stat(path); err != nil {
		return &IgnoreMatcher{}
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{gi: gi}
}

// NewIgnoreMatcherFromLines builds a matcher from in-memory patterns.
func NewIgnoreMatcherFromLines(lines ...string) *IgnoreMatcher {
	return &IgnoreMatcher{gi: gitignore.CompileIgnoreLines(lines...)}
}

// Match returns true if the given path should be ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(path)
}
