// Package memory stores conversations as JSON files, maintains a keyword
// index over them, and accumulates a learned user profile. Everything lives
// under a single memory directory supplied by the caller.
package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	conversationsDirName = "conversations"
	indexFileName        = "conversation_index.json"
	profileFileName      = "user_profile.json"
)

// Manager is the facade over conversation storage, the keyword index, and
// the user profile.
type Manager struct {
	dir      string
	sessions *SessionStore
	index    *Index
	profiles *ProfileStore
}

// NewManager opens (creating if needed) the memory layout rooted at dir.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, fmt.Errorf("memory: directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("memory: create %s: %w", dir, err)
	}

	sessions, err := NewSessionStore(filepath.Join(dir, conversationsDirName))
	if err != nil {
		return nil, err
	}

	return &Manager{
		dir:      dir,
		sessions: sessions,
		index:    OpenIndex(filepath.Join(dir, indexFileName)),
		profiles: NewProfileStore(filepath.Join(dir, profileFileName)),
	}, nil
}

// Dir returns the memory root directory.
func (m *Manager) Dir() string { return m.dir }

// Sessions exposes the underlying conversation store.
func (m *Manager) Sessions() *SessionStore { return m.sessions }

// Index exposes the keyword index.
func (m *Manager) Index() *Index { return m.index }

// RecordTurn persists the conversation under sessionID, refreshes its index
// entry, and folds any facts the user stated into the profile. Returns the
// session ID the conversation was stored under.
func (m *Manager) RecordTurn(sessionID string, messages []Message) (string, error) {
	id, err := m.sessions.Save(sessionID, messages)
	if err != nil {
		return "", err
	}

	keywords := ExtractKeywords(messages)
	if err := m.index.AddOrReplace(id, timestamp(), len(messages), keywords); err != nil {
		return "", err
	}

	if facts := ExtractFacts(messages); !facts.Empty() {
		profile := m.profiles.Load()
		if profile.Merge(facts) {
			if err := m.profiles.Save(profile); err != nil {
				return "", err
			}
		}
	}
	return id, nil
}

// RelevantHistory finds past conversations matching the query's topic
// keywords. A query with no recognized keywords falls back to the most
// recent conversations.
func (m *Manager) RelevantHistory(query string, limit int) ([]Summary, error) {
	keywords := QueryKeywords(query)
	if len(keywords) == 0 {
		return m.sessions.ListRecent(limit)
	}

	var summaries []Summary
	for _, match := range m.index.SearchByKeywords(keywords, limit) {
		summary, err := m.sessions.Summary(match.SessionID)
		if err != nil {
			continue // indexed but missing on disk
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ConversationContext renders the tail of a conversation as prompt context.
// Missing conversations yield an empty string.
func (m *Manager) ConversationContext(sessionID string, maxMessages int) string {
	record, err := m.sessions.Get(sessionID)
	if err != nil {
		return ""
	}

	messages := record.Messages
	if maxMessages > 0 && len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Previous conversation from %s:\n", record.Timestamp)
	for _, msg := range messages {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(msg.Role)), snippet(msg.Content, 200))
	}
	return b.String()
}

// Profile returns the current learned profile.
func (m *Manager) Profile() Profile {
	return m.profiles.Load()
}

// SaveProfile persists a modified profile.
func (m *Manager) SaveProfile(p Profile) error {
	return m.profiles.Save(p)
}

// ForgetProfile erases the learned profile, leaving conversations intact.
func (m *Manager) ForgetProfile() error {
	return m.profiles.Remove()
}

// LatestSessionID returns the most recently written session, or ErrNotFound.
func (m *Manager) LatestSessionID() (string, error) {
	return m.sessions.Latest()
}

// Reindex rebuilds the keyword index from scratch by re-reading every stored
// conversation. onEach, when non-nil, is called once per conversation as it
// is processed. Returns how many conversations were indexed.
func (m *Manager) Reindex(onEach func(sessionID string)) (int, error) {
	if err := m.index.Reset(); err != nil {
		return 0, err
	}

	ids, err := m.sessions.SessionIDs()
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, id := range ids {
		record, err := m.sessions.Get(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[augi] reindex skipping %s: %v\n", id, err)
			continue
		}
		keywords := ExtractKeywords(record.Messages)
		if err := m.index.AddOrReplace(id, record.Timestamp, len(record.Messages), keywords); err != nil {
			return indexed, err
		}
		indexed++
		if onEach != nil {
			onEach(id)
		}
	}
	return indexed, nil
}

// ClearAll deletes every conversation, the index, and the profile. It does
// nothing unless confirm is true.
func (m *Manager) ClearAll(confirm bool) error {
	if !confirm {
		return fmt.Errorf("memory: clear all requires confirmation")
	}
	if err := m.sessions.RemoveAll(); err != nil {
		return err
	}
	if err := m.index.Reset(); err != nil {
		return err
	}
	return m.profiles.Remove()
}
