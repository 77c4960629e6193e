package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SessionStore persists one JSON file per conversation under dir.
type SessionStore struct {
	dir string
}

// NewSessionStore creates the conversations directory if needed.
func NewSessionStore(dir string) (*SessionStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create directory: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

// Dir returns the directory conversations are stored in.
func (s *SessionStore) Dir() string { return s.dir }

func (s *SessionStore) path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// Save writes the full conversation record for sessionID, overwriting any
// prior record. When sessionID is empty a time-derived one is assigned.
// Returns the session ID the record was stored under.
func (s *SessionStore) Save(sessionID string, messages []Message) (string, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	record := Conversation{
		Timestamp:    timestamp(),
		SessionID:    sessionID,
		Messages:     messages,
		MessageCount: len(messages),
	}

	if err := writeJSONAtomic(s.path(sessionID), record); err != nil {
		return "", fmt.Errorf("session: save %s: %w", sessionID, err)
	}
	return sessionID, nil
}

// Load returns the message sequence for sessionID. A missing or unreadable
// record yields ErrNotFound; malformed records are never fatal.
func (s *SessionStore) Load(sessionID string) ([]Message, error) {
	record, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return record.Messages, nil
}

// Get returns the full conversation record for sessionID.
func (s *SessionStore) Get(sessionID string) (Conversation, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		return Conversation{}, ErrNotFound
	}
	var record Conversation
	if err := json.Unmarshal(data, &record); err != nil {
		return Conversation{}, ErrNotFound
	}
	if record.SessionID == "" {
		record.SessionID = sessionID
	}
	return record, nil
}

// ListRecent returns summaries of the most recently modified conversations,
// newest first. Corrupt records are skipped with a warning, never aborting
// the listing.
func (s *SessionStore) ListRecent(limit int) ([]Summary, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	var summaries []Summary
	for _, path := range files {
		record, err := readConversation(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[augi] skipping unreadable conversation %s: %v\n", filepath.Base(path), err)
			continue
		}
		summaries = append(summaries, Summary{
			SessionID:    record.SessionID,
			Timestamp:    record.Timestamp,
			MessageCount: record.MessageCount,
		})
	}
	return summaries, nil
}

// SearchText scans every conversation for a case-insensitive substring match
// and returns up to limit summaries, one per conversation, carrying the first
// matching message. Corrupt records are skipped.
func (s *SessionStore) SearchText(keyword string, limit int) ([]Summary, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)

	var results []Summary
	for _, path := range files {
		if limit > 0 && len(results) >= limit {
			break
		}
		record, err := readConversation(path)
		if err != nil {
			continue
		}
		for _, msg := range record.Messages {
			if strings.Contains(strings.ToLower(msg.Content), needle) {
				results = append(results, Summary{
					SessionID:      record.SessionID,
					Timestamp:      record.Timestamp,
					MessageCount:   len(record.Messages),
					MatchedContent: snippet(msg.Content, 100),
				})
				break // one hit per conversation
			}
		}
	}
	return results, nil
}

// Summary returns the listing view of one conversation along with its first
// user message and last assistant response, truncated for display.
func (s *SessionStore) Summary(sessionID string) (Summary, error) {
	record, err := s.Get(sessionID)
	if err != nil {
		return Summary{}, err
	}

	var firstUser, lastAssistant string
	for _, msg := range record.Messages {
		if msg.Role == RoleUser && firstUser == "" {
			firstUser = snippet(msg.Content, 100)
		}
		if msg.Role == RoleAssistant {
			lastAssistant = snippet(msg.Content, 100)
		}
	}

	return Summary{
		SessionID:    sessionID,
		Timestamp:    record.Timestamp,
		MessageCount: len(record.Messages),
		FirstMessage: firstUser,
		LastResponse: lastAssistant,
	}, nil
}

// Latest returns the session ID of the most recently modified conversation.
func (s *SessionStore) Latest() (string, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNotFound
	}
	return strings.TrimSuffix(filepath.Base(files[0]), ".json"), nil
}

// SessionIDs returns every stored session ID, newest first.
func (s *SessionStore) SessionIDs() ([]string, error) {
	files, err := s.sortedFiles()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(files))
	for _, path := range files {
		ids = append(ids, strings.TrimSuffix(filepath.Base(path), ".json"))
	}
	return ids, nil
}

// RemoveAll deletes every conversation file.
func (s *SessionStore) RemoveAll() error {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return fmt.Errorf("session: remove all: %w", err)
	}
	for _, path := range files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session: remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// sortedFiles lists conversation files by modification time, newest first.
func (s *SessionStore) sortedFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("session: read directory: %w", err)
	}

	type fileInfo struct {
		path    string
		modTime int64
	}
	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(s.dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime > files[j].modTime
		}
		return files[i].path > files[j].path
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

func readConversation(path string) (Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, err
	}
	var record Conversation
	if err := json.Unmarshal(data, &record); err != nil {
		return Conversation{}, err
	}
	if record.SessionID == "" {
		record.SessionID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return record, nil
}

// writeJSONAtomic marshals v and writes it via a temp file and rename, so an
// interrupted write never corrupts the previous version of the record.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
