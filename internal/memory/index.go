package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// indexEntry is the per-conversation record held in the index file.
type indexEntry struct {
	Timestamp    string   `json:"timestamp"`
	MessageCount int      `json:"message_count"`
	Keywords     []string `json:"keywords"`
}

// indexFile is the on-disk shape of conversation_index.json.
type indexFile struct {
	Conversations map[string]indexEntry `json:"conversations"`
	Keywords      map[string][]string   `json:"keywords"`
}

// Index maintains the keyword lookup over stored conversations. The inverted
// keyword map is append-biased: replacing a conversation's keywords adds the
// new associations without pruning the old ones, so stale entries can point
// at a conversation until the index is rebuilt.
type Index struct {
	path          string
	conversations map[string]indexEntry
	inverted      map[string][]string
}

// Match is one scored index hit.
type Match struct {
	SessionID    string
	Timestamp    string
	MessageCount int
	Keywords     []string
	Score        float64
}

// OpenIndex loads the index at path, starting empty when the file is absent
// or unreadable.
func OpenIndex(path string) *Index {
	idx := &Index{
		path:          path,
		conversations: make(map[string]indexEntry),
		inverted:      make(map[string][]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return idx
	}
	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		fmt.Fprintf(os.Stderr, "[augi] rebuilding malformed index %s: %v\n", path, err)
		return idx
	}
	if file.Conversations != nil {
		idx.conversations = file.Conversations
	}
	if file.Keywords != nil {
		idx.inverted = file.Keywords
	}
	return idx
}

// AddOrReplace records keyword metadata for a conversation and persists the
// index. An existing entry's metadata is overwritten; inverted associations
// only grow.
func (idx *Index) AddOrReplace(sessionID, ts string, messageCount int, keywords []string) error {
	idx.conversations[sessionID] = indexEntry{
		Timestamp:    ts,
		MessageCount: messageCount,
		Keywords:     keywords,
	}
	for _, kw := range keywords {
		if !containsString(idx.inverted[kw], sessionID) {
			idx.inverted[kw] = append(idx.inverted[kw], sessionID)
		}
	}
	return idx.save()
}

// Remove drops a conversation's entry and persists. Inverted associations
// referring to it are left in place, matching the append-only keyword map;
// lookups filter them against the conversation table.
func (idx *Index) Remove(sessionID string) error {
	delete(idx.conversations, sessionID)
	return idx.save()
}

// Keywords returns the indexed keywords for a conversation.
func (idx *Index) Keywords(sessionID string) []string {
	return idx.conversations[sessionID].Keywords
}

// Len returns the number of indexed conversations.
func (idx *Index) Len() int { return len(idx.conversations) }

// SearchByKeywords scores every indexed conversation against the query
// keywords. An exact keyword bucket hit scores 1.0 per query keyword;
// a substring relation in either direction scores 0.5. Results come back
// highest score first, at most limit of them.
func (idx *Index) SearchByKeywords(keywords []string, limit int) []Match {
	scores := make(map[string]float64)

	// Sorted key iteration keeps partial-match accumulation deterministic.
	sortedKeys := make([]string, 0, len(idx.inverted))
	for kw := range idx.inverted {
		sortedKeys = append(sortedKeys, kw)
	}
	sort.Strings(sortedKeys)

	for _, query := range keywords {
		if ids, ok := idx.inverted[query]; ok {
			for _, id := range ids {
				scores[id] += 1.0
			}
		}
		for _, indexed := range sortedKeys {
			if indexed == query {
				continue
			}
			if containsEither(indexed, query) {
				for _, id := range idx.inverted[indexed] {
					scores[id] += 0.5
				}
			}
		}
	}

	matches := make([]Match, 0, len(scores))
	for _, id := range sortedSessionIDs(scores) {
		entry, ok := idx.conversations[id]
		if !ok {
			continue // stale inverted association
		}
		matches = append(matches, Match{
			SessionID:    id,
			Timestamp:    entry.Timestamp,
			MessageCount: entry.MessageCount,
			Keywords:     entry.Keywords,
			Score:        scores[id],
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Recent returns the newest indexed conversations by timestamp, for queries
// that carry no recognizable keywords.
func (idx *Index) Recent(limit int) []Match {
	matches := make([]Match, 0, len(idx.conversations))
	for id, entry := range idx.conversations {
		matches = append(matches, Match{
			SessionID:    id,
			Timestamp:    entry.Timestamp,
			MessageCount: entry.MessageCount,
			Keywords:     entry.Keywords,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Timestamp != matches[j].Timestamp {
			return matches[i].Timestamp > matches[j].Timestamp
		}
		return matches[i].SessionID > matches[j].SessionID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Reset discards every entry and persists the empty index.
func (idx *Index) Reset() error {
	idx.conversations = make(map[string]indexEntry)
	idx.inverted = make(map[string][]string)
	return idx.save()
}

func (idx *Index) save() error {
	file := indexFile{
		Conversations: idx.conversations,
		Keywords:      idx.inverted,
	}
	if err := writeJSONAtomic(idx.path, file); err != nil {
		return fmt.Errorf("index: save: %w", err)
	}
	return nil
}

func sortedSessionIDs(scores map[string]float64) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// containsEither reports a substring relation in either direction.
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
