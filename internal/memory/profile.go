package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Profile is the learned user record persisted as user_profile.json.
// Interests, skills, and hobbies only ever grow; scalar fields take the
// most recent value.
type Profile struct {
	Created       string         `json:"created"`
	LastUpdated   string         `json:"last_updated"`
	PreferredName string         `json:"preferred_name,omitempty"`
	Location      string         `json:"location,omitempty"`
	Interests     StringSet      `json:"interests"`
	Skills        StringSet      `json:"skills"`
	Hobbies       StringSet      `json:"hobbies"`
	Preferences   map[string]any `json:"preferences"`
	FavoriteApps  []string       `json:"favorite_apps"`
	FavoriteGames []string       `json:"favorite_games"`
}

// NewProfile returns an empty profile stamped with the current time.
func NewProfile() Profile {
	now := timestamp()
	return Profile{
		Created:     now,
		LastUpdated: now,
		Preferences: make(map[string]any),
	}
}

// Merge folds extracted facts into the profile. Set-valued fields union;
// preferred name, location, and preference values take the newer value.
// Returns true when anything changed.
func (p *Profile) Merge(facts Facts) bool {
	changed := false

	if facts.PreferredName != "" && facts.PreferredName != p.PreferredName {
		p.PreferredName = facts.PreferredName
		changed = true
	}
	if facts.Location != "" && facts.Location != p.Location {
		p.Location = facts.Location
		changed = true
	}
	for _, v := range facts.Interests.Values() {
		if p.Interests.Add(v) {
			changed = true
		}
	}
	for _, v := range facts.Skills.Values() {
		if p.Skills.Add(v) {
			changed = true
		}
	}
	for _, v := range facts.Hobbies.Values() {
		if p.Hobbies.Add(v) {
			changed = true
		}
	}
	for k, v := range facts.Preferences {
		if p.Preferences == nil {
			p.Preferences = make(map[string]any)
		}
		if existing, ok := p.Preferences[k]; !ok || existing != v {
			p.Preferences[k] = v
			changed = true
		}
	}

	if changed {
		p.LastUpdated = timestamp()
	}
	return changed
}

// SetPreference records one preference key, overwriting any prior value.
func (p *Profile) SetPreference(key string, value any) {
	if p.Preferences == nil {
		p.Preferences = make(map[string]any)
	}
	p.Preferences[key] = value
	p.LastUpdated = timestamp()
}

// AddInterest records an interest the user stated directly.
func (p *Profile) AddInterest(interest string) bool {
	if p.Interests.Add(strings.ToLower(strings.TrimSpace(interest))) {
		p.LastUpdated = timestamp()
		return true
	}
	return false
}

// AddSkill records a skill the user stated directly.
func (p *Profile) AddSkill(skill string) bool {
	if p.Skills.Add(strings.ToLower(strings.TrimSpace(skill))) {
		p.LastUpdated = timestamp()
		return true
	}
	return false
}

// LearningSummary renders the profile for display, showing at most three
// entries per section.
func (p Profile) LearningSummary() string {
	var b strings.Builder
	b.WriteString("What I've learned about you:\n")

	wrote := false
	writeSet := func(label string, set StringSet) {
		values := set.Values()
		if len(values) == 0 {
			return
		}
		shown := values
		if len(shown) > 3 {
			shown = shown[:3]
		}
		fmt.Fprintf(&b, "- %s: %s", label, strings.Join(shown, ", "))
		if extra := len(values) - len(shown); extra > 0 {
			fmt.Fprintf(&b, " (+ %d more)", extra)
		}
		b.WriteString("\n")
		wrote = true
	}

	writeSet("Interested in", p.Interests)
	writeSet("Skilled with", p.Skills)
	writeSet("Hobbies", p.Hobbies)

	if p.PreferredName != "" {
		fmt.Fprintf(&b, "- Preferred name: %s\n", p.PreferredName)
		wrote = true
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "- Location: %s\n", p.Location)
		wrote = true
	}
	if len(p.Preferences) > 0 {
		fmt.Fprintf(&b, "- Preferences recorded: %d\n", len(p.Preferences))
		wrote = true
	}

	if !wrote {
		b.WriteString("Tell me about yourself and I'll learn more.\n")
	}
	return b.String()
}

// ContextForPrompt formats the profile as system prompt context. Empty when
// nothing has been learned.
func (p Profile) ContextForPrompt() string {
	interests := capped(p.Interests.Values(), 5)
	skills := capped(p.Skills.Values(), 5)

	var parts []string
	if len(interests) > 0 || len(skills) > 0 || p.PreferredName != "" || p.Location != "" {
		parts = append(parts, "What I know about you:")
		if p.PreferredName != "" {
			parts = append(parts, "- Name: "+p.PreferredName)
		}
		if p.Location != "" {
			parts = append(parts, "- Location: "+p.Location)
		}
		if len(interests) > 0 {
			parts = append(parts, "- Interests: "+strings.Join(interests, ", "))
		}
		if len(skills) > 0 {
			parts = append(parts, "- Skills/Knowledge: "+strings.Join(skills, ", "))
		}
	}
	return strings.Join(parts, "\n")
}

// Preference returns the string rendering of one preference value, coerced
// whatever JSON type it was stored as.
func (p Profile) Preference(key string) (string, bool) {
	v, ok := p.Preferences[key]
	if !ok {
		return "", false
	}
	return cast.ToString(v), true
}

func capped(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

// ProfileStore reads and writes the profile file.
type ProfileStore struct {
	path string
}

// NewProfileStore returns a store for the profile at path.
func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// Load reads the profile, returning a fresh empty one when the file is
// absent or unreadable.
func (s *ProfileStore) Load() Profile {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return NewProfile()
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		fmt.Fprintf(os.Stderr, "[augi] starting fresh profile, %s unreadable: %v\n", s.path, err)
		return NewProfile()
	}
	if p.Created == "" {
		p.Created = timestamp()
	}
	if p.Preferences == nil {
		p.Preferences = make(map[string]any)
	}
	return p
}

// Save persists the profile atomically.
func (s *ProfileStore) Save(p Profile) error {
	if err := writeJSONAtomic(s.path, p); err != nil {
		return fmt.Errorf("profile: save: %w", err)
	}
	return nil
}

// Remove deletes the profile file if present.
func (s *ProfileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("profile: remove: %w", err)
	}
	return nil
}
