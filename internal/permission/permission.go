// Package permission gates sensitive assistant operations behind
// configurable levels. Persistent levels live in a JSON file; temporary
// grants live only in memory and expire on their own.
package permission

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Level is how an operation is allowed to proceed.
type Level int

const (
	Deny Level = iota
	RequireConfirmation
	Allow
)

var levelNames = map[Level]string{
	Deny:                "DENY",
	RequireConfirmation: "REQUIRE_CONFIRMATION",
	Allow:               "ALLOW",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel maps a stored level name back to its Level. Unknown names are
// an error so a mangled permissions file never silently widens access.
func ParseLevel(name string) (Level, error) {
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return Deny, fmt.Errorf("permission: unknown level %q", name)
}

// Operation identifies a category of gated action.
type Operation string

const (
	FileRead       Operation = "file_read"
	FileWrite      Operation = "file_write"
	FileDelete     Operation = "file_delete"
	AppLaunch      Operation = "app_launch"
	SystemCommand  Operation = "system_command"
	InternetAccess Operation = "internet_access"
)

// Operations lists every gated operation in display order.
var Operations = []Operation{
	FileRead, FileWrite, FileDelete, AppLaunch, SystemCommand, InternetAccess,
}

// IsOperation reports whether s names a known operation.
func IsOperation(s string) bool {
	for _, op := range Operations {
		if string(op) == s {
			return true
		}
	}
	return false
}

type grant struct {
	level  Level
	expiry time.Time
}

// Manager holds the persistent permission table and in-memory timed grants.
// Not safe for concurrent use.
type Manager struct {
	path   string
	levels map[Operation]Level
	grants map[Operation]grant
	now    func() time.Time
}

// NewManager loads the permission table at path, falling back to the
// restrictive defaults when the file is absent or unreadable.
func NewManager(path string) *Manager {
	m := &Manager{
		path:   path,
		grants: make(map[Operation]grant),
		now:    time.Now,
	}
	m.load()
	return m
}

func defaults() map[Operation]Level {
	return map[Operation]Level{
		FileRead:       RequireConfirmation,
		FileWrite:      RequireConfirmation,
		FileDelete:     Deny,
		AppLaunch:      RequireConfirmation,
		SystemCommand:  Deny,
		InternetAccess: Deny,
	}
}

func (m *Manager) load() {
	m.levels = defaults()

	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		fmt.Fprintf(os.Stderr, "[augi] using default permissions, %s unreadable: %v\n", m.path, err)
		return
	}

	for op, name := range stored {
		level, err := ParseLevel(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[augi] ignoring permission entry %s: %v\n", op, err)
			continue
		}
		m.levels[Operation(op)] = level
	}
}

// Save persists the permanent permission table. Timed grants are never
// written to disk.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("permission: create directory: %w", err)
	}

	stored := make(map[string]string, len(m.levels))
	for op, level := range m.levels {
		stored[string(op)] = level.String()
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("permission: encode: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("permission: write %s: %w", m.path, err)
	}
	return nil
}

// Check returns the effective level for an operation. A live timed grant
// takes precedence over the permanent table; expired grants are dropped.
// Unknown operations are denied.
func (m *Manager) Check(op Operation) Level {
	m.cleanup()

	if g, ok := m.grants[op]; ok {
		return g.level
	}
	if level, ok := m.levels[op]; ok {
		return level
	}
	return Deny
}

// Set assigns a permanent level and, when persist is true, writes the table
// to disk.
func (m *Manager) Set(op Operation, level Level, persist bool) error {
	m.levels[op] = level
	if persist {
		return m.Save()
	}
	return nil
}

// Authorize checks the operation and, when the level requires confirmation,
// asks via the confirm callback. A nil callback refuses confirmation-gated
// operations.
func (m *Manager) Authorize(op Operation, desc string, confirm func(string) bool) error {
	switch m.Check(op) {
	case Allow:
		return nil
	case RequireConfirmation:
		if confirm != nil && confirm(desc) {
			return nil
		}
		return fmt.Errorf("permission: %s: confirmation refused", op)
	default:
		return fmt.Errorf("permission: %s: denied", op)
	}
}

// GrantTemporary allows an operation for the given duration without touching
// the permanent table.
func (m *Manager) GrantTemporary(op Operation, d time.Duration) {
	m.grants[op] = grant{level: Allow, expiry: m.now().Add(d)}
}

// RevokeTemporary drops any live grant for the operation.
func (m *Manager) RevokeTemporary(op Operation) {
	delete(m.grants, op)
}

// Levels returns a copy of the permanent table.
func (m *Manager) Levels() map[Operation]Level {
	out := make(map[Operation]Level, len(m.levels))
	for op, level := range m.levels {
		out[op] = level
	}
	return out
}

func (m *Manager) cleanup() {
	now := m.now()
	for op, g := range m.grants {
		if now.After(g.expiry) {
			delete(m.grants, op)
		}
	}
}
