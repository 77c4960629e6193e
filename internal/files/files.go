// Package files provides permission-gated file operations for the
// assistant: reading, writing, deleting, and listing on behalf of the user.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

// Manager performs file operations behind the permission gate.
type Manager struct {
	perms *permission.Manager
	// Confirm asks the user to approve a gated operation. When nil,
	// operations that require confirmation are refused.
	Confirm func(prompt string) bool
}

// NewManager creates a Manager.
func NewManager(perms *permission.Manager) *Manager {
	return &Manager{perms: perms}
}

// Read returns the contents of the file at path. Requires file_read.
func (m *Manager) Read(path string) (string, error) {
	desc := fmt.Sprintf("Allow reading file: %s?", path)
	if err := m.perms.Authorize(permission.FileRead, desc, m.Confirm); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("files: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write stores content at path, creating parent directories as needed.
// Requires file_write.
func (m *Manager) Write(path, content string) error {
	desc := fmt.Sprintf("Allow writing to file: %s?", path)
	if err := m.perms.Authorize(permission.FileWrite, desc, m.Confirm); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("files: write %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("files: write %s: %w", path, err)
	}
	return nil
}

// Delete removes the file at path. Requires file_delete, which is denied
// by default.
func (m *Manager) Delete(path string) error {
	desc := fmt.Sprintf("Delete file: %s?", path)
	if err := m.perms.Authorize(permission.FileDelete, desc, m.Confirm); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("files: delete %s: %w", path, err)
	}
	return nil
}

// Entry describes one directory member.
type Entry struct {
	Name string
	Dir  bool
	Size int64
}

// List returns the members of dir sorted by name. Listing reads metadata
// only and is not gated.
func (m *Manager) List(dir string) ([]Entry, error) {
	members, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("files: list %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(members))
	for _, member := range members {
		e := Entry{Name: member.Name(), Dir: member.IsDir()}
		if !e.Dir {
			if info, err := member.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
