package apps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanFindsExecutables(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, "editor")
	writeExecutable(t, root, "browser")
	// Not executable: must be skipped.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	apps := Scan(ScanOptions{Roots: []string{root}})
	if len(apps) != 2 {
		t.Fatalf("got %d apps: %+v", len(apps), apps)
	}
	// Sorted by name.
	if apps[0].Name != "browser" || apps[1].Name != "editor" {
		t.Fatalf("order = %+v", apps)
	}
}

func TestScanSkipsSystemKeywords(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, "uninstall-everything")
	writeExecutable(t, root, "app-setup")
	writeExecutable(t, root, "player")

	apps := Scan(ScanOptions{Roots: []string{root}})
	if len(apps) != 1 || apps[0].Name != "player" {
		t.Fatalf("apps = %+v", apps)
	}
}

func TestScanHonorsLimit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		writeExecutable(t, root, name)
	}

	apps := Scan(ScanOptions{Roots: []string{root}, Limit: 2})
	if len(apps) != 2 {
		t.Fatalf("got %d apps, want 2", len(apps))
	}
}

func TestScanHonorsDepth(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, "shallow")
	writeExecutable(t, root, filepath.Join("a", "b", "c", "deep"))

	apps := Scan(ScanOptions{Roots: []string{root}, MaxDepth: 2})
	if len(apps) != 1 || apps[0].Name != "shallow" {
		t.Fatalf("apps = %+v", apps)
	}
}

func TestScanAppliesIgnorePatterns(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, "keep")
	writeExecutable(t, root, filepath.Join("legacy", "old-tool"))

	ignore := NewIgnoreMatcherFromLines("legacy/")
	apps := Scan(ScanOptions{Roots: []string{root}, Ignore: ignore})
	if len(apps) != 1 || apps[0].Name != "keep" {
		t.Fatalf("apps = %+v", apps)
	}
}

func TestScanMissingRoot(t *testing.T) {
	apps := Scan(ScanOptions{Roots: []string{"/does/not/exist"}})
	if len(apps) != 0 {
		t.Fatalf("apps = %+v", apps)
	}
}

func TestScanReportsProgress(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, "one")
	writeExecutable(t, root, "two")

	var visited []string
	Scan(ScanOptions{Roots: []string{root}, OnVisit: func(p string) { visited = append(visited, p) }})
	if len(visited) != 2 {
		t.Fatalf("visited = %v", visited)
	}
}

func TestScanGamesExcludesTooling(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable-bit scan is not the windows path")
	}
	root := t.TempDir()
	writeExecutable(t, root, filepath.Join("SuperGame", "supergame"))
	writeExecutable(t, root, filepath.Join("SuperGame", "vcredist_x64"))
	writeExecutable(t, root, filepath.Join("SuperGame", "update_installer"))

	games := ScanGames(ScanOptions{Roots: []string{root}})
	if len(games) != 1 || games[0].Name != "supergame" {
		t.Fatalf("games = %+v", games)
	}
}

func TestSearch(t *testing.T) {
	apps := []App{
		{Name: "calc", Path: "/bin/calc"},
		{Name: "calculator pro", Path: "/bin/calcpro"},
		{Name: "editor", Path: "/bin/editor"},
	}

	if got, ok := Search(apps, "calc"); !ok || got.Path != "/bin/calc" {
		t.Fatalf("exact match = %+v, %v", got, ok)
	}
	if got, ok := Search(apps, "culator"); !ok || got.Path != "/bin/calcpro" {
		t.Fatalf("substring match = %+v, %v", got, ok)
	}
	if _, ok := Search(apps, "missing"); ok {
		t.Fatal("unexpected match")
	}
	if _, ok := Search(apps, "  "); ok {
		t.Fatal("blank query matched")
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"Notepad.EXE":     "notepad",
		"firefox.desktop": "firefox",
		"Safari.app":      "safari",
		"plain":           "plain",
	}
	for in, want := range cases {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}
