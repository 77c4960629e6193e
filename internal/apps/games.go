package apps

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// gameExcludes mark executables under game roots that are support tooling,
// not the game itself.
var gameExcludes = []string{
	"uninstall", "installer", "setup", "helper", "launcher", "config",
	"redist", "vcredist", "runtime", "update", "patch", "crash",
}

// DefaultGameRoots returns the directories game platforms install into on
// this OS.
func DefaultGameRoots() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\Steam\steamapps\common`,
			`C:\Program Files (x86)\Steam\steamapps\common`,
			`C:\Program Files\Epic Games`,
			`C:\Program Files (x86)\Epic Games`,
			`C:\Program Files\GOG Galaxy\Games`,
			`C:\Program Files (x86)\GOG Galaxy\Games`,
			`C:\Games`,
			filepath.Join(home, "Games"),
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam", "steamapps", "common"),
			"/Applications",
		}
	default:
		return []string{
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "common"),
			filepath.Join(home, ".steam", "steam", "steamapps", "common"),
			filepath.Join(home, "Games"),
		}
	}
}

// ScanGames walks the game roots and collects installed games, sorted by
// name. Options behave as in Scan; empty Roots means DefaultGameRoots().
func ScanGames(opts ScanOptions) []App {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = DefaultGameRoots()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	found := make(map[string]string)
	for _, root := range roots {
		if len(found) >= limit {
			break
		}
		scanRoot(root, maxDepth, limit, opts.Ignore, opts.OnVisit, found, isGameEntry, gameExcludes)
	}

	return sortApps(found)
}

// isGameEntry is the launchable test for game roots. Steam-style layouts
// keep one directory per game with the main binary inside, so any
// executable-looking file counts; filtering happens via gameExcludes.
func isGameEntry(d fs.DirEntry) bool {
	name := strings.ToLower(d.Name())
	switch runtime.GOOS {
	case "windows":
		ext := filepath.Ext(name)
		return ext == ".exe" || ext == ".bat" || ext == ".cmd" || ext == ".lnk"
	default:
		info, err := d.Info()
		if err != nil {
			return false
		}
		return info.Mode().IsRegular() && info.Mode()&0o111 != 0
	}
}
