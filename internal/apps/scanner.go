// Package apps discovers installed applications and games and launches them
// behind the permission gate.
package apps

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// App is one discovered application.
type App struct {
	Name string
	Path string
}

// systemKeywords mark executables that are tooling rather than applications.
var systemKeywords = []string{
	"uninstall", "installer", "setup", "temp", "system",
	"config", "debug", "test", "helper", ".net", "runtime",
}

// ScanOptions controls an application scan.
type ScanOptions struct {
	Roots    []string          // directories to walk; empty means DefaultAppRoots()
	Limit    int               // stop after this many apps (0 = 50)
	MaxDepth int               // directory depth below each root (0 = 4)
	Ignore   *IgnoreMatcher    // optional user exclude patterns
	OnVisit  func(path string) // called per discovered app, for progress output
}

// DefaultAppRoots returns the directories applications live in on this OS.
func DefaultAppRoots() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files`,
			`C:\Program Files (x86)`,
			filepath.Join(home, `AppData\Local\Programs`),
		}
	case "darwin":
		return []string{
			"/Applications",
			filepath.Join(home, "Applications"),
		}
	default:
		return []string{
			"/usr/share/applications",
			"/usr/local/bin",
			filepath.Join(home, ".local", "share", "applications"),
			filepath.Join(home, ".local", "bin"),
		}
	}
}

// Scan walks the roots and collects launchable applications, sorted by name.
// Unreadable directories are skipped, never fatal.
func Scan(opts ScanOptions) []App {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = DefaultAppRoots()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 4
	}

	found := make(map[string]string)
	for _, root := range roots {
		if len(found) >= limit {
			break
		}
		scanRoot(root, maxDepth, limit, opts.Ignore, opts.OnVisit, found, isLaunchable, systemKeywords)
	}

	return sortApps(found)
}

// scanRoot walks one root, respecting depth, ignore patterns, and exclusion
// keywords, and adds hits to found keyed by lowercase display name.
func scanRoot(root string, maxDepth, limit int, ignore *IgnoreMatcher,
	onVisit func(string), found map[string]string,
	launchable func(fs.DirEntry) bool, excludes []string) {

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return
	}

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if len(found) >= limit {
			return filepath.SkipAll
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if depth(rel) > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore != nil && ignore.Match(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// macOS .app bundles are the launchable unit themselves.
			if runtime.GOOS == "darwin" && strings.HasSuffix(d.Name(), ".app") {
				name := displayName(d.Name())
				if !excluded(name, excludes) {
					record(found, name, path, onVisit)
				}
				return filepath.SkipDir
			}
			return nil
		}

		if !launchable(d) {
			return nil
		}
		name := displayName(d.Name())
		if name == "" || excluded(name, excludes) {
			return nil
		}
		record(found, name, path, onVisit)
		return nil
	})
}

func record(found map[string]string, name, path string, onVisit func(string)) {
	if _, ok := found[name]; ok {
		return
	}
	found[name] = path
	if onVisit != nil {
		onVisit(path)
	}
}

// isLaunchable reports whether a directory entry looks like an application
// for this OS.
func isLaunchable(d fs.DirEntry) bool {
	name := d.Name()
	switch runtime.GOOS {
	case "windows":
		return strings.EqualFold(filepath.Ext(name), ".exe")
	default:
		if strings.HasSuffix(name, ".desktop") {
			return true
		}
		info, err := d.Info()
		if err != nil {
			return false
		}
		return info.Mode().IsRegular() && info.Mode()&0o111 != 0
	}
}

// displayName lowercases the file name and strips the launcher extension.
func displayName(file string) string {
	name := strings.ToLower(file)
	for _, ext := range []string{".exe", ".desktop", ".app", ".lnk"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func excluded(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func depth(rel string) int {
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func sortApps(found map[string]string) []App {
	apps := make([]App, 0, len(found))
	for name, path := range found {
		apps = append(apps, App{Name: name, Path: path})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps
}

// Search finds one app by name: an exact match wins, then the first
// substring match in sorted order. Empty path means no match.
func Search(apps []App, name string) (App, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return App{}, false
	}
	for _, app := range apps {
		if app.Name == needle {
			return app, true
		}
	}
	for _, app := range apps {
		if strings.Contains(app.Name, needle) {
			return app, true
		}
	}
	return App{}, false
}
