package permission

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "permissions.json"))
}

func TestDefaultsAreRestrictive(t *testing.T) {
	m := newTestManager(t)

	cases := map[Operation]Level{
		FileRead:       RequireConfirmation,
		FileWrite:      RequireConfirmation,
		FileDelete:     Deny,
		AppLaunch:      RequireConfirmation,
		SystemCommand:  Deny,
		InternetAccess: Deny,
	}
	for op, want := range cases {
		if got := m.Check(op); got != want {
			t.Errorf("Check(%s) = %v, want %v", op, got, want)
		}
	}
}

func TestUnknownOperationDenied(t *testing.T) {
	m := newTestManager(t)
	if got := m.Check(Operation("teleport")); got != Deny {
		t.Fatalf("Check(teleport) = %v, want Deny", got)
	}
}

func TestSetPersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.json")

	m := NewManager(path)
	if err := m.Set(InternetAccess, Allow, true); err != nil {
		t.Fatal(err)
	}

	reloaded := NewManager(path)
	if got := reloaded.Check(InternetAccess); got != Allow {
		t.Fatalf("reloaded Check(internet_access) = %v, want Allow", got)
	}
	// Untouched operations keep their defaults.
	if got := reloaded.Check(SystemCommand); got != Deny {
		t.Fatalf("reloaded Check(system_command) = %v, want Deny", got)
	}
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	if got := m.Check(FileDelete); got != Deny {
		t.Fatalf("Check(file_delete) = %v, want Deny", got)
	}
}

func TestUnknownLevelNameIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.json")
	if err := os.WriteFile(path, []byte(`{"file_delete": "SUPER_ALLOW"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	if got := m.Check(FileDelete); got != Deny {
		t.Fatalf("mangled entry widened access: %v", got)
	}
}

func TestTemporaryGrantExpires(t *testing.T) {
	m := newTestManager(t)

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	m.GrantTemporary(SystemCommand, 5*time.Minute)
	if got := m.Check(SystemCommand); got != Allow {
		t.Fatalf("Check during grant = %v, want Allow", got)
	}

	current = current.Add(6 * time.Minute)
	if got := m.Check(SystemCommand); got != Deny {
		t.Fatalf("Check after expiry = %v, want Deny", got)
	}
}

func TestTemporaryGrantDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.json")

	m := NewManager(path)
	m.GrantTemporary(FileDelete, time.Hour)
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewManager(path)
	if got := reloaded.Check(FileDelete); got != Deny {
		t.Fatalf("temporary grant leaked to disk: %v", got)
	}
}

func TestRevokeTemporary(t *testing.T) {
	m := newTestManager(t)

	m.GrantTemporary(FileDelete, time.Hour)
	m.RevokeTemporary(FileDelete)
	if got := m.Check(FileDelete); got != Deny {
		t.Fatalf("Check after revoke = %v, want Deny", got)
	}
}

func TestAuthorize(t *testing.T) {
	m := newTestManager(t)

	if err := m.Authorize(FileDelete, "delete notes.txt", nil); err == nil {
		t.Fatal("Authorize on denied operation should fail")
	}

	if err := m.Authorize(FileRead, "read notes.txt", nil); err == nil {
		t.Fatal("Authorize without confirmer should fail when confirmation is required")
	}

	var asked string
	approve := func(desc string) bool { asked = desc; return true }
	if err := m.Authorize(FileRead, "read notes.txt", approve); err != nil {
		t.Fatalf("Authorize approved: %v", err)
	}
	if asked != "read notes.txt" {
		t.Fatalf("confirmer asked %q", asked)
	}

	reject := func(string) bool { return false }
	if err := m.Authorize(FileRead, "read notes.txt", reject); err == nil {
		t.Fatal("Authorize rejected by confirmer should fail")
	}

	m.Set(InternetAccess, Allow, false)
	called := false
	if err := m.Authorize(InternetAccess, "search the web", func(string) bool { called = true; return false }); err != nil {
		t.Fatalf("Authorize on allowed operation: %v", err)
	}
	if called {
		t.Fatal("confirmer should not run for allowed operations")
	}
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, level := range []Level{Deny, RequireConfirmation, Allow} {
		got, err := ParseLevel(level.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != level {
			t.Fatalf("ParseLevel(%s) = %v", level, got)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("ParseLevel(bogus) should fail")
	}
}
