package apps

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

func newTestPerms(t *testing.T) *permission.Manager {
	t.Helper()
	return permission.NewManager(filepath.Join(t.TempDir(), "permissions.json"))
}

func TestAuthorizeDeny(t *testing.T) {
	perms := newTestPerms(t)
	perms.Set(permission.AppLaunch, permission.Deny, false)

	l := NewLauncher(perms)
	err := l.authorize("/bin/something")
	if !errors.Is(err, ErrLaunchDenied) {
		t.Fatalf("err = %v, want ErrLaunchDenied", err)
	}
}

func TestAuthorizeConfirmRejected(t *testing.T) {
	perms := newTestPerms(t)
	l := NewLauncher(perms)

	var prompted string
	l.Confirm = func(prompt string) bool {
		prompted = prompt
		return false
	}

	err := l.authorize("/bin/editor")
	if !errors.Is(err, ErrLaunchDenied) {
		t.Fatalf("err = %v, want ErrLaunchDenied", err)
	}
	if prompted == "" {
		t.Fatal("confirmation prompt never shown")
	}
}

func TestAuthorizeConfirmAccepted(t *testing.T) {
	perms := newTestPerms(t)
	l := NewLauncher(perms)
	l.Confirm = func(string) bool { return true }

	if err := l.authorize("/bin/editor"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
}

func TestAuthorizeGrantsTemporaryWithoutConfirmer(t *testing.T) {
	perms := newTestPerms(t)
	l := NewLauncher(perms)

	if err := l.authorize("/bin/editor"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
	// The temporary grant should make the next check pass outright.
	if got := perms.Check(permission.AppLaunch); got != permission.Allow {
		t.Fatalf("Check after grant = %v, want Allow", got)
	}
}

func TestAuthorizeAllow(t *testing.T) {
	perms := newTestPerms(t)
	perms.Set(permission.AppLaunch, permission.Allow, false)

	l := NewLauncher(perms)
	if err := l.authorize("/bin/editor"); err != nil {
		t.Fatalf("authorize: %v", err)
	}
}

func TestLaunchDeniedDoesNotStartProcess(t *testing.T) {
	perms := newTestPerms(t)
	perms.Set(permission.AppLaunch, permission.Deny, false)

	l := NewLauncher(perms)
	if err := l.Launch("/bin/true"); !errors.Is(err, ErrLaunchDenied) {
		t.Fatalf("err = %v, want ErrLaunchDenied", err)
	}
}
