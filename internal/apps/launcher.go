package apps

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

// ErrLaunchDenied is returned when the permission gate blocks a launch.
var ErrLaunchDenied = fmt.Errorf("apps: launch denied")

// Launcher starts applications behind the permission gate.
type Launcher struct {
	perms *permission.Manager
	// Confirm asks the user to approve a launch. When nil and confirmation
	// is required, a short temporary grant is issued instead.
	Confirm func(prompt string) bool
}

// NewLauncher creates a Launcher.
func NewLauncher(perms *permission.Manager) *Launcher {
	return &Launcher{perms: perms}
}

// Launch starts the program at path detached from the current terminal.
// The permission gate is consulted first: Deny blocks, RequireConfirmation
// asks via Confirm (or issues a five-minute temporary grant when no
// confirmer is wired, matching interactive chat behavior).
func (l *Launcher) Launch(path string, args ...string) error {
	if err := l.authorize(path); err != nil {
		return err
	}

	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("apps: launch %s: %w", path, err)
	}
	// Detach: the app outlives the assistant process.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("apps: release %s: %w", path, err)
	}
	return nil
}

func (l *Launcher) authorize(path string) error {
	switch l.perms.Check(permission.AppLaunch) {
	case permission.Deny:
		return fmt.Errorf("%w: application launching is not permitted", ErrLaunchDenied)
	case permission.RequireConfirmation:
		if l.Confirm != nil {
			if !l.Confirm(fmt.Sprintf("Allow launching: %s?", path)) {
				return fmt.Errorf("%w: user rejected launch of %s", ErrLaunchDenied, path)
			}
			return nil
		}
		l.perms.GrantTemporary(permission.AppLaunch, 5*time.Minute)
	}
	return nil
}
