package apps

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// LaunchAttached starts the program in a pseudo-terminal and proxies all I/O
// until it exits, so terminal applications behave as if run directly. The
// same permission gate applies as for a detached launch.
func (l *Launcher) LaunchAttached(path string, args ...string) error {
	if err := l.authorize(path); err != nil {
		return err
	}
	return runInPTY(path, args)
}

// runInPTY launches the program in a pseudo-terminal, proxying all I/O.
// Returns when the child exits.
func runInPTY(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Env = os.Environ()

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("apps: pty start: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	// Forward terminal resize events to the child.
	winchCh := make(chan os.Signal, 1)
	signal.Notify(winchCh, syscall.SIGWINCH)
	go func() {
		for range winchCh {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winchCh <- syscall.SIGWINCH // set initial size
	defer func() { signal.Stop(winchCh); close(winchCh) }()

	// Raw mode: every keystroke (including Ctrl+C) goes to the child.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("apps: raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	// stdin → child
	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()

	// child → stdout
	_, _ = io.Copy(os.Stdout, ptmx)

	return cmd.Wait()
}
