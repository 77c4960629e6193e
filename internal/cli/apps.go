package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/apps"
	"github.com/Lonewolfgaming5250/Augi/internal/config"
)

func newAppsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List installed applications",
		Long: `Scan the usual application directories for launchable programs.

Examples:
  augi apps
  augi apps search firefox
  augi apps launch firefox
  augi apps launch htop --attach`,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := scanApps(loadGlobal(), limit)
			if len(found) == 0 {
				fmt.Println("No applications found.")
				return nil
			}
			for _, app := range found {
				fmt.Printf("%-30s %s\n", app.Name, app.Path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum applications to list")
	cmd.AddCommand(newAppsSearchCmd(), newAppsLaunchCmd())

	return cmd
}

func newAppsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Find an installed application by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := scanApps(loadGlobal(), 0)
			app, ok := apps.Search(found, args[0])
			if !ok {
				return fmt.Errorf("no application matching %q", args[0])
			}
			fmt.Printf("%s\n  %s\n", app.Name, app.Path)
			return nil
		},
	}
}

func newAppsLaunchCmd() *cobra.Command {
	var attach bool

	cmd := &cobra.Command{
		Use:   "launch <name>",
		Short: "Launch an application by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()

			found := scanApps(cfg, 0)
			app, ok := apps.Search(found, args[0])
			if !ok {
				return fmt.Errorf("no application matching %q", args[0])
			}

			perms, err := openPermissions(cfg)
			if err != nil {
				return err
			}
			launcher := apps.NewLauncher(perms)
			launcher.Confirm = confirmOnTerminal

			if attach {
				return launcher.LaunchAttached(app.Path)
			}
			if err := launcher.Launch(app.Path); err != nil {
				return err
			}
			fmt.Printf("Launched %s.\n", app.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&attach, "attach", false, "run in the foreground attached to this terminal")
	return cmd
}

// scanApps runs an application scan with a spinner and the user's ignore file.
func scanApps(cfg config.GlobalConfig, limit int) []apps.App {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("  Scanning applications"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	opts := apps.ScanOptions{
		Roots: append(apps.DefaultAppRoots(), cfg.Apps.ExtraRoots...),
		Limit: limit,
		OnVisit: func(string) {
			_ = bar.Add(1)
		},
	}
	if path, err := cfg.ScanIgnorePath(); err == nil {
		opts.Ignore = apps.NewIgnoreMatcher(path)
	}

	found := apps.Scan(opts)
	_ = bar.Finish()
	return found
}

// confirmOnTerminal asks a yes/no question on the controlling terminal.
func confirmOnTerminal(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
