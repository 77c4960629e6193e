// Package cli defines the Cobra command tree for the augi CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/adapter"
	"github.com/Lonewolfgaming5250/Augi/internal/config"
	"github.com/Lonewolfgaming5250/Augi/internal/memory"
	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "augi",
	Short: "Personal AI assistant with local conversation memory",
	Long: `Augi is a personal AI assistant that remembers your conversations.

It chats through your configured LLM provider, keeps every conversation in
local JSON files with a keyword index, learns a profile of you over time,
and gates sensitive operations (launching apps, web searches, system
commands) behind a permission system you control.

Run 'augi setup' once to configure a provider, then 'augi chat' to talk.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newChatCmd(),
		newAskCmd(),
		newHistoryCmd(),
		newProfileCmd(),
		newRememberCmd(),
		newPermissionsCmd(),
		newAppsCmd(),
		newGamesCmd(),
		newSearchCmd(),
		newFilesCmd(),
		newDiagnoseCmd(),
		newExportCmd(),
		newReindexCmd(),
		newClearCmd(),
		newSetupCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("augi %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// loadGlobal loads the user config, falling back to defaults on error.
func loadGlobal() config.GlobalConfig {
	cfg, err := config.LoadGlobal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[augi] %v; using defaults\n", err)
		return config.DefaultGlobal()
	}
	return cfg
}

// openMemory opens the memory manager at the configured directory.
func openMemory(cfg config.GlobalConfig) (*memory.Manager, error) {
	dir, err := cfg.MemoryDir()
	if err != nil {
		return nil, err
	}
	return memory.NewManager(dir)
}

// openPermissions opens the permission manager at the configured path.
func openPermissions(cfg config.GlobalConfig) (*permission.Manager, error) {
	path, err := cfg.PermissionsPath()
	if err != nil {
		return nil, fmt.Errorf("resolve permissions path: %w", err)
	}
	return permission.NewManager(path), nil
}

// apiKey returns the correct API key from the global config for the given provider.
func apiKey(cfg config.GlobalConfig, provider string) string {
	switch provider {
	case adapter.ProviderClaude:
		return cfg.Keys.Anthropic
	case adapter.ProviderOpenAI:
		return cfg.Keys.OpenAI
	default:
		return ""
	}
}
