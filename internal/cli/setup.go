package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Lonewolfgaming5250/Augi/internal/config"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive first-time configuration",
		Long:  "Configure your LLM provider, API key, and personality for Augi.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			fmt.Println("Welcome to Augi! Let's get you set up.")
			fmt.Println()

			cfg := config.DefaultGlobal()

			// Step 1: Choose LLM provider.
			fmt.Println("Which LLM do you primarily use?")
			fmt.Println("  [1] Claude (Anthropic)")
			fmt.Println("  [2] OpenAI (GPT-4o)")
			fmt.Println("  [3] Ollama (local)")
			fmt.Print("> ")

			switch strings.TrimSpace(readLineBuf(reader)) {
			case "1":
				cfg.DefaultModel = "claude"
				if key := readAPIKey("Anthropic", "ANTHROPIC_API_KEY"); key != "" {
					cfg.Keys.Anthropic = key
				}
			case "2":
				cfg.DefaultModel = "openai"
				if key := readAPIKey("OpenAI", "OPENAI_API_KEY"); key != "" {
					cfg.Keys.OpenAI = key
				}
			case "3":
				cfg.DefaultModel = "ollama"
				fmt.Printf("Ollama host (press Enter for %s): ", cfg.Ollama.Host)
				if host := readLineBuf(reader); host != "" {
					cfg.Ollama.Host = host
				}
			default:
				fmt.Println("Unrecognized choice; defaulting to claude.")
				cfg.DefaultModel = "claude"
			}

			fmt.Println()

			// Step 2: Pick a personality.
			fmt.Printf("Pick a personality (%s) [%s]: ",
				strings.Join(personality.Names(), ", "), cfg.Personality)
			if name := strings.ToLower(readLineBuf(reader)); name != "" {
				if _, err := personality.Get(name); err != nil {
					fmt.Printf("Unknown personality; keeping %s.\n", cfg.Personality)
				} else {
					cfg.Personality = name
				}
			}

			fmt.Println()

			if err := config.SaveGlobal(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			path, _ := config.GlobalConfigPath()
			fmt.Printf("Configuration saved to %s\n", path)
			fmt.Println("Run `augi chat` to start talking.")

			return nil
		},
	}
}

// readAPIKey reads a key without echoing it. Falls back to plain reading
// when stdin is not a terminal (e.g. piped input in scripts).
func readAPIKey(provider, envVar string) string {
	fmt.Printf("Enter your %s API key (or press Enter to set %s later): ", provider, envVar)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		key, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(key))
	}
	return readLineBuf(bufio.NewReader(os.Stdin))
}

// readLineBuf reads a trimmed line from a bufio.Reader.
func readLineBuf(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
