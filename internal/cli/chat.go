package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/config"
	"github.com/Lonewolfgaming5250/Augi/internal/permission"
	"github.com/Lonewolfgaming5250/Augi/internal/voice"
)

func newChatCmd() *cobra.Command {
	var (
		personaName string
		model       string
		resume      bool
		noStream    bool
		speak       bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Talk with Augi. Every turn is saved to local memory so future
conversations can recall it. Type 'exit' or 'quit' (or press Ctrl-D) to leave.

Examples:
  augi chat
  augi chat --resume
  augi chat --personality witty
  augi chat --model ollama --no-stream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()

			stream := cfg.Output.Stream && !noStream
			var onStream func(string)
			if stream {
				onStream = func(text string) { fmt.Print(text) }
			}

			a, cleanup, err := buildAssistant(cfg, personaName, model, onStream)
			if err != nil {
				return err
			}
			defer cleanup()

			speaker := newSpeaker(cfg, speak)

			if resume {
				if n := a.Resume(); n > 0 {
					fmt.Printf("Resumed session %s (%d messages).\n\n", a.SessionID(), n)
				} else {
					fmt.Println("No previous session found; starting fresh.")
				}
			}

			fmt.Println(a.Greeting())
			fmt.Println("Type 'exit' to quit.")
			fmt.Println()

			reader := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("You: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					// Ctrl-D
					fmt.Println()
					break
				}
				input := strings.TrimSpace(line)
				if input == "" {
					continue
				}
				if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
					break
				}

				if stream {
					fmt.Print("Augi: ")
				}
				reply, err := a.ProcessInput(context.Background(), input)
				if err != nil {
					fmt.Fprintf(os.Stderr, "\n[augi] %v\n", err)
					continue
				}
				if stream {
					fmt.Println()
				} else if reply != "" {
					fmt.Printf("Augi: %s\n", reply)
				}
				if reply != "" {
					if err := speaker.Speak(context.Background(), reply); err != nil {
						fmt.Fprintf(os.Stderr, "[augi] %v\n", err)
					}
				}
				fmt.Println()
			}

			fmt.Println(a.Farewell())
			return nil
		},
	}

	cmd.Flags().StringVarP(&personaName, "personality", "p", "", "personality profile (professional, friendly, witty, helpful, tech_savvy, casual)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "LLM provider override: claude, openai, ollama")
	cmd.Flags().BoolVar(&resume, "resume", false, "continue the most recent conversation")
	cmd.Flags().BoolVar(&noStream, "no-stream", false, "print replies whole instead of streaming")
	cmd.Flags().BoolVar(&speak, "voice", false, "speak replies aloud via the configured TTS command")

	return cmd
}

// newSpeaker builds the TTS speaker for chat replies. Speaking shells out,
// so it requires the system_command permission to be allowed.
func newSpeaker(cfg config.GlobalConfig, requested bool) voice.Speaker {
	enabled := cfg.Voice.Enabled || requested
	if !enabled {
		return voice.NullSpeaker{}
	}
	perms, err := openPermissions(cfg)
	if err != nil || perms.Check(permission.SystemCommand) != permission.Allow {
		fmt.Fprintln(os.Stderr, "[augi] voice output needs the system_command permission; run `augi permissions set system_command allow`")
		return voice.NullSpeaker{}
	}
	return voice.NewSpeaker(true, cfg.Voice.Command, cfg.Voice.Args)
}
