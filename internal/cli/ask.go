package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var (
		personaName string
		model       string
		noStream    bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a one-shot question with memory context",
		Long: `Send a single question to your configured LLM with relevant past
conversations and your learned profile injected. The exchange is saved to
memory like any chat turn.

Examples:
  augi ask "What was that hiking trail I mentioned last week?"
  augi ask "Summarize what you know about my projects" --model openai`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
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

			reply, err := a.ProcessInput(context.Background(), question)
			if err != nil {
				return err
			}
			if stream {
				fmt.Println()
			} else {
				fmt.Println(reply)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&personaName, "personality", "p", "", "personality profile override")
	cmd.Flags().StringVarP(&model, "model", "m", "", "LLM provider override: claude, openai, ollama")
	cmd.Flags().BoolVar(&noStream, "no-stream", false, "print the reply whole instead of streaming")

	return cmd
}
