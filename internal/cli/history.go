package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and inspect saved conversations",
		Long: `Browse conversation memory.

Examples:
  augi history
  augi history --limit 20
  augi history search hiking
  augi history show 20260826_101530`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			summaries, err := mem.Sessions().ListRecent(limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No conversations saved yet. Start one with `augi chat`.")
				return nil
			}
			for _, s := range summaries {
				printSummary(s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum conversations to list")
	cmd.AddCommand(newHistorySearchCmd(), newHistoryShowCmd())

	return cmd
}

func newHistorySearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search conversation transcripts for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			matches, err := mem.Sessions().SearchText(args[0], limit)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Printf("No conversations mention %q.\n", args[0])
				return nil
			}
			for _, m := range matches {
				printSummary(m)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum matches to show")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a full conversation transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			conv, err := mem.Sessions().Get(args[0])
			if err != nil {
				return fmt.Errorf("no conversation %q", args[0])
			}

			fmt.Printf("Session %s (%s, %d messages)\n\n", conv.SessionID, conv.Timestamp, conv.MessageCount)
			for _, msg := range conv.Messages {
				fmt.Printf("%s: %s\n\n", msg.Role, msg.Content)
			}
			return nil
		},
	}
}

func printSummary(s memory.Summary) {
	fmt.Printf("[%s] %s (%d messages)\n", s.SessionID, s.Timestamp, s.MessageCount)
	if s.FirstMessage != "" {
		fmt.Printf("  You: %s\n", s.FirstMessage)
	}
	if s.LastResponse != "" {
		fmt.Printf("  Augi: %s\n", s.LastResponse)
	}
	if s.MatchedContent != "" {
		fmt.Printf("  → %s\n", s.MatchedContent)
	}
	fmt.Println()
}
