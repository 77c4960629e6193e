package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/mcp"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
	"github.com/Lonewolfgaming5250/Augi/internal/prompt"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Expose Augi's memory to MCP-capable AI tools. Provides tools to
remember facts about you, recall relevant conversation context, search
transcripts, and summarize the learned profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()

			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}
			perms, err := openPermissions(cfg)
			if err != nil {
				return err
			}
			persona, err := personality.Get(cfg.Personality)
			if err != nil {
				persona, _ = personality.Get(personality.Default)
			}
			tokenizer, err := prompt.NewTokenizer()
			if err != nil {
				return fmt.Errorf("init tokenizer: %w", err)
			}

			builder := prompt.NewBuilder(mem, perms, persona, tokenizer)
			return mcp.NewServer(mem, builder, version).ServeStdio()
		},
	}
}
