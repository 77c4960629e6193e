package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a conversation transcript",
		Long: `Render a saved conversation in a shareable format.

Examples:
  augi export 20260826_101530
  augi export 20260826_101530 --format json
  augi export 20260826_101530 --format markdown --output chat.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter, ok := export.Get(format)
			if !ok {
				return fmt.Errorf("unknown format %q (valid: %s)", format,
					strings.Join(export.ValidFormats(), ", "))
			}

			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			conv, err := mem.Sessions().Get(args[0])
			if err != nil {
				return fmt.Errorf("no conversation %q", args[0])
			}

			rendered, err := exporter.Export(export.ExportData{Conversation: conv})
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if output == "" {
				fmt.Print(rendered)
				return nil
			}
			if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Printf("Exported %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown, json, text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
