package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all memory: conversations, index, and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("this permanently deletes all conversations and the learned profile; re-run with --confirm")
			}

			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			if err := mem.ClearAll(confirm); err != nil {
				return err
			}
			fmt.Println("All memory cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm deleting everything")
	return cmd
}
