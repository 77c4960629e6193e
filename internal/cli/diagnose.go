package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/diagnostic"
)

func newDiagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Run device diagnostics",
		Long:  "Check OS, CPU, disk, memory, and network health and suggest fixes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(diagnostic.Run().Summary())
			return nil
		},
	}
}
