package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show what Augi has learned about you",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			p := mem.Profile()
			fmt.Print(p.LearningSummary())
			if len(p.Preferences) > 0 {
				fmt.Println("\nPreferences:")
				for k := range p.Preferences {
					if v, ok := p.Preference(k); ok {
						fmt.Printf("  %s = %s\n", k, v)
					}
				}
			}
			return nil
		},
	}

	cmd.AddCommand(newProfileForgetCmd())
	return cmd
}

func newProfileForgetCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Erase the learned profile (conversations are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("this erases everything Augi has learned about you; re-run with --confirm")
			}

			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			if err := mem.ForgetProfile(); err != nil {
				return err
			}
			fmt.Println("Profile erased.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm erasing the profile")
	return cmd
}
