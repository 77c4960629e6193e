package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRememberCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "remember <fact>",
		Short: "Teach Augi a fact about you",
		Long: `Store a fact directly in your profile instead of waiting for Augi
to pick it up from conversation.

Examples:
  augi remember "rock climbing" --kind interest
  augi remember "kubernetes" --kind skill
  augi remember "Morgan" --kind name
  augi remember "Lisbon" --kind location
  augi remember "units=metric" --kind preference`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(strings.Join(args, " "))
			if value == "" {
				return fmt.Errorf("nothing to remember")
			}

			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			p := mem.Profile()
			switch strings.ToLower(kind) {
			case "interest":
				p.AddInterest(value)
			case "skill":
				p.AddSkill(value)
			case "name":
				p.PreferredName = value
			case "location":
				p.Location = value
			case "preference":
				key, val, ok := strings.Cut(value, "=")
				if !ok {
					return fmt.Errorf("preferences take the form key=value")
				}
				p.SetPreference(strings.TrimSpace(key), strings.TrimSpace(val))
			default:
				return fmt.Errorf("unknown kind %q (valid: interest, skill, name, location, preference)", kind)
			}

			if err := mem.SaveProfile(p); err != nil {
				return err
			}
			fmt.Printf("Remembered %s: %s\n", strings.ToLower(kind), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "interest",
		"kind of fact: interest, skill, name, location, preference")

	return cmd
}
