package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

func newPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Inspect and change what Augi is allowed to do",
		Long: `Each sensitive operation has a level: DENY, REQUIRE_CONFIRMATION, or ALLOW.

Examples:
  augi permissions
  augi permissions set internet_access allow
  augi permissions grant app_launch 30m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			perms, err := openPermissions(cfg)
			if err != nil {
				return err
			}

			levels := perms.Levels()
			ops := make([]string, 0, len(levels))
			for op := range levels {
				ops = append(ops, string(op))
			}
			sort.Strings(ops)

			for _, op := range ops {
				fmt.Printf("%-20s %s\n", op, perms.Check(permission.Operation(op)))
			}
			return nil
		},
	}

	cmd.AddCommand(newPermissionsSetCmd(), newPermissionsGrantCmd())
	return cmd
}

func newPermissionsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <operation> <level>",
		Short: "Permanently set an operation's permission level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !permission.IsOperation(args[0]) {
				return fmt.Errorf("unknown operation %q (valid: %s)", args[0], operationList())
			}
			level, err := permission.ParseLevel(args[1])
			if err != nil {
				return err
			}

			cfg := loadGlobal()
			perms, permErr := openPermissions(cfg)
			if permErr != nil {
				return permErr
			}

			if err := perms.Set(permission.Operation(args[0]), level, true); err != nil {
				return err
			}
			fmt.Printf("Permission updated: %s -> %s\n", args[0], level)
			return nil
		},
	}
}

func newPermissionsGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <operation> <duration>",
		Short: "Temporarily allow an operation (e.g. 30m, 2h)",
		Long: `Grant an operation for a limited time. The grant lives only in this
process and expires on its own; the saved permission level is untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !permission.IsOperation(args[0]) {
				return fmt.Errorf("unknown operation %q (valid: %s)", args[0], operationList())
			}
			d, err := time.ParseDuration(args[1])
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid duration %q (try 30m or 2h)", args[1])
			}

			cfg := loadGlobal()
			perms, permErr := openPermissions(cfg)
			if permErr != nil {
				return permErr
			}

			perms.GrantTemporary(permission.Operation(args[0]), d)
			fmt.Printf("Granted %s for %s (this process only).\n", args[0], d)
			return nil
		},
	}
}

func operationList() string {
	out := ""
	for i, op := range permission.Operations {
		if i > 0 {
			out += ", "
		}
		out += string(op)
	}
	return out
}
