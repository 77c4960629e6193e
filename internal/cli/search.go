package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/permission"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web",
		Long: `Run a web search and print the top results. Requires the
internet_access permission to be allowed.

Examples:
  augi search "golang 1.23 release notes"
  augi search weather in lisbon --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			cfg := loadGlobal()

			perms, err := openPermissions(cfg)
			if err != nil {
				return err
			}
			desc := fmt.Sprintf("Search the web for %q?", query)
			if err := perms.Authorize(permission.InternetAccess, desc, confirmOnTerminal); err != nil {
				return fmt.Errorf("%w; run `augi permissions set internet_access allow`", err)
			}

			searcher, cleanup := newSearcher(cfg)
			defer cleanup()
			if searcher == nil {
				return fmt.Errorf("web search is disabled in config")
			}

			summary, err := searcher.SearchWithSummary(context.Background(), query, limit)
			if err != nil {
				return err
			}
			fmt.Println(summary)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (default from config)")
	return cmd
}
