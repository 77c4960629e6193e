package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/apps"
	"github.com/Lonewolfgaming5250/Augi/internal/config"
)

func newGamesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List installed games",
		Long: `Scan known game platform directories (Steam, Epic, GOG) for installed games.

Examples:
  augi games
  augi games search stardew`,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := scanGames(loadGlobal(), limit)
			if len(found) == 0 {
				fmt.Println("No games found.")
				return nil
			}
			for _, game := range found {
				fmt.Printf("%-30s %s\n", game.Name, game.Path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum games to list")
	cmd.AddCommand(newGamesSearchCmd())

	return cmd
}

func newGamesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Find an installed game by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := scanGames(loadGlobal(), 0)
			game, ok := apps.Search(found, args[0])
			if !ok {
				return fmt.Errorf("no game matching %q", args[0])
			}
			fmt.Printf("%s\n  %s\n", game.Name, game.Path)
			return nil
		},
	}
}

func scanGames(cfg config.GlobalConfig, limit int) []apps.App {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("  Scanning games"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	opts := apps.ScanOptions{
		Roots: apps.DefaultGameRoots(),
		Limit: limit,
		OnVisit: func(string) {
			_ = bar.Add(1)
		},
	}
	if path, err := cfg.ScanIgnorePath(); err == nil {
		opts.Ignore = apps.NewIgnoreMatcher(path)
	}

	found := apps.ScanGames(opts)
	_ = bar.Finish()
	return found
}
