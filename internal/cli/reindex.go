package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
)

func newReindexCmd() *cobra.Command {
	var (
		watch      bool
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the conversation keyword index",
		Long: `Re-read every stored conversation and rebuild the keyword index from
scratch. Useful after editing conversation files by hand or recovering from a
corrupted index.

With --watch, keep running and rebuild whenever conversation files change
(debounced so bursts of writes trigger one pass). Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadGlobal()
			mem, err := openMemory(cfg)
			if err != nil {
				return err
			}

			n, err := reindexWithProgress(mem)
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d conversation(s).\n", n)

			if !watch {
				return nil
			}
			return watchConversations(mem, time.Duration(debounceMs)*time.Millisecond)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and reindex on conversation changes")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "debounce interval in milliseconds")

	return cmd
}

func reindexWithProgress(mem *memory.Manager) (int, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("  Reindexing conversations"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	n, err := mem.Reindex(func(string) { _ = bar.Add(1) })
	_ = bar.Finish()
	return n, err
}

// watchConversations blocks, rebuilding the index whenever a conversation
// file is written. Changes are debounced into a single pass.
func watchConversations(mem *memory.Manager, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := mem.Sessions().Dir()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Printf("Watching %s for changes (debounce %s). Press Ctrl-C to stop.\n", dir, debounce)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	timer := time.NewTimer(debounce)
	timer.Stop() // Don't fire immediately.
	dirty := false

	for {
		select {
		case <-sigCh:
			fmt.Println("\nStopping watcher.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only conversation files matter; atomic writes land as renames.
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				dirty = true
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "  watch error: %v\n", err)

		case <-timer.C:
			if !dirty {
				continue
			}
			dirty = false

			n, err := mem.Reindex(nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  reindex error: %v\n", err)
				continue
			}
			fmt.Printf("[%s] reindexed %d conversation(s)\n", time.Now().Format("15:04:05"), n)
		}
	}
}
