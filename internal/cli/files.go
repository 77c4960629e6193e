package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lonewolfgaming5250/Augi/internal/files"
)

func newFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Read, write, delete, and list files behind the permission gate",
		Long: `Permission-gated file operations. Reading and writing ask for
confirmation by default; deleting is denied until allowed with
` + "`augi permissions set file_delete allow`" + `.

Examples:
  augi files read ~/notes.txt
  augi files write ~/notes.txt "remember the milk"
  echo "remember the milk" | augi files write ~/notes.txt
  augi files list ~/Documents
  augi files delete ~/old.txt`,
	}
	cmd.AddCommand(newFilesReadCmd(), newFilesWriteCmd(), newFilesDeleteCmd(), newFilesListCmd())
	return cmd
}

func openFiles() (*files.Manager, error) {
	perms, err := openPermissions(loadGlobal())
	if err != nil {
		return nil, err
	}
	fm := files.NewManager(perms)
	fm.Confirm = confirmOnTerminal
	return fm, nil
}

func newFilesReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Print a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm, err := openFiles()
			if err != nil {
				return err
			}
			content, err := fm.Read(args[0])
			if err != nil {
				return err
			}
			fmt.Print(content)
			if !strings.HasSuffix(content, "\n") {
				fmt.Println()
			}
			return nil
		},
	}
}

func newFilesWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Write content (or stdin) to a file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args[1:], " ")
			if len(args) == 1 {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				content = string(data)
			}

			fm, err := openFiles()
			if err != nil {
				return err
			}
			if err := fm.Write(args[0], content); err != nil {
				return err
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(content), args[0])
			return nil
		},
	}
}

func newFilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm, err := openFiles()
			if err != nil {
				return err
			}
			if err := fm.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func newFilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			fm, err := openFiles()
			if err != nil {
				return err
			}
			entries, err := fm.List(dir)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if e.Dir {
					fmt.Printf("%-10s %s/\n", "dir", e.Name)
				} else {
					fmt.Printf("%-10d %s\n", e.Size, e.Name)
				}
			}
			return nil
		},
	}
}
