package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/markdownlm/mdlm/internal/sync"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show new / modified / deleted files vs the last sync",
		Run: func(cmd *cobra.Command, args []string) {
			// Status never talks to the server, so it needs no credentials.
			ws, err := resolveWorkspace(cmd)
			if err != nil {
				exitErr(err)
			}

			result, err := sync.Status(ws)
			if err != nil {
				exitErr(err)
			}

			diff := result.Diff
			if !diff.HasChanges() && len(result.Failed) == 0 {
				fmt.Println("Nothing to push. No changes detected.")
				return
			}

			if entries := diff.ByStatus(sync.StatusNew); len(entries) > 0 {
				fmt.Println("New (will be created on push):")
				for _, de := range entries {
					fmt.Printf("  %s %s\n", green.Render("+"), de.Path)
				}
			}
			if entries := diff.ByStatus(sync.StatusModified); len(entries) > 0 {
				fmt.Println("Modified (will be updated on push):")
				for _, de := range entries {
					fmt.Printf("  %s %s\n", cyan.Render("M"), de.Path)
				}
			}
			if entries := diff.ByStatus(sync.StatusDeleted); len(entries) > 0 {
				fmt.Println("Deleted locally (will be removed on push with --delete):")
				for _, de := range entries {
					fmt.Printf("  %s %s\n", red.Render("D"), de.Path)
				}
			}

			if len(result.Failed) > 0 {
				paths := make([]string, 0, len(result.Failed))
				for path := range result.Failed {
					paths = append(paths, path)
				}
				sort.Strings(paths)

				fmt.Fprintln(os.Stderr, "Unreadable (excluded from the diff):")
				for _, path := range paths {
					fmt.Fprintf(os.Stderr, "  %s %s: %s\n", yellow.Render("!"), path, result.Failed[path])
				}
			}
		},
	}
}
