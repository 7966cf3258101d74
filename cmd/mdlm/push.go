package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/markdownlm/mdlm/internal/sync"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPushCmd())
}

func newPushCmd() *cobra.Command {
	var message string
	var category string
	var withDelete bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local changes to the server",
		Run: func(cmd *cobra.Command, args []string) {
			checkCategory(category)

			engine, sdk, _, err := newEngine(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			result, err := engine.Push(cmd.Context(), &sync.PushOptions{
				Category:     category,
				ChangeReason: message,
				Delete:       withDelete,
			})
			if err != nil {
				exitErr(err)
			}

			for _, op := range result.Ops {
				printPushOp(op)
			}
			printPushSummary(result)

			if !result.Ok() {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&message, "message", "m", "", "change reason recorded in version history")
	cmd.Flags().StringVar(&category, "category", "", "only push files in this category")
	cmd.Flags().BoolVar(&withDelete, "delete", false, "also delete docs that have been removed locally")

	return cmd
}

func printPushOp(op *sync.PathOp) {
	switch op.Op {
	case sync.OpCreated:
		fmt.Printf("  %s  %s\n", green.Render("created"), op.Path)
	case sync.OpUpdated:
		fmt.Printf("  %s  %s (v%d)\n", green.Render("updated"), op.Path, op.Version)
	case sync.OpDeleted:
		fmt.Printf("  %s  %s\n", red.Render("deleted"), op.Path)
	case sync.OpSkipped:
		fmt.Printf("  %s  %s (deleted locally; re-run with --delete to remove remotely)\n",
			yellow.Render("skipped"), op.Path)
	case sync.OpConflict:
		fmt.Fprintf(os.Stderr, "  %s %s: local version %d != server version %d.\n",
			red.Render("conflict"), op.Path, op.LocalVersion, op.RemoteVersion)
		fmt.Fprintln(os.Stderr, "           Run `mdlm pull` to get the latest, then re-apply your edits.")
	case sync.OpFailed:
		fmt.Fprintf(os.Stderr, "  %s %s: %s\n", red.Render("error"), op.Path, op.Err)
	}
}

func printPushSummary(result *sync.PushResult) {
	var parts []string
	if n := result.Count(sync.OpCreated); n > 0 {
		parts = append(parts, fmt.Sprintf("%d created", n))
	}
	if n := result.Count(sync.OpUpdated); n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", n))
	}
	if n := result.Count(sync.OpDeleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", n))
	}
	if n := result.Count(sync.OpSkipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if n := result.Count(sync.OpConflict); n > 0 {
		parts = append(parts, fmt.Sprintf("%d conflict(s)", n))
	}
	if n := result.Count(sync.OpFailed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", n))
	}

	if len(parts) == 0 {
		fmt.Println("Nothing to push. No changes detected.")
		return
	}
	fmt.Println("Push complete: " + strings.Join(parts, ", ") + ".")
}
