package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/markdownlm/mdlm/internal/sync"
	"github.com/markdownlm/mdlm/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCloneCmd())
}

func newCloneCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Download your knowledge base",
		Long:  "Download every doc to ./knowledge/<category>/<title>.md and record the synced state.",
		Run: func(cmd *cobra.Command, args []string) {
			checkCategory(category)

			engine, sdk, cfg, err := newEngine(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			fmt.Printf("Fetching docs from %s ...\n", cyan.Render(cfg.APIURL))

			result, err := engine.Clone(cmd.Context(), category)
			if err != nil {
				exitErr(err)
			}

			if len(result.Ops) == 0 {
				fmt.Println("No docs found. Your knowledge base is empty.")
				return
			}

			printPullFailures(result)

			fmt.Printf("Cloned %d doc(s) (%s) into ./%s/\n",
				result.Count(sync.OpPulled),
				humanize.Bytes(uint64(result.TotalBytes())),
				workspace.KnowledgeDirName)
			fmt.Println("Edit files, then run `mdlm push` to upload changes.")

			if !result.Ok() {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVar(&category, "category", "", "only clone this category ("+workspace.CategoryList()+")")

	return cmd
}

func printPullFailures(result *sync.PullResult) {
	for _, op := range result.Ops {
		if op.Op == sync.OpFailed {
			fmt.Fprintf(os.Stderr, "  %s %s: %s\n", red.Render("error"), op.Path, op.Err)
		}
	}
}
