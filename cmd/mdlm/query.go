package main

import (
	"fmt"
	"os"

	"github.com/markdownlm/mdlm/internal/mdsdk"
	"github.com/markdownlm/mdlm/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newQueryCmd())
}

func newQueryCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Query the knowledge base",
		Long:  "Ask a question about documented architecture, patterns, or rules.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkCategory(category)

			sdk, _, err := newSDK(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			result, err := sdk.Insights.Query(cmd.Context(), &mdsdk.QueryParams{
				Query:    args[0],
				Category: category,
			})
			if err != nil {
				exitErr(err)
			}

			if result.Answer == "" {
				fmt.Println("No answer found.")
			} else {
				fmt.Println(result.Answer)
			}

			if result.GapDetected {
				fmt.Fprintln(os.Stderr, "\nNote: A documentation gap was detected for this query.")
			}
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&category, "category", "c", workspace.DefaultCategory,
		"the domain to query ("+workspace.CategoryList()+")")

	return cmd
}
