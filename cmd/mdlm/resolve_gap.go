package main

import (
	"fmt"
	"os"

	"github.com/markdownlm/mdlm/internal/mdsdk"
	"github.com/markdownlm/mdlm/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newResolveGapCmd())
}

func newResolveGapCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "resolve-gap QUESTION",
		Short: "Resolve documentation gaps",
		Long:  "Detect and log a documentation gap for an undocumented decision or question.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkCategory(category)

			sdk, _, err := newSDK(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			result, err := sdk.Insights.ResolveGap(cmd.Context(), &mdsdk.ResolveGapParams{
				Question: args[0],
				Category: category,
			})
			if err != nil {
				exitErr(err)
			}

			fmt.Printf("Gap detected: %t\n", result.GapDetected)
			fmt.Printf("Resolution mode: %s\n", result.ResolutionMode)
			if result.Resolution != "" {
				fmt.Printf("\nResolution: %s\n", result.Resolution)
			}
			if result.GapID != "" {
				fmt.Printf("Gap ID: %s\n", result.GapID)
			}

			// An unresolved gap in ask_user mode needs a human decision, so
			// scripted callers get a failing exit code.
			if result.GapDetected && result.ResolutionMode == "ask_user" {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&category, "category", "c", workspace.DefaultCategory,
		"the domain ("+workspace.CategoryList()+")")

	return cmd
}
