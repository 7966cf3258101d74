package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markdownlm/mdlm/internal/mdsdk"
	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/markdownlm/mdlm/internal/workspace"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	var task string
	var category string

	cmd := &cobra.Command{
		Use:   "validate CODE",
		Short: "Validate code against documented rules",
		Long:  "Validate a code snippet (inline or a file path) against documented architectural and style rules.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			checkCategory(category)

			// The argument is either a file path or the code itself.
			code := args[0]
			if utils.FileExists(code) {
				data, err := os.ReadFile(code)
				if err != nil {
					exitErr(err)
				}
				code = string(data)
			}

			sdk, _, err := newSDK(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			result, err := sdk.Insights.ValidateCode(cmd.Context(), &mdsdk.ValidateParams{
				Code:     code,
				Task:     task,
				Category: category,
			})
			if err != nil {
				exitErr(err)
			}

			printValidateResult(result)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&task, "task", "t", "", "one-sentence description of what the code does")
	cmd.Flags().StringVarP(&category, "category", "c", workspace.DefaultCategory,
		"the domain to validate against ("+workspace.CategoryList()+")")
	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func printValidateResult(result *mdsdk.ValidateResult) {
	status := strings.ToUpper(result.Status)
	if status == "" {
		status = "UNKNOWN"
	}
	fmt.Printf("Status: %s\n", statusStyle(result.Status).Render(status))

	if len(result.Violations) == 0 {
		fmt.Println("No violations found.")
	} else {
		fmt.Printf("\nViolations found (%d):\n", len(result.Violations))
		for i, violation := range result.Violations {
			fmt.Printf("  %d. %s\n", i+1, violation.Rule)
			fmt.Printf("     Message: %s\n", violation.Message)
			if violation.FixSuggestion != "" {
				fmt.Printf("     Fix: %s\n", violation.FixSuggestion)
			}
		}
	}

	if result.FixSuggestion != "" {
		fmt.Printf("\nOverall suggestion: %s\n", result.FixSuggestion)
	}
}

func statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "pass":
		return green
	case "fail":
		return red
	default:
		return yellow
	}
}
