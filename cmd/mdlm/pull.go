package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/markdownlm/mdlm/internal/sync"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPullCmd())
}

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Refresh docs from the server (overwrites local changes)",
		Run: func(cmd *cobra.Command, args []string) {
			engine, sdk, cfg, err := newEngine(cmd)
			if err != nil {
				exitErr(err)
			}
			defer sdk.Close()

			fmt.Printf("Fetching docs from %s ...\n", cyan.Render(cfg.APIURL))

			result, err := engine.Pull(cmd.Context())
			if err != nil {
				exitErr(err)
			}

			printPullFailures(result)

			summary := fmt.Sprintf("Pulled %d doc(s) (%s).",
				result.Count(sync.OpPulled),
				humanize.Bytes(uint64(result.TotalBytes())))
			if failed := result.Count(sync.OpFailed); failed > 0 {
				summary += fmt.Sprintf(" %d error(s).", failed)
			}
			fmt.Println(summary)

			if !result.Ok() {
				os.Exit(1)
			}
		},
	}
}
