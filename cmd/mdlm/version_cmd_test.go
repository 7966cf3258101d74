package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/markdownlm/mdlm/internal/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	// Fresh root so we don't mutate the package-level rootCmd.
	root := &cobra.Command{Use: "mdlm"}
	root.AddCommand(newVersionCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, version.Detailed(), strings.TrimSpace(out.String()))
}
