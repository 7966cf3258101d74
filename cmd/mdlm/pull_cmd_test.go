package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPullRequiresClone(t *testing.T) {
	out, code := runCLIInput(t, "", cliAuthEnv(t), "--dir", t.TempDir(), "pull")
	require.Equal(t, 1, code, out)
	require.Contains(t, stripANSI(out), "no manifest found, run `mdlm clone` first")
}
