package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCloneRejectsUnknownCategory(t *testing.T) {
	out, code := runCLI(t, "--dir", t.TempDir(), "clone", "--category", "nonsense")
	require.Equal(t, 1, code, out)

	plain := stripANSI(out)
	require.Contains(t, plain, "unknown category 'nonsense'")
	require.Contains(t, plain, "Valid categories:")
}

func TestCloneRefusesClonedWorkspace(t *testing.T) {
	dir := seedWorkspace(t, map[string]string{
		"knowledge/general/notes.md": "# Notes\n",
	})

	out, code := runCLIInput(t, "", cliAuthEnv(t), "--dir", dir, "clone")
	require.Equal(t, 1, code, out)
	require.Contains(t, stripANSI(out), "already has a manifest")
}
