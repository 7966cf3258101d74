package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{
			name:      "empty path",
			input:     "",
			wantError: true,
		},
		{
			name:      "relative path",
			input:     "./knowledge",
			wantError: false,
		},
		{
			name:      "absolute path",
			input:     "/tmp/knowledge",
			wantError: false,
		},
		{
			name:      "parent traversal",
			input:     "/tmp/a/../knowledge",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolvePath(tt.input)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(result), "ResolvePath(%q) = %q, want absolute", tt.input, result)
		})
	}
}

func TestResolvePath_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	result, err := ResolvePath("~/knowledge")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result, home), "expected %q under home %q", result, home)
}

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(file, []byte("# hi"), 0o644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.md")))
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "doc.md")

	require.NoError(t, EnsureParent(path))
	assert.True(t, DirExists(filepath.Join(dir, "a", "b")))

	// Idempotent when the parent already exists.
	require.NoError(t, EnsureParent(path))
}
