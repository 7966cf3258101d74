package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest() *Manifest {
	m := NewManifest()
	m.Upsert("knowledge/architecture/layers.md", &ManifestEntry{
		DocID:       "d1",
		Version:     3,
		Category:    "architecture",
		Fingerprint: Fingerprint([]byte("# Layers\n")),
	})
	m.Upsert("knowledge/general/notes.md", &ManifestEntry{
		DocID:       "d2",
		Version:     1,
		Category:    "general",
		Fingerprint: Fingerprint([]byte("# Notes\n")),
	})
	return m
}

func TestManifest_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mdlm", "manifest.json")
	m := testManifest()

	require.NoError(t, m.Save(path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	// Saving what was loaded produces identical bytes.
	path2 := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, loaded.Save(path2))
	b1, err := os.ReadFile(path)
	require.NoError(t, err)
	b2, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "manifest.json"))
	assert.ErrorIs(t, err, ErrManifestMissing)
}

func TestLoadManifest_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"schema_version": 1, "docs": {`},
		{"wrong type", `{"schema_version": 1, "docs": []}`},
		{"unknown schema version", `{"schema_version": 99, "docs": {}}`},
		{"no schema version", `{"knowledge/notes.md": {"id": "d1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadManifest(path)
			var corrupt *ManifestCorruptError
			require.ErrorAs(t, err, &corrupt)
			assert.Equal(t, path, corrupt.Path)
		})
	}
}

func TestLoadManifest_EmptyDocs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 1}`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.NotNil(t, m.Docs)
	assert.Zero(t, m.Count())
}

func TestManifest_Mutation(t *testing.T) {
	m := NewManifest()
	assert.Zero(t, m.Count())

	_, ok := m.Get("knowledge/notes.md")
	assert.False(t, ok)

	entry := &ManifestEntry{DocID: "d1", Version: 1, Category: "general", Fingerprint: "aa"}
	m.Upsert("knowledge/notes.md", entry)

	got, ok := m.Get("knowledge/notes.md")
	require.True(t, ok)
	assert.Equal(t, entry, got)
	assert.Equal(t, 1, m.Count())

	m.Remove("knowledge/notes.md")
	assert.Zero(t, m.Count())

	// Removing an untracked path is a no-op.
	m.Remove("knowledge/notes.md")
}

func TestManifest_SaveIsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	require.NoError(t, testManifest().Save(path))

	m2 := NewManifest()
	require.NoError(t, m2.Save(path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Zero(t, loaded.Count())

	// No staging files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
