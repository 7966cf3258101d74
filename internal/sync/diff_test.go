package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Classification(t *testing.T) {
	manifest := NewManifest()
	manifest.Upsert("knowledge/architecture/layers.md", &ManifestEntry{
		DocID:       "d1",
		Version:     3,
		Category:    "architecture",
		Fingerprint: Fingerprint([]byte("# Layers\n")),
	})
	manifest.Upsert("knowledge/stack/db.md", &ManifestEntry{
		DocID:       "d2",
		Version:     1,
		Category:    "stack",
		Fingerprint: Fingerprint([]byte("# DB\n")),
	})
	manifest.Upsert("knowledge/testing/ci.md", &ManifestEntry{
		DocID:       "d3",
		Version:     7,
		Category:    "testing",
		Fingerprint: Fingerprint([]byte("# CI\n")),
	})

	local := map[string]string{
		"knowledge/architecture/layers.md": Fingerprint([]byte("# Layers\n")),  // untouched
		"knowledge/stack/db.md":            Fingerprint([]byte("# DB v2\n")),   // edited
		"knowledge/security/new.md":        Fingerprint([]byte("# Secrets\n")), // never synced
		// knowledge/testing/ci.md removed locally
	}

	diff := ComputeDiff(local, manifest)
	require.Len(t, diff.Entries, 4)

	tests := []struct {
		path   string
		status DiffStatus
	}{
		{"knowledge/architecture/layers.md", StatusUnchanged},
		{"knowledge/stack/db.md", StatusModified},
		{"knowledge/security/new.md", StatusNew},
		{"knowledge/testing/ci.md", StatusDeleted},
	}
	for _, tt := range tests {
		de, ok := diff.Entries[tt.path]
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.status, de.Status, tt.path)
	}

	// Tracked paths carry their manifest entry, new ones do not.
	assert.Nil(t, diff.Entries["knowledge/security/new.md"].Entry)
	assert.Equal(t, "d2", diff.Entries["knowledge/stack/db.md"].Entry.DocID)

	// Deleted paths have no local fingerprint.
	assert.Empty(t, diff.Entries["knowledge/testing/ci.md"].Fingerprint)
}

func TestComputeDiff_Empty(t *testing.T) {
	diff := ComputeDiff(nil, NewManifest())
	assert.Empty(t, diff.Entries)
	assert.False(t, diff.HasChanges())
}

func TestComputeDiff_AllUnchangedHasNoChanges(t *testing.T) {
	manifest := NewManifest()
	manifest.Upsert("knowledge/a.md", &ManifestEntry{
		DocID: "d1", Version: 1, Category: "general", Fingerprint: Fingerprint([]byte("a")),
	})

	diff := ComputeDiff(map[string]string{
		"knowledge/a.md": Fingerprint([]byte("a")),
	}, manifest)

	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.Changed())
}

func TestComputeDiff_IdenticalContentNeverModified(t *testing.T) {
	// Equal fingerprints mean Unchanged even when the file's mtime moved.
	content := []byte("# Same bytes\n")
	manifest := NewManifest()
	manifest.Upsert("knowledge/a.md", &ManifestEntry{
		DocID: "d1", Version: 5, Category: "general", Fingerprint: Fingerprint(content),
	})

	diff := ComputeDiff(map[string]string{"knowledge/a.md": Fingerprint(content)}, manifest)
	assert.Equal(t, StatusUnchanged, diff.Entries["knowledge/a.md"].Status)
}

func TestDiff_ByStatusSorted(t *testing.T) {
	manifest := NewManifest()
	local := map[string]string{
		"knowledge/z.md": Fingerprint([]byte("z")),
		"knowledge/a.md": Fingerprint([]byte("a")),
		"knowledge/m.md": Fingerprint([]byte("m")),
	}

	diff := ComputeDiff(local, manifest)
	entries := diff.ByStatus(StatusNew)
	require.Len(t, entries, 3)
	assert.Equal(t, "knowledge/a.md", entries[0].Path)
	assert.Equal(t, "knowledge/m.md", entries[1].Path)
	assert.Equal(t, "knowledge/z.md", entries[2].Path)

	assert.Empty(t, diff.ByStatus(StatusDeleted))
}

func TestDiff_ChangedExcludesUnchanged(t *testing.T) {
	manifest := NewManifest()
	manifest.Upsert("knowledge/same.md", &ManifestEntry{
		DocID: "d1", Version: 1, Category: "general", Fingerprint: Fingerprint([]byte("same")),
	})
	manifest.Upsert("knowledge/gone.md", &ManifestEntry{
		DocID: "d2", Version: 2, Category: "general", Fingerprint: Fingerprint([]byte("gone")),
	})

	local := map[string]string{
		"knowledge/same.md": Fingerprint([]byte("same")),
		"knowledge/new.md":  Fingerprint([]byte("new")),
	}

	changed := ComputeDiff(local, manifest).Changed()
	require.Len(t, changed, 2)
	assert.Equal(t, "knowledge/gone.md", changed[0].Path)
	assert.Equal(t, "knowledge/new.md", changed[1].Path)
}

func TestDiffStatus_String(t *testing.T) {
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "deleted", StatusDeleted.String())
	assert.Equal(t, "conflicted", StatusConflicted.String())
}
