package sync

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

type DiffStatus uint8

var diffStatusNames = []string{
	"unchanged",
	"new",
	"modified",
	"deleted",
	"conflicted",
}

const (
	StatusUnchanged DiffStatus = iota
	StatusNew
	StatusModified
	StatusDeleted
	StatusConflicted
)

func (s DiffStatus) String() string {
	return diffStatusNames[s]
}

// DiffEntry classifies one path against the manifest baseline. Conflicted is
// only produced at push time, when the remote version token turns out to
// have moved since the last sync; it carries both tokens so the user knows
// to pull before retrying.
type DiffEntry struct {
	Path        string
	Status      DiffStatus
	Fingerprint string         // current local fingerprint, when the file exists
	Entry       *ManifestEntry // last-synced state, when the path is tracked

	// Conflicted only.
	LocalVersion  int64
	RemoteVersion int64
}

// Diff is the transient output of comparing a local scan against the
// manifest. Never persisted.
type Diff struct {
	Entries map[string]*DiffEntry
}

// ComputeDiff classifies every path in either the local tree or the
// manifest:
//   - local only → New
//   - manifest only → Deleted
//   - both, equal fingerprints → Unchanged
//   - both, different fingerprints → Modified
func ComputeDiff(local map[string]string, manifest *Manifest) *Diff {
	allPaths := mapset.NewThreadUnsafeSet[string]()
	for path := range local {
		allPaths.Add(path)
	}
	for path := range manifest.Docs {
		allPaths.Add(path)
	}

	diff := &Diff{
		Entries: make(map[string]*DiffEntry, allPaths.Cardinality()),
	}

	for path := range allPaths.Iter() {
		fp, localExists := local[path]
		entry, tracked := manifest.Get(path)

		de := &DiffEntry{
			Path:        path,
			Fingerprint: fp,
			Entry:       entry,
		}

		switch {
		case localExists && !tracked:
			de.Status = StatusNew
		case !localExists && tracked:
			de.Status = StatusDeleted
		case fp == entry.Fingerprint:
			de.Status = StatusUnchanged
		default:
			de.Status = StatusModified
		}

		diff.Entries[path] = de
	}

	return diff
}

// ByStatus returns the entries with the given status, sorted by path.
func (d *Diff) ByStatus(status DiffStatus) []*DiffEntry {
	var entries []*DiffEntry
	for _, de := range d.Entries {
		if de.Status == status {
			entries = append(entries, de)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Changed returns all non-Unchanged entries, sorted by path.
func (d *Diff) Changed() []*DiffEntry {
	var entries []*DiffEntry
	for _, de := range d.Entries {
		if de.Status != StatusUnchanged {
			entries = append(entries, de)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// HasChanges reports whether anything differs from the last-synced state.
func (d *Diff) HasChanges() bool {
	for _, de := range d.Entries {
		if de.Status != StatusUnchanged {
			return true
		}
	}
	return false
}
