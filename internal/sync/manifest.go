package sync

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/markdownlm/mdlm/internal/utils"
)

// ManifestSchemaVersion is the only schema this client reads or writes.
const ManifestSchemaVersion = 1

var (
	ErrManifestMissing = errors.New("no manifest found, run `mdlm clone` first")
	ErrAlreadyCloned   = errors.New("this directory already has a manifest, use `mdlm pull` to refresh existing docs")
)

// ManifestCorruptError means the manifest file exists but cannot be parsed
// according to its declared schema version. Fatal for the run: the client
// never guesses a repair.
type ManifestCorruptError struct {
	Path string
	Err  error
}

func (e *ManifestCorruptError) Error() string {
	return fmt.Sprintf("corrupt manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestCorruptError) Unwrap() error {
	return e.Err
}

// ManifestEntry records what we last knew the remote to hold for one path.
type ManifestEntry struct {
	DocID       string `json:"id"`
	Version     int64  `json:"version"`
	Category    string `json:"category"`
	Fingerprint string `json:"fingerprint"`
}

// Manifest maps workspace-relative paths to their last-synced state. It is
// the pivot for all reconciliation: the local tree and the remote listing
// are each compared against it, never against each other directly.
type Manifest struct {
	SchemaVersion int                       `json:"schema_version"`
	Docs          map[string]*ManifestEntry `json:"docs"`
}

func NewManifest() *Manifest {
	return &Manifest{
		SchemaVersion: ManifestSchemaVersion,
		Docs:          make(map[string]*ManifestEntry),
	}
}

// LoadManifest reads a manifest from disk. A missing file is
// ErrManifestMissing (recoverable, "not yet cloned"); an unparseable file or
// an unknown schema version is a *ManifestCorruptError.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrManifestMissing
		}
		return nil, fmt.Errorf("manifest read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ManifestCorruptError{Path: path, Err: err}
	}
	if m.SchemaVersion != ManifestSchemaVersion {
		return nil, &ManifestCorruptError{
			Path: path,
			Err:  fmt.Errorf("unsupported schema version %d", m.SchemaVersion),
		}
	}
	if m.Docs == nil {
		m.Docs = make(map[string]*ManifestEntry)
	}

	return &m, nil
}

// Save persists the manifest with an atomic whole-file replace, so a crash
// mid-write leaves the previous valid manifest intact.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest write %s: %w", path, err)
	}
	return nil
}

func (m *Manifest) Get(relPath string) (*ManifestEntry, bool) {
	entry, ok := m.Docs[relPath]
	return entry, ok
}

func (m *Manifest) Upsert(relPath string, entry *ManifestEntry) {
	m.Docs[relPath] = entry
}

func (m *Manifest) Remove(relPath string) {
	delete(m.Docs, relPath)
}

func (m *Manifest) Count() int {
	return len(m.Docs)
}
