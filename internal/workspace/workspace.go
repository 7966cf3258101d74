package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/markdownlm/mdlm/internal/utils"
)

const (
	// KnowledgeDirName is where cloned docs live, relative to the workspace
	// root: knowledge/<category>/<title>.md
	KnowledgeDirName = "knowledge"

	// MetadataDirName holds client-owned state, never synced.
	MetadataDirName = ".mdlm"

	manifestFileName = "manifest.json"
	lockFileName     = "mdlm.lock"
)

var ErrWorkspaceLocked = errors.New("workspace locked by another mdlm process")

// Workspace is a local checkout of a knowledge base: a knowledge/ tree of
// markdown files plus a .mdlm/ metadata directory holding the manifest.
type Workspace struct {
	Root         string
	KnowledgeDir string
	MetadataDir  string
	ManifestPath string

	flock *flock.Flock
}

func NewWorkspace(rootDir string) (*Workspace, error) {
	root, err := utils.ResolvePath(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}

	return &Workspace{
		Root:         root,
		KnowledgeDir: filepath.Join(root, KnowledgeDirName),
		MetadataDir:  filepath.Join(root, MetadataDirName),
		ManifestPath: filepath.Join(root, MetadataDirName, manifestFileName),
		flock:        flock.New(filepath.Join(root, MetadataDirName, lockFileName)),
	}, nil
}

// Lock takes the workspace-wide mutation lock, so two mdlm processes cannot
// rewrite the manifest or the knowledge tree at the same time.
func (w *Workspace) Lock() error {
	if err := utils.EnsureDir(w.MetadataDir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.MetadataDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock workspace: %w", err)
	}
	if !locked {
		return ErrWorkspaceLocked
	}

	return nil
}

func (w *Workspace) Unlock() error {
	// if this process hasn't locked the workspace, then don't delete the lock file
	if !w.flock.Locked() {
		return nil
	}

	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock workspace: %w", err)
	}

	return os.Remove(w.flock.Path())
}

// Setup creates the workspace directories.
func (w *Workspace) Setup() error {
	dirs := []string{w.KnowledgeDir, w.MetadataDir}
	for _, dir := range dirs {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// IsInitialized reports whether this workspace already has a manifest,
// i.e. a clone has completed here before.
func (w *Workspace) IsInitialized() bool {
	return utils.FileExists(w.ManifestPath)
}

// AbsPath returns the absolute path for a workspace-relative path.
func (w *Workspace) AbsPath(relPath string) string {
	return filepath.Join(w.Root, filepath.FromSlash(relPath))
}

// RelPath returns the slash-normalized workspace-relative path of absPath.
func (w *Workspace) RelPath(absPath string) (string, error) {
	relPath, err := filepath.Rel(w.Root, absPath)
	if err != nil {
		return "", err
	}
	return NormPath(relPath), nil
}

// DocPath maps a document to its workspace-relative path:
// knowledge/<category>/<title>. Title and category are sanitized so a
// hostile server cannot escape the knowledge directory.
func DocPath(category string, title string) string {
	return NormPath(filepath.Join(KnowledgeDirName, SafeFileName(category), SafeFileName(title)))
}
