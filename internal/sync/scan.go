package sync

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/markdownlm/mdlm/internal/workspace"
)

const markdownGlob = "**/*.md"

// ScanResult is the current local tree state: a fingerprint per markdown
// file, recomputed from disk on every invocation and never persisted.
type ScanResult struct {
	// Files maps workspace-relative paths to content fingerprints.
	Files map[string]string
	// Failed holds paths that exist but could not be read. They are excluded
	// from diffing so an unreadable file is never mistaken for a deletion.
	Failed map[string]error
}

// Scan walks the knowledge tree and fingerprints every markdown file.
// Symbolic links and the client's own metadata are excluded. Deterministic:
// same directory state, same result.
func Scan(ws *workspace.Workspace) (*ScanResult, error) {
	result := &ScanResult{
		Files:  make(map[string]string),
		Failed: make(map[string]error),
	}

	root := ws.KnowledgeDir
	if !utils.DirExists(root) {
		return result, nil
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}

		if d.IsDir() {
			if d.Name() == workspace.MetadataDirName {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks and anything else that is not a regular file.
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := ws.RelPath(path)
		if err != nil {
			return err
		}

		matched, err := doublestar.Match(markdownGlob, relPath)
		if err != nil || !matched {
			return err
		}

		fp, err := FingerprintFile(path)
		if err != nil {
			result.Failed[relPath] = err
			return nil
		}
		result.Files[relPath] = fp

		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	return result, nil
}
