package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	gosync "sync"

	"golang.org/x/sync/errgroup"

	"github.com/markdownlm/mdlm/internal/mdsdk"
	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/markdownlm/mdlm/internal/workspace"
)

// applyConcurrency bounds parallel remote calls during push. Parallelism is
// a pure optimization: results are merged into one atomic manifest write.
const applyConcurrency = 4

// Engine reconciles the local tree against the manifest baseline and drives
// the remote DocumentService to apply the difference.
type Engine struct {
	ws  *workspace.Workspace
	svc DocumentService
}

func NewEngine(ws *workspace.Workspace, svc DocumentService) *Engine {
	return &Engine{
		ws:  ws,
		svc: svc,
	}
}

// Status compares the local tree against the manifest. Local only: no
// network calls, no mutation.
func (e *Engine) Status() (*StatusResult, error) {
	return Status(e.ws)
}

// Status is the package-level form of Engine.Status, for callers that have
// no remote client. Reporting local changes needs no credentials.
func Status(ws *workspace.Workspace) (*StatusResult, error) {
	manifest, err := LoadManifest(ws.ManifestPath)
	if err != nil {
		return nil, err
	}

	scan, err := Scan(ws)
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		Diff:   ComputeDiff(scan.Files, manifest),
		Failed: scan.Failed,
	}, nil
}

// Clone fetches the remote listing (optionally one category) into a fresh
// workspace. Refuses to touch a directory that already has a manifest.
func (e *Engine) Clone(ctx context.Context, category string) (*PullResult, error) {
	if e.ws.IsInitialized() {
		return nil, ErrAlreadyCloned
	}

	if err := e.ws.Lock(); err != nil {
		return nil, err
	}
	defer e.ws.Unlock()

	docs, err := e.svc.ListDocuments(ctx, category)
	if err != nil {
		return nil, err
	}

	if err := e.ws.Setup(); err != nil {
		return nil, err
	}

	return e.materialize(docs)
}

// Pull re-fetches the full remote listing, overwrites local files
// unconditionally and rebuilds the manifest from scratch. Local edits do
// not survive a pull.
func (e *Engine) Pull(ctx context.Context) (*PullResult, error) {
	if !e.ws.IsInitialized() {
		return nil, ErrManifestMissing
	}

	if err := e.ws.Lock(); err != nil {
		return nil, err
	}
	defer e.ws.Unlock()

	// A corrupt manifest aborts before anything is overwritten.
	if _, err := LoadManifest(e.ws.ManifestPath); err != nil {
		return nil, err
	}

	docs, err := e.svc.ListDocuments(ctx, "")
	if err != nil {
		return nil, err
	}

	return e.materialize(docs)
}

// materialize writes fetched documents to their mapped paths and saves a
// rebuilt manifest. A write failure skips that path and continues; the
// manifest records only what landed on disk.
func (e *Engine) materialize(docs []*mdsdk.Document) (*PullResult, error) {
	manifest := NewManifest()
	result := &PullResult{}

	for _, doc := range docs {
		relPath := workspace.DocPath(doc.Category, doc.Title)
		content := []byte(doc.Content)

		if err := utils.WriteFileAtomic(e.ws.AbsPath(relPath), content, 0o644); err != nil {
			slog.Error("sync", "op", OpFailed, "path", relPath, "error", err)
			result.Ops = append(result.Ops, &PathOp{Op: OpFailed, Path: relPath, Err: err})
			continue
		}

		manifest.Upsert(relPath, &ManifestEntry{
			DocID:       doc.ID,
			Version:     doc.Version,
			Category:    doc.Category,
			Fingerprint: Fingerprint(content),
		})
		result.Ops = append(result.Ops, &PathOp{Op: OpPulled, Path: relPath, Version: doc.Version, Bytes: int64(len(content))})
		slog.Debug("sync", "op", OpPulled, "path", relPath, "version", doc.Version)
	}

	sortOps(result.Ops)

	if err := manifest.Save(e.ws.ManifestPath); err != nil {
		return result, err
	}

	return result, nil
}

// Push applies local changes to the remote. Per-path failures and conflicts
// never abort the batch; the manifest is written once at the end, covering
// every path that was successfully applied.
func (e *Engine) Push(ctx context.Context, opts *PushOptions) (*PushResult, error) {
	if opts == nil {
		opts = &PushOptions{}
	}

	if !e.ws.IsInitialized() {
		return nil, ErrManifestMissing
	}

	// The manifest is read and rewritten under the workspace lock, so two
	// concurrent pushes cannot interleave their baselines.
	if err := e.ws.Lock(); err != nil {
		return nil, err
	}
	defer e.ws.Unlock()

	manifest, err := LoadManifest(e.ws.ManifestPath)
	if err != nil {
		return nil, err
	}

	scan, err := Scan(e.ws)
	if err != nil {
		return nil, err
	}

	diff := ComputeDiff(scan.Files, manifest)

	result := &PushResult{
		Unchanged: len(diff.ByStatus(StatusUnchanged)),
	}
	for relPath, ferr := range scan.Failed {
		result.Ops = append(result.Ops, &PathOp{Op: OpFailed, Path: relPath, Err: ferr})
	}

	// mu guards the manifest and the result across the apply fan-out.
	var mu gosync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(applyConcurrency)

	for _, de := range diff.Changed() {
		if skipForCategory(de, opts.Category) {
			continue
		}

		g.Go(func() error {
			op := e.applyPush(gctx, de, opts, manifest, &mu)
			mu.Lock()
			result.Ops = append(result.Ops, op)
			mu.Unlock()

			if op.Err != nil {
				slog.Error("sync", "op", op.Op, "path", op.Path, "error", op.Err)
			} else {
				slog.Debug("sync", "op", op.Op, "path", op.Path)
			}
			return nil
		})
	}
	_ = g.Wait()

	sortOps(result.Ops)

	if err := manifest.Save(e.ws.ManifestPath); err != nil {
		return result, err
	}

	return result, nil
}

// skipForCategory drops tracked paths outside the requested category. New
// paths always pass: the category option overrides what they are created as
// instead.
func skipForCategory(de *DiffEntry, category string) bool {
	if category == "" || de.Entry == nil {
		return false
	}
	return de.Entry.Category != category
}

func (e *Engine) applyPush(ctx context.Context, de *DiffEntry, opts *PushOptions, manifest *Manifest, mu *gosync.Mutex) *PathOp {
	switch de.Status {
	case StatusNew:
		return e.pushCreate(ctx, de, opts, manifest, mu)
	case StatusModified:
		return e.pushUpdate(ctx, de, opts, manifest, mu)
	case StatusDeleted:
		return e.pushDelete(ctx, de, opts, manifest, mu)
	default:
		return &PathOp{Op: OpSkipped, Path: de.Path}
	}
}

func (e *Engine) pushCreate(ctx context.Context, de *DiffEntry, opts *PushOptions, manifest *Manifest, mu *gosync.Mutex) *PathOp {
	content, err := os.ReadFile(e.ws.AbsPath(de.Path))
	if err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}

	category := workspace.CategoryForPath(de.Path, opts.Category)
	title := path.Base(de.Path)

	doc, err := e.svc.CreateDocument(ctx, category, title, string(content))
	if err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}

	mu.Lock()
	manifest.Upsert(de.Path, &ManifestEntry{
		DocID:       doc.ID,
		Version:     doc.Version,
		Category:    doc.Category,
		Fingerprint: Fingerprint(content),
	})
	mu.Unlock()

	return &PathOp{Op: OpCreated, Path: de.Path, Version: doc.Version, Bytes: int64(len(content))}
}

func (e *Engine) pushUpdate(ctx context.Context, de *DiffEntry, opts *PushOptions, manifest *Manifest, mu *gosync.Mutex) *PathOp {
	entry := de.Entry

	// Three-way check: the manifest token is what we last saw; a different
	// remote token means someone else changed the document since.
	remoteVersion, err := e.svc.GetVersion(ctx, entry.DocID)
	if err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}
	if remoteVersion != entry.Version {
		return &PathOp{Op: OpConflict, Path: de.Path, LocalVersion: entry.Version, RemoteVersion: remoteVersion}
	}

	content, err := os.ReadFile(e.ws.AbsPath(de.Path))
	if err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}

	newVersion, err := e.svc.UpdateDocument(ctx, entry.DocID, string(content), entry.Version, opts.ChangeReason)
	if err != nil {
		// The server enforces the expected version too; the pre-check above
		// only narrows the race window.
		var conflict *mdsdk.VersionConflictError
		if errors.As(err, &conflict) {
			return &PathOp{Op: OpConflict, Path: de.Path, LocalVersion: entry.Version, RemoteVersion: conflict.ActualVersion}
		}
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}

	mu.Lock()
	manifest.Upsert(de.Path, &ManifestEntry{
		DocID:       entry.DocID,
		Version:     newVersion,
		Category:    entry.Category,
		Fingerprint: Fingerprint(content),
	})
	mu.Unlock()

	return &PathOp{Op: OpUpdated, Path: de.Path, Version: newVersion, Bytes: int64(len(content))}
}

func (e *Engine) pushDelete(ctx context.Context, de *DiffEntry, opts *PushOptions, manifest *Manifest, mu *gosync.Mutex) *PathOp {
	if !opts.Delete {
		return &PathOp{Op: OpSkipped, Path: de.Path}
	}

	entry := de.Entry

	// A remote edit since the last sync makes a local delete ambiguous.
	// Treat it as a conflict rather than destroying someone else's change.
	remoteVersion, err := e.svc.GetVersion(ctx, entry.DocID)
	if err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}
	if remoteVersion != entry.Version {
		return &PathOp{Op: OpConflict, Path: de.Path, LocalVersion: entry.Version, RemoteVersion: remoteVersion}
	}

	if err := e.svc.DeleteDocument(ctx, entry.DocID); err != nil {
		return &PathOp{Op: OpFailed, Path: de.Path, Err: err}
	}

	mu.Lock()
	manifest.Remove(de.Path)
	mu.Unlock()

	return &PathOp{Op: OpDeleted, Path: de.Path}
}
