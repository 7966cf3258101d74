package sync

import "sort"

type OpType uint8

var opTypeNames = []string{
	"created",
	"updated",
	"deleted",
	"pulled",
	"skipped",
	"conflict",
	"failed",
}

const (
	OpCreated OpType = iota
	OpUpdated
	OpDeleted
	OpPulled
	OpSkipped
	OpConflict
	OpFailed
)

func (op OpType) String() string {
	return opTypeNames[op]
}

// PathOp is the outcome of applying one path during push, pull or clone.
type PathOp struct {
	Op      OpType
	Path    string
	Version int64 // new remote version token, for created/updated/pulled
	Bytes   int64 // content bytes applied, for transfer summaries

	// Conflict only: the token we last synced vs the token now on the server.
	LocalVersion  int64
	RemoteVersion int64

	Err error // failed only
}

// PushOptions scope a push. Category restricts tracked paths to one category
// and overrides the inferred category for newly created documents.
type PushOptions struct {
	Category     string
	ChangeReason string
	Delete       bool
}

type PushResult struct {
	Ops       []*PathOp
	Unchanged int
}

func (r *PushResult) Count(op OpType) int {
	n := 0
	for _, o := range r.Ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

// Ok reports full success: no conflicts, no failures, and no deletions
// skipped for want of the delete flag.
func (r *PushResult) Ok() bool {
	for _, o := range r.Ops {
		switch o.Op {
		case OpSkipped, OpConflict, OpFailed:
			return false
		}
	}
	return true
}

type PullResult struct {
	Ops []*PathOp
}

func (r *PullResult) Count(op OpType) int {
	n := 0
	for _, o := range r.Ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

// TotalBytes sums the content bytes written by every applied op.
func (r *PullResult) TotalBytes() int64 {
	var n int64
	for _, o := range r.Ops {
		n += o.Bytes
	}
	return n
}

func (r *PullResult) Ok() bool {
	return r.Count(OpFailed) == 0
}

// StatusResult is a pure local report: the classified diff plus any paths
// that could not be read.
type StatusResult struct {
	Diff   *Diff
	Failed map[string]error
}

func sortOps(ops []*PathOp) {
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].Path < ops[j].Path
	})
}
