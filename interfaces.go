package pdfcompare

import (
	"context"
	"time"
)

// DocumentStore is the external collaborator that owns PDF parsing and
// rendering (§1, §6). The core only ever reads through this interface;
// it never touches raw PDF bytes.
type DocumentStore interface {
	// Get returns the Document handle for id, or (nil, nil) if unknown.
	Get(ctx context.Context, id string) (*Document, error)
}

// JobStore persists Job rows (§6). Ownership of the rows belongs to the
// store, not the orchestrator (§3 Ownership).
type JobStore interface {
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
}

// ArtifactStore persists one serialized ComparisonResult per job id
// (§4.9, §6). Implementations must make Store atomic (temp file + rename)
// and Retrieve/Exists safe to call concurrently with a Store of the same
// id.
type ArtifactStore interface {
	Store(ctx context.Context, id string, result *ComparisonResult) error
	Exists(ctx context.Context, id string) (bool, error)
	Retrieve(ctx context.Context, id string) (*ComparisonResult, error)
	Delete(ctx context.Context, id string) error
}

// Clock is an explicit dependency for "now", so tests can control time
// without a package-global (§9 design note on implicit singletons).
type Clock interface {
	Now() time.Time
}

// ProgressSink receives phase/progress updates from a running comparison
// (§4.7, §4.8). Implementations must be safe for concurrent calls.
type ProgressSink interface {
	OnProgress(phase string, progress int, completedOps, totalOps int)
}

// Canceller reports whether the owning job has been asked to stop (§5:
// cooperative cancellation, checked at batch boundaries and before each
// detector invocation).
type Canceller interface {
	Cancelled() bool
}
