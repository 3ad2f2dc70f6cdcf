package pdfcompare

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Orchestrator owns the Job state machine and dispatches comparisons
// onto a bounded worker pool (§4.8, §5). It depends only on the
// interfaces in interfaces.go, never on a concrete store or transport.
type Orchestrator struct {
	docs      DocumentStore
	jobs      JobStore
	artifacts ArtifactStore
	engine    *Engine
	clock     Clock
	caches    *ResultCaches
	log       *zap.Logger
	cfg       Config

	sem *semaphore.Weighted

	mu          sync.Mutex
	cancelFlags map[string]*cancelFlag
	activeTasks map[string]context.CancelFunc
}

// NewOrchestrator wires the collaborators an Orchestrator needs. Pass a
// *zap.Logger from NewLogger (logging.go); a nil logger no-ops.
func NewOrchestrator(docs DocumentStore, jobs JobStore, artifacts ArtifactStore, engine *Engine, clock Clock, log *zap.Logger, cfg Config) *Orchestrator {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		docs:        docs,
		jobs:        jobs,
		artifacts:   artifacts,
		engine:      engine,
		clock:       clock,
		caches:      NewResultCaches(),
		log:         log,
		cfg:         cfg,
		sem:         semaphore.NewWeighted(int64(runtime.NumCPU())),
		cancelFlags: make(map[string]*cancelFlag),
		activeTasks: make(map[string]context.CancelFunc),
	}
}

// Create validates both document ids, persists a new Job in Processing,
// registers its cancel flag, dispatches the async comparison task, and
// returns the persisted row (§4.8).
func (o *Orchestrator) Create(ctx context.Context, baseID, compareID string) (*Job, error) {
	base, err := o.docs.Get(ctx, baseID)
	if err != nil {
		return nil, newErr(ErrInternal, "looking up base document", err)
	}
	if base == nil {
		return nil, newErr(ErrDocumentNotFound, "base document "+baseID, nil)
	}
	compare, err := o.docs.Get(ctx, compareID)
	if err != nil {
		return nil, newErr(ErrInternal, "looking up compare document", err)
	}
	if compare == nil {
		return nil, newErr(ErrDocumentNotFound, "compare document "+compareID, nil)
	}

	now := o.clock.Now()
	job := &Job{
		ID:                uuid.NewString(),
		BaseDocumentID:    baseID,
		CompareDocumentID: compareID,
		Status:            Processing,
		Progress:          0,
		CurrentPhase:      "Initializing",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := o.jobs.Create(ctx, job); err != nil {
		return nil, newErr(ErrStoreIO, "persisting new job", err)
	}
	o.log.Info("job created", zap.String("job_id", job.ID), zap.String("base", baseID), zap.String("compare", compareID))

	flag := newCancelFlag()
	taskCtx, cancelTask := context.WithCancel(context.Background())
	o.mu.Lock()
	o.cancelFlags[job.ID] = flag
	o.activeTasks[job.ID] = cancelTask
	o.mu.Unlock()

	go o.run(taskCtx, job.ID, baseID, compareID, flag)

	cp := *job
	return &cp, nil
}

// run is the async task body: exactly one activation per job id (§4.8).
func (o *Orchestrator) run(ctx context.Context, jobID, baseID, compareID string, flag *cancelFlag) {
	defer o.deregister(jobID)

	if err := o.sem.Acquire(ctx, 1); err != nil {
		o.markFailed(jobID, "could not schedule job: "+err.Error())
		return
	}
	defer o.sem.Release(1)

	timeout := o.cfg.MaxProcessingDuration()
	runCtx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	go func() {
		<-runCtx.Done()
		if runCtx.Err() == context.DeadlineExceeded {
			flag.set()
		}
	}()

	base, err := o.docs.Get(runCtx, baseID)
	if err != nil || base == nil {
		o.markFailed(jobID, "base document unavailable")
		return
	}
	compare, err := o.docs.Get(runCtx, compareID)
	if err != nil || compare == nil {
		o.markFailed(jobID, "compare document unavailable")
		return
	}

	rc := RunContext{
		Ctx:    runCtx,
		Cancel: flag,
		Progress: funcProgressSink(func(phase string, progress int, completedOps, totalOps int) {
			o.updateProgress(jobID, phase, progress, completedOps, totalOps)
		}),
	}

	result, err := o.engine.Compare(rc, base, compare)
	if err != nil {
		switch {
		case runCtx.Err() == context.DeadlineExceeded:
			o.markFailed(jobID, fmt.Sprintf("Comparison timed out after %d minutes", o.cfg.MaxProcessingMinutes))
		case flag.Cancelled():
			o.markCancelled(jobID)
		default:
			o.markFailed(jobID, err.Error())
		}
		return
	}

	result.ID = jobID
	result.BaseDocumentID = baseID
	result.CompareDocumentID = compareID
	result.CreatedAt = o.clock.Now()
	result.CompletedAt = o.clock.Now()

	// Store before the status transition to Completed (§4.8 step 3).
	if err := o.artifacts.Store(context.Background(), jobID, result); err != nil {
		o.markFailed(jobID, "storing result: "+err.Error())
		return
	}
	o.caches.Put(jobID, result)
	o.markCompleted(jobID)
}

func (o *Orchestrator) deregister(jobID string) {
	o.mu.Lock()
	delete(o.cancelFlags, jobID)
	delete(o.activeTasks, jobID)
	o.mu.Unlock()
}

func (o *Orchestrator) updateProgress(jobID, phase string, progress, completedOps, totalOps int) {
	ctx := context.Background()
	job, err := o.jobs.Get(ctx, jobID)
	if err != nil || job == nil {
		return
	}
	status := phaseStatus(phase)
	if status.rank() > job.Status.rank() {
		job.Status = status
	}
	job.Progress = progress
	job.CompletedOps = completedOps
	job.TotalOps = totalOps
	job.CurrentPhase = phase
	job.UpdatedAt = o.clock.Now()
	// Progress writes are best-effort: a failure here must not abort the
	// comparison (§4.8).
	_ = o.jobs.Update(ctx, job)
}

func phaseStatus(phase string) JobStatus {
	switch phase {
	case "Matching documents":
		return DocumentMatching
	case "Comparing", "Completed":
		return Comparing
	default:
		return Processing
	}
}

func (o *Orchestrator) markCompleted(jobID string) {
	o.log.Info("job completed", zap.String("job_id", jobID))
	o.transition(jobID, func(job *Job) {
		job.Status = Completed
		job.Progress = 100
		job.CurrentPhase = "Completed"
		job.ErrorMessage = ""
		now := o.clock.Now()
		job.CompletedAt = &now
	})
}

func (o *Orchestrator) markFailed(jobID, reason string) {
	o.log.Warn("job failed", zap.String("job_id", jobID), zap.String("reason", reason))
	o.transition(jobID, func(job *Job) {
		job.Status = Failed
		job.ErrorMessage = reason
		now := o.clock.Now()
		job.CompletedAt = &now
	})
}

func (o *Orchestrator) markCancelled(jobID string) {
	o.transition(jobID, func(job *Job) {
		job.Status = Cancelled
		now := o.clock.Now()
		job.CompletedAt = &now
	})
}

func (o *Orchestrator) transition(jobID string, mutate func(*Job)) {
	ctx := context.Background()
	job, err := o.jobs.Get(ctx, jobID)
	if err != nil || job == nil {
		return
	}
	mutate(job)
	job.UpdatedAt = o.clock.Now()
	_ = o.jobs.Update(ctx, job)
}

// reconcile applies §4.8's reconciliation rule: if an artifact exists
// but the job status is not yet Completed, heal the status before
// returning anything derived from it. Terminal states are sticky (§3):
// a Cancelled or Failed job must never be promoted back to Completed,
// even if its artifact later shows up on disk.
func (o *Orchestrator) reconcile(ctx context.Context, jobID string) (*Job, error) {
	job, err := o.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, newErr(ErrStoreIO, "reading job", err)
	}
	if job == nil {
		return nil, nil
	}
	if job.Status.Terminal() {
		return job, nil
	}
	exists, err := o.artifacts.Exists(ctx, jobID)
	if err != nil {
		return nil, newErr(ErrStoreIO, "checking artifact existence", err)
	}
	if exists {
		job.Status = Completed
		job.Progress = 100
		job.CurrentPhase = "Completed"
		job.UpdatedAt = o.clock.Now()
		if err := o.jobs.Update(ctx, job); err != nil {
			return nil, newErr(ErrStoreIO, "healing job status", err)
		}
	}
	return job, nil
}

// Status returns the current Job row, reconciling against the artifact
// store first (§4.8).
func (o *Orchestrator) Status(ctx context.Context, jobID string) (*Job, error) {
	return o.reconcile(ctx, jobID)
}

// IsInProgress reports whether the job has not yet reached a terminal
// state.
func (o *Orchestrator) IsInProgress(ctx context.Context, jobID string) (bool, error) {
	job, err := o.Status(ctx, jobID)
	if err != nil || job == nil {
		return false, err
	}
	return !job.Status.Terminal(), nil
}

// IsCompleted reports whether the job reached Completed.
func (o *Orchestrator) IsCompleted(ctx context.Context, jobID string) (bool, error) {
	job, err := o.Status(ctx, jobID)
	if err != nil || job == nil {
		return false, err
	}
	return job.Status == Completed, nil
}

// Result returns the persisted ComparisonResult for jobID, reconciling
// status first. Uses the result cache to avoid re-reading the artifact
// store on repeat calls.
func (o *Orchestrator) Result(ctx context.Context, jobID string) (*ComparisonResult, error) {
	if _, err := o.reconcile(ctx, jobID); err != nil {
		return nil, err
	}
	if cached, ok := o.caches.Result(jobID); ok {
		return cached, nil
	}
	result, err := o.artifacts.Retrieve(ctx, jobID)
	if err != nil {
		return nil, newErr(ErrStoreIO, "retrieving result", err)
	}
	if result != nil {
		o.caches.Put(jobID, result)
	}
	return result, nil
}

// Cancel sets the cancel flag for jobID, if the job is still running
// (§4.8, §5: cooperative cancellation).
func (o *Orchestrator) Cancel(ctx context.Context, jobID string) error {
	o.mu.Lock()
	flag, ok := o.cancelFlags[jobID]
	cancelTask := o.activeTasks[jobID]
	o.mu.Unlock()
	if !ok {
		return nil
	}
	flag.set()
	if cancelTask != nil {
		cancelTask()
	}
	return nil
}
