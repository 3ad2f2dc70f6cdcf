package pdfcompare

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind is a closed set of error categories the core can produce (§7).
// Core errors are returned as *CompareError; callers branch on the kind
// with errors.Is against a *CompareError carrying only a Kind (such as the
// sentinels below) or with errors.As.
type ErrKind int

const (
	ErrDocumentNotFound ErrKind = iota
	ErrInvalidPage
	ErrRenderFailed
	ErrExtractionFailed
	ErrTimeout
	ErrCancelled
	ErrStoreIO
	ErrSerialization
	ErrInternal
)

func (k ErrKind) String() string {
	switch k {
	case ErrDocumentNotFound:
		return "DocumentNotFound"
	case ErrInvalidPage:
		return "InvalidPage"
	case ErrRenderFailed:
		return "RenderFailed"
	case ErrExtractionFailed:
		return "ExtractionFailed"
	case ErrTimeout:
		return "Timeout"
	case ErrCancelled:
		return "Cancelled"
	case ErrStoreIO:
		return "StoreIO"
	case ErrSerialization:
		return "Serialization"
	default:
		return "Internal"
	}
}

// CompareError wraps an underlying cause with the ErrKind that
// determines how the orchestrator propagates it (§7).
type CompareError struct {
	Kind   ErrKind
	Reason string
	Cause  error
}

func (e *CompareError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *CompareError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrTimeout) read naturally by comparing against
// a bare *CompareError carrying only a Kind.
func (e *CompareError) Is(target error) bool {
	t, ok := target.(*CompareError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// newErr builds a *CompareError, wrapping cause with a stack trace via
// pkg/errors when the kind is one the orchestrator surfaces verbatim to
// callers (StoreIO, Serialization, Internal) — the same dependency the
// teacher's go.mod already pinned, now used directly for these
// cross-goroutine error chains (§7).
func newErr(kind ErrKind, reason string, cause error) *CompareError {
	if cause != nil {
		switch kind {
		case ErrStoreIO, ErrSerialization, ErrInternal:
			cause = errors.WithStack(cause)
		}
	}
	return &CompareError{Kind: kind, Reason: reason, Cause: cause}
}

// Sentinel values for errors.Is comparisons against a bare kind, e.g.
// errors.Is(err, pdfcompare.ErrTimeoutSentinel).
var (
	ErrTimeoutSentinel   = &CompareError{Kind: ErrTimeout}
	ErrCancelledSentinel = &CompareError{Kind: ErrCancelled}
)
