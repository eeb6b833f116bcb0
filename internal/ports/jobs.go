package ports

import (
	"context"
	"time"
)

type VerificationJob struct {
	ID      string
	DraftID string
	Attempt int
}

// JobRepository queues verification jobs. Enqueueing for a draft supersedes
// any job still queued for it, so at most one attempt per draft is pending.
type JobRepository interface {
	EnqueueVerification(ctx context.Context, draftID string, attempt int) (jobID string, err error)
	ClaimNext(ctx context.Context) (job VerificationJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	// StartJobForDraft claims the queued job of one draft, returning
	// domain.ErrNotFound when a worker already took it.
	StartJobForDraft(ctx context.Context, draftID string) (VerificationJob, error)
	// RequeueStale puts jobs running for longer than olderThan back on the
	// queue, or supersedes them when the draft has a newer attempt. It
	// returns how many jobs were requeued.
	RequeueStale(ctx context.Context, olderThan time.Duration) (int, error)
}
