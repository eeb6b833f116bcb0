// Package verifyrunner drains the verification job queue.
package verifyrunner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
)

// Processor performs the verification for one claimed job.
type Processor interface {
	Process(ctx context.Context, job ports.VerificationJob) error
}

// finishTimeout bounds marking a job finished once its context is gone.
const finishTimeout = 5 * time.Second

// Run starts worker goroutines that claim jobs and process them. It returns
// once ctx is done and every worker has finished its current job. Jobs left
// running for longer than staleAfter, by a worker that died, are put back on
// the queue; zero disables that sweep.
func Run(ctx context.Context, repo ports.JobRepository, processor Processor, concurrency int, pollInterval, staleAfter time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.VerificationJob, concurrency)

	// dispatcher loop
	go func() {
		defer close(jobsCh)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if staleAfter > 0 {
					requeueStale(ctx, repo, staleAfter)
				}
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						if ctx.Err() == nil {
							log.Printf("job claim error: %v", err)
						}
						break
					}
					if !found {
						break
					}
					select {
					case jobsCh <- job:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for job := range jobsCh {
				finish(ctx, repo, processor, job, idx)
			}
		}(i)
	}
	wg.Wait()
}

func requeueStale(ctx context.Context, repo ports.JobRepository, staleAfter time.Duration) {
	n, err := repo.RequeueStale(ctx, staleAfter)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("stale job sweep error: %v", err)
		}
		return
	}
	if n > 0 {
		log.Printf("requeued %d verification jobs running longer than %s", n, staleAfter)
	}
}

// settled detaches from ctx so a job is marked finished even when the worker
// or the waiting request is being cancelled.
func settled(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
}

func finish(ctx context.Context, repo ports.JobRepository, processor Processor, job ports.VerificationJob, idx int) {
	err := processor.Process(ctx, job)
	ctx, cancel := settled(ctx)
	defer cancel()
	if err != nil {
		if merr := repo.MarkFailed(ctx, job.ID, err.Error()); merr != nil {
			log.Printf("worker %d: mark failed err: %v", idx, merr)
		}
		log.Printf("worker %d: job %s for draft %s failed: %v", idx, job.ID, job.DraftID, err)
		return
	}
	if err := repo.MarkCompleted(ctx, job.ID); err != nil {
		log.Printf("worker %d: complete err: %v", idx, err)
	}
}

// ProcessInline claims the queued job of a draft and processes it
// synchronously with the same processor the workers use. When a worker
// already claimed the job it returns nil; callers poll the draft instead.
func ProcessInline(ctx context.Context, repo ports.JobRepository, processor Processor, draftID string) error {
	job, err := repo.StartJobForDraft(ctx, draftID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	perr := processor.Process(ctx, job)
	sctx, cancel := settled(ctx)
	defer cancel()
	if perr != nil {
		if err := repo.MarkFailed(sctx, job.ID, perr.Error()); err != nil {
			log.Printf("job %s: mark failed err: %v", job.ID, err)
		}
		return perr
	}
	return repo.MarkCompleted(sctx, job.ID)
}
