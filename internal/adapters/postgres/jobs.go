package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
)

// EnqueueVerification queues a job for the given attempt and supersedes any
// job of the same draft that has not started yet.
func (db *DB) EnqueueVerification(ctx context.Context, draftID string, attempt int) (string, error) {
	jobID := uuid.NewString()
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE verification_jobs SET status = 'superseded', finished_at = now()
			WHERE draft_id = $1 AND status = 'queued'
		`, draftID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO verification_jobs (id, draft_id, attempt) VALUES ($1, $2, $3)
		`, jobID, draftID, attempt)
		return err
	})
	if err != nil {
		return "", err
	}
	return jobID, nil
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job ports.VerificationJob, found bool, err error) {
	err = db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT id, draft_id, attempt FROM verification_jobs
			WHERE status = 'queued'
			ORDER BY queued_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		`).Scan(&job.ID, &job.DraftID, &job.Attempt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return markRunning(ctx, tx, job.ID)
	})
	if err != nil {
		return ports.VerificationJob{}, false, err
	}
	return job, found, nil
}

// StartJobForDraft claims the queued job of one draft for inline processing.
func (db *DB) StartJobForDraft(ctx context.Context, draftID string) (job ports.VerificationJob, err error) {
	err = db.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT id, draft_id, attempt FROM verification_jobs
			WHERE draft_id = $1 AND status = 'queued'
			ORDER BY queued_at DESC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		`, draftID).Scan(&job.ID, &job.DraftID, &job.Attempt)
		if err != nil {
			return notFound(err, "verification job", draftID)
		}
		return markRunning(ctx, tx, job.ID)
	})
	if err != nil {
		return ports.VerificationJob{}, err
	}
	return job, nil
}

func markRunning(ctx context.Context, tx pgx.Tx, jobID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE verification_jobs SET status = 'running', started_at = now(), runs = runs + 1 WHERE id = $1
	`, jobID)
	return err
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	return db.finishJob(ctx, jobID, "completed", nil)
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finishJob(ctx, jobID, "failed", &reason)
}

// finishJob records the outcome even when ctx is already done; a job left
// running would otherwise wait for the stale sweep.
func (db *DB) finishJob(ctx context.Context, jobID, status string, reason *string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, `
		UPDATE verification_jobs SET status = $2, last_error = $3, finished_at = now() WHERE id = $1
	`, jobID, status, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("verification job", jobID)
	}
	return nil
}

// RequeueStale returns abandoned running jobs to the queue. A job whose draft
// already has a newer attempt is superseded instead.
func (db *DB) RequeueStale(ctx context.Context, olderThan time.Duration) (int, error) {
	var requeued int
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE verification_jobs j SET status = 'superseded', finished_at = now()
			WHERE j.status = 'running'
			  AND j.started_at < now() - make_interval(secs => $1)
			  AND EXISTS (
				SELECT 1 FROM verification_jobs n
				WHERE n.draft_id = j.draft_id AND n.attempt > j.attempt
			  )
		`, olderThan.Seconds()); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE verification_jobs SET status = 'queued', started_at = NULL, queued_at = clock_timestamp()
			WHERE status = 'running' AND started_at < now() - make_interval(secs => $1)
		`, olderThan.Seconds())
		if err != nil {
			return err
		}
		requeued = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return requeued, nil
}
