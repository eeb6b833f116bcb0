package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

var t0 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func TestDraftVersioning(t *testing.T) {
	ctx := context.Background()
	s := New()

	d, err := s.CreateDraft(ctx, workflow.New("d1", t0))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Version)

	_, err = s.CreateDraft(ctx, workflow.New("d1", t0))
	assert.ErrorIs(t, err, domain.ErrConflict)

	saved, err := s.SaveDraft(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Version)

	// a writer holding the old version loses
	_, err = s.SaveDraft(ctx, d)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = s.GetDraft(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()
	d := workflow.New("d1", t0)
	d.Location = &domain.Location{Lat: 1, Lng: 2}
	d, _ = s.CreateDraft(ctx, d)

	d.Location.Lat = 50
	got, _ := s.GetDraft(ctx, "d1")
	assert.Equal(t, 1.0, got.Location.Lat)
}

func TestSubmitDraftAndReports(t *testing.T) {
	ctx := context.Background()
	s := New()
	d, _ := s.CreateDraft(ctx, workflow.New("d1", t0))
	d.State = workflow.StateSubmitted
	r := domain.Report{ID: "r1", Status: domain.StatusPending, CreatedAt: t0}

	_, err := s.SubmitDraft(ctx, d, r)
	require.NoError(t, err)
	_, err = s.SubmitDraft(ctx, d, r)
	assert.ErrorIs(t, err, domain.ErrConflict)

	s.Seed(
		domain.Report{ID: "r0", Status: domain.StatusVerified, CreatedAt: t0.Add(-time.Hour)},
		domain.Report{ID: "r2", Status: domain.StatusPending, CreatedAt: t0.Add(time.Hour)},
	)
	all, _ := s.ListReports(ctx, ports.ReportFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "r2", all[0].ID, "newest first")

	pending, _ := s.ListReports(ctx, ports.ReportFilter{Status: domain.StatusPending, Limit: 1})
	require.Len(t, pending, 1)
	assert.Equal(t, "r2", pending[0].ID)

	updated, err := s.UpdateReportStatus(ctx, "r1", domain.StatusPending, domain.StatusVerified, t0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, updated.Status)
	_, err = s.UpdateReportStatus(ctx, "r1", domain.StatusPending, domain.StatusRejected, t0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestJobsSupersedeAndClaim(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, _ := s.EnqueueVerification(ctx, "d1", 1)
	second, _ := s.EnqueueVerification(ctx, "d1", 2)
	other, _ := s.EnqueueVerification(ctx, "d2", 1)
	assert.Equal(t, "superseded", s.JobStatus(first))

	job, found, err := s.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, second, job.ID)
	assert.Equal(t, 2, job.Attempt)

	job, err = s.StartJobForDraft(ctx, "d2")
	require.NoError(t, err)
	assert.Equal(t, other, job.ID)

	_, found, _ = s.ClaimNext(ctx)
	assert.False(t, found)
	_, err = s.StartJobForDraft(ctx, "d2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.MarkCompleted(ctx, second))
	require.NoError(t, s.MarkFailed(ctx, other, "boom"))
	assert.Equal(t, "completed", s.JobStatus(second))
	assert.Equal(t, "failed", s.JobStatus(other))
}

func TestRequeueStaleJobs(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(t0)
	s := NewWithClock(clock)

	abandoned, _ := s.EnqueueVerification(ctx, "d1", 1)
	_, found, _ := s.ClaimNext(ctx)
	require.True(t, found)

	clock.Advance(10 * time.Second)
	n, err := s.RequeueStale(ctx, 30*time.Second)
	require.NoError(t, err)
	assert.Zero(t, n, "still within the lease")

	clock.Advance(time.Minute)
	n, err = s.RequeueStale(ctx, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "queued", s.JobStatus(abandoned))

	job, found, _ := s.ClaimNext(ctx)
	require.True(t, found)
	assert.Equal(t, abandoned, job.ID)

	// a newer attempt for the same draft supersedes the stale run instead
	_, _ = s.EnqueueVerification(ctx, "d1", 2)
	clock.Advance(time.Minute)
	n, _ = s.RequeueStale(ctx, 30*time.Second)
	assert.Zero(t, n)
	assert.Equal(t, "superseded", s.JobStatus(abandoned))
}

func TestFinishedJobsArePruned(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.maxFinishedJobs = 2

	var ids []string
	for i := 0; i < 5; i++ {
		id, _ := s.EnqueueVerification(ctx, fmt.Sprintf("d%d", i), 1)
		ids = append(ids, id)
	}
	for range ids {
		job, found, err := s.ClaimNext(ctx)
		require.NoError(t, err)
		require.True(t, found)
		require.NoError(t, s.MarkCompleted(ctx, job.ID))
	}
	assert.Len(t, s.jobs, 2)
	assert.Empty(t, s.JobStatus(ids[0]), "oldest finished records are dropped")
	assert.Equal(t, "completed", s.JobStatus(ids[4]))

	// queued work is never pruned
	queued, _ := s.EnqueueVerification(ctx, "d9", 1)
	assert.Equal(t, "queued", s.JobStatus(queued))
}

func TestImages(t *testing.T) {
	ctx := context.Background()
	s := New()
	ref, err := s.PutImage(ctx, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, domain.DigestOf([]byte("jpeg")), ref.Digest)
	assert.Equal(t, 4, ref.Size)

	data, err := s.GetImage(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)

	_, err = s.PutImage(ctx, nil, "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
