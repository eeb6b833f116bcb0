package submissions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewastewatch/internal/adapters/memory"
	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

type verifierFunc func(ctx context.Context, image []byte, contentType string) (workflow.Classification, error)

func (f verifierFunc) Verify(ctx context.Context, image []byte, contentType string) (workflow.Classification, error) {
	return f(ctx, image, contentType)
}

type refresherSpy struct{ calls atomic.Int32 }

func (r *refresherSpy) Recompute(context.Context) ([]domain.Hotspot, error) {
	r.calls.Add(1)
	return nil, nil
}

var accepting = verifierFunc(func(context.Context, []byte, string) (workflow.Classification, error) {
	return workflow.Classification{IsEwaste: true, Confidence: 0.88, DetectedType: domain.WastePCB}, nil
})

func fixed(lat, lng float64) ports.Locator {
	return ports.LocatorFunc(func(context.Context) (domain.Location, error) {
		return domain.Location{Lat: lat, Lng: lng}, nil
	})
}

type harness struct {
	store     *memory.Store
	svc       *Service
	refresher *refresherSpy
	clock     *clockwork.FakeClock
}

func newHarness(v ports.Verifier, opts Options) *harness {
	store := memory.New()
	refresher := &refresherSpy{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC))
	opts.Clock = clock
	if opts.Threshold == 0 {
		opts.Threshold = 0.75
	}
	svc := New(Deps{Drafts: store, Images: store, Jobs: store, Verifier: v, Refresher: refresher}, opts)
	return &harness{store: store, svc: svc, refresher: refresher, clock: clock}
}

// runJob processes the queued job of a draft the way ProcessInline does.
func (h *harness) runJob(t *testing.T, draftID string) error {
	t.Helper()
	job, err := h.store.StartJobForDraft(context.Background(), draftID)
	require.NoError(t, err)
	return h.svc.Process(context.Background(), job)
}

func (h *harness) verifiedDraft(t *testing.T) workflow.Draft {
	t.Helper()
	ctx := context.Background()
	d, err := h.svc.Create(ctx)
	require.NoError(t, err)
	_, err = h.svc.AttachImage(ctx, d.ID, []byte("photo-1"), "image/jpeg")
	require.NoError(t, err)
	require.NoError(t, h.runJob(t, d.ID))
	d, err = h.svc.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, workflow.StateVerified, d.State)
	return d
}

func TestSubmit_HappyPath(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d := h.verifiedDraft(t)
	assert.Equal(t, domain.WastePCB, d.WasteType)

	d, err := h.svc.AcquireLocation(ctx, d.ID, fixed(28.6139, 77.2090))
	require.NoError(t, err)
	assert.Equal(t, "28.6139, 77.2090", d.Location.Address)

	report, err := h.svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, report.Status)
	assert.Equal(t, domain.WastePCB, report.WasteType)
	assert.Equal(t, h.clock.Now(), report.CreatedAt)
	assert.Equal(t, domain.DigestOf([]byte("photo-1")), report.Image.Digest)
	assert.EqualValues(t, 1, h.refresher.calls.Load())

	stored, err := h.store.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, stored.ID)

	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateSubmitted, d.State)
	assert.Equal(t, report.ID, d.ReportID)

	_, err = h.svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "already_submitted"})
}

func TestSubmit_NegativeClassification(t *testing.T) {
	ctx := context.Background()
	h := newHarness(verifierFunc(func(context.Context, []byte, string) (workflow.Classification, error) {
		return workflow.Classification{IsEwaste: false, Confidence: 0.3, DetectedType: domain.WasteNonEwaste}, nil
	}), Options{})

	d, _ := h.svc.Create(ctx)
	_, err := h.svc.AttachImage(ctx, d.ID, []byte("photo"), "image/png")
	require.NoError(t, err)
	require.NoError(t, h.runJob(t, d.ID), "a negative classification is not a job failure")
	_, err = h.svc.AcquireLocation(ctx, d.ID, fixed(1, 1))
	require.NoError(t, err)

	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateRejected, d.State)

	_, err = h.svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	reports, _ := h.store.ListReports(ctx, ports.ReportFilter{})
	assert.Empty(t, reports)
}

func TestSubmit_MissingLocationHasNoSideEffect(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d := h.verifiedDraft(t)

	_, err := h.svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindValidation, Field: "location"})
	assert.NotErrorIs(t, err, &domain.Error{Kind: domain.KindValidation, Field: "image"})

	after, _ := h.svc.Get(ctx, d.ID)
	assert.Equal(t, d, after)
	reports, _ := h.store.ListReports(ctx, ports.ReportFilter{})
	assert.Empty(t, reports)
	assert.Zero(t, h.refresher.calls.Load())
}

func TestAcquireLocation_RetriesAfterTimeouts(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d := h.verifiedDraft(t)

	var calls int
	locator := ports.LocatorFunc(func(context.Context) (domain.Location, error) {
		calls++
		if calls <= 2 {
			return domain.Location{}, domain.LocationError(domain.LocationTimeout, errors.New("no fix"))
		}
		return domain.Location{Lat: 28.5355, Lng: 77.3910, Address: "Sector 18, Noida"}, nil
	})

	for i := 0; i < 2; i++ {
		failed, err := h.svc.AcquireLocation(ctx, d.ID, locator)
		reason, ok := domain.LocationReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, domain.LocationTimeout, reason)
		require.NotNil(t, failed.LocationFailure)
		assert.Equal(t, workflow.StateVerified, failed.State, "location failures leave verification alone")
	}

	d, err := h.svc.AcquireLocation(ctx, d.ID, locator)
	require.NoError(t, err)
	assert.Nil(t, d.LocationFailure)
	assert.Equal(t, "Sector 18, Noida", d.Location.Address)

	_, err = h.svc.Submit(ctx, d.ID)
	assert.NoError(t, err)
}

func TestAcquireLocation_DistinctReasons(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{LocationTimeout: 20 * time.Millisecond})
	d, _ := h.svc.Create(ctx)

	_, err := h.svc.AcquireLocation(ctx, d.ID, ports.LocatorFunc(func(context.Context) (domain.Location, error) {
		return domain.Location{}, domain.LocationError(domain.LocationPermissionDenied, nil)
	}))
	reason, _ := domain.LocationReasonOf(err)
	assert.Equal(t, domain.LocationPermissionDenied, reason)

	_, err = h.svc.AcquireLocation(ctx, d.ID, ports.LocatorFunc(func(ctx context.Context) (domain.Location, error) {
		<-ctx.Done()
		return domain.Location{}, ctx.Err()
	}))
	reason, _ = domain.LocationReasonOf(err)
	assert.Equal(t, domain.LocationTimeout, reason)

	_, err = h.svc.AcquireLocation(ctx, d.ID, ports.LocatorFunc(func(context.Context) (domain.Location, error) {
		return domain.Location{}, errors.New("gps hardware fault")
	}))
	reason, _ = domain.LocationReasonOf(err)
	assert.Equal(t, domain.LocationUnavailable, reason)

	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateCapturing, d.State)
	assert.Equal(t, domain.LocationUnavailable, d.LocationFailure.Reason)
}

func TestProcess_VerifierTimeout(t *testing.T) {
	ctx := context.Background()
	slow := verifierFunc(func(ctx context.Context, _ []byte, _ string) (workflow.Classification, error) {
		<-ctx.Done()
		return workflow.Classification{}, ctx.Err()
	})
	h := newHarness(slow, Options{VerifyTimeout: 20 * time.Millisecond})
	d, _ := h.svc.Create(ctx)
	_, err := h.svc.AttachImage(ctx, d.ID, []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	err = h.runJob(t, d.ID)
	assert.ErrorIs(t, err, domain.ErrVerificationTransport)

	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateFailed, d.State)
	assert.Nil(t, d.Verification)
	assert.Contains(t, d.VerificationError, "timed out")

	d, err = h.svc.RetryVerification(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateVerifying, d.State)
	assert.Equal(t, 2, d.Attempt)
	_, err = h.store.StartJobForDraft(ctx, d.ID)
	assert.NoError(t, err, "retry queues a new job")
}

// cancelAwareDrafts fails like a database driver once the caller's context
// is done.
type cancelAwareDrafts struct{ *memory.Store }

func (c cancelAwareDrafts) GetDraft(ctx context.Context, id string) (workflow.Draft, error) {
	if err := ctx.Err(); err != nil {
		return workflow.Draft{}, err
	}
	return c.Store.GetDraft(ctx, id)
}

func (c cancelAwareDrafts) SaveDraft(ctx context.Context, d workflow.Draft) (workflow.Draft, error) {
	if err := ctx.Err(); err != nil {
		return workflow.Draft{}, err
	}
	return c.Store.SaveDraft(ctx, d)
}

func TestProcess_CallerDeadlineStillRecordsFailure(t *testing.T) {
	blocking := verifierFunc(func(ctx context.Context, _ []byte, _ string) (workflow.Classification, error) {
		<-ctx.Done()
		return workflow.Classification{}, ctx.Err()
	})
	h := newHarness(blocking, Options{VerifyTimeout: time.Minute})
	h.svc.Drafts = cancelAwareDrafts{h.store}
	ctx := context.Background()

	d, err := h.svc.Create(ctx)
	require.NoError(t, err)
	_, err = h.svc.AttachImage(ctx, d.ID, []byte("photo"), "image/jpeg")
	require.NoError(t, err)
	job, err := h.store.StartJobForDraft(ctx, d.ID)
	require.NoError(t, err)

	// the waiting request gives up long before the verifier timeout
	wctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err = h.svc.Process(wctx, job)
	assert.ErrorIs(t, err, domain.ErrVerificationTransport)

	d, err = h.store.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateFailed, d.State)
	assert.Contains(t, d.VerificationError, "stopped before the verifier answered")
	assert.NotContains(t, d.VerificationError, "1m0s", "the verifier timeout did not fire")

	d, err = h.svc.RetryVerification(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateVerifying, d.State)
}

func TestProcess_TransportErrorIsNotRejection(t *testing.T) {
	ctx := context.Background()
	h := newHarness(verifierFunc(func(context.Context, []byte, string) (workflow.Classification, error) {
		return workflow.Classification{}, errors.New("503 from model server")
	}), Options{})
	d, _ := h.svc.Create(ctx)
	_, _ = h.svc.AttachImage(ctx, d.ID, []byte("photo"), "image/jpeg")

	err := h.runJob(t, d.ID)
	assert.ErrorIs(t, err, domain.ErrVerificationTransport)
	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateFailed, d.State)

	_, err = h.svc.AcquireLocation(ctx, d.ID, fixed(1, 1))
	require.NoError(t, err)
	_, err = h.svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrVerificationTransport)
	assert.NotErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestAttachImage_CancelsInflightAndDiscardsStaleResult(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	v := verifierFunc(func(ctx context.Context, image []byte, _ string) (workflow.Classification, error) {
		if string(image) == "slow" {
			close(started)
			<-ctx.Done()
			return workflow.Classification{}, ctx.Err()
		}
		return workflow.Classification{IsEwaste: true, Confidence: 0.9, DetectedType: domain.WasteBattery}, nil
	})
	h := newHarness(v, Options{VerifyTimeout: 5 * time.Second})
	d, _ := h.svc.Create(ctx)
	_, err := h.svc.AttachImage(ctx, d.ID, []byte("slow"), "image/jpeg")
	require.NoError(t, err)
	job, err := h.store.StartJobForDraft(ctx, d.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- h.svc.Process(ctx, job) }()
	<-started

	d, err = h.svc.AttachImage(ctx, d.ID, []byte("fast"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Attempt)

	select {
	case err := <-done:
		assert.NoError(t, err, "the superseded attempt is discarded quietly")
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight verification was not cancelled")
	}
	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateVerifying, d.State)

	require.NoError(t, h.runJob(t, d.ID))
	d, _ = h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateVerified, d.State)
	assert.Equal(t, domain.DigestOf([]byte("fast")), d.Verification.ImageDigest)
}

func TestAttachImage_Validation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d, _ := h.svc.Create(ctx)

	_, err := h.svc.AttachImage(ctx, d.ID, nil, "image/jpeg")
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindValidation, Field: "image"})
	_, err = h.svc.AttachImage(ctx, d.ID, []byte("plain text"), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = h.svc.AttachImage(ctx, "missing", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, _ := h.svc.Get(ctx, d.ID)
	assert.Equal(t, workflow.StateCapturing, after.State)
}

func TestOverrideWasteType(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d := h.verifiedDraft(t)

	d, err := h.svc.OverrideWasteType(ctx, d.ID, domain.WasteTVAppliance)
	require.NoError(t, err)
	_, _ = h.svc.AcquireLocation(ctx, d.ID, fixed(1, 1))
	report, err := h.svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WasteTVAppliance, report.WasteType)
	assert.Equal(t, domain.WastePCB, report.VerificationResult.DetectedType)
}

func TestSubmit_ConcurrentCallsCreateOneReport(t *testing.T) {
	ctx := context.Background()
	h := newHarness(accepting, Options{})
	d := h.verifiedDraft(t)
	_, _ = h.svc.AcquireLocation(ctx, d.ID, fixed(1, 1))

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.svc.Submit(ctx, d.ID); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, ok.Load())
	reports, _ := h.store.ListReports(ctx, ports.ReportFilter{})
	assert.Len(t, reports, 1)
}
