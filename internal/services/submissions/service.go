package submissions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

const (
	defaultVerifyTimeout   = 10 * time.Second
	defaultLocationTimeout = 10 * time.Second
	maxImageBytes          = 10 << 20

	// settleTimeout bounds the writes that record a verification outcome.
	settleTimeout = 5 * time.Second
)

type Deps struct {
	Drafts    ports.DraftRepository
	Images    ports.ImageStore
	Jobs      ports.JobRepository
	Verifier  ports.Verifier
	Refresher ports.HotspotRefresher
	Events    ports.EventPublisher
}

type Options struct {
	// Threshold is the minimum verifier confidence for acceptance.
	Threshold       float64
	VerifyTimeout   time.Duration
	LocationTimeout time.Duration
	Clock           clockwork.Clock
}

type inflightCall struct {
	attempt int
	cancel  context.CancelFunc
}

type Service struct {
	Deps
	threshold       float64
	verifyTimeout   time.Duration
	locationTimeout time.Duration
	clock           clockwork.Clock

	locks keyedLocks

	mu       sync.Mutex
	inflight map[string]inflightCall
}

func New(deps Deps, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = defaultVerifyTimeout
	}
	if opts.LocationTimeout <= 0 {
		opts.LocationTimeout = defaultLocationTimeout
	}
	if deps.Events == nil {
		deps.Events = ports.NopPublisher{}
	}
	return &Service{
		Deps:            deps,
		threshold:       opts.Threshold,
		verifyTimeout:   opts.VerifyTimeout,
		locationTimeout: opts.LocationTimeout,
		clock:           opts.Clock,
		inflight:        make(map[string]inflightCall),
	}
}

var _ ports.Submissions = (*Service)(nil)

func (s *Service) Create(ctx context.Context) (workflow.Draft, error) {
	return s.Drafts.CreateDraft(ctx, workflow.New(uuid.NewString(), s.clock.Now()))
}

func (s *Service) Get(ctx context.Context, draftID string) (workflow.Draft, error) {
	return s.Drafts.GetDraft(ctx, draftID)
}

// AttachImage stores the photo, resets the draft to a fresh verification
// attempt and queues the verification job. An in-flight verifier call for an
// older attempt is cancelled.
func (s *Service) AttachImage(ctx context.Context, draftID string, data []byte, contentType string) (workflow.Draft, error) {
	contentType, err := checkImage(data, contentType)
	if err != nil {
		return workflow.Draft{}, err
	}
	if _, err := s.Drafts.GetDraft(ctx, draftID); err != nil {
		return workflow.Draft{}, err
	}
	ref, err := s.Images.PutImage(ctx, data, contentType)
	if err != nil {
		return workflow.Draft{}, fmt.Errorf("store image: %w", err)
	}
	d, err := s.mutate(ctx, draftID, func(d workflow.Draft, now time.Time) (workflow.Draft, error) {
		return workflow.AttachImage(d, ref, now)
	})
	if err != nil {
		return d, err
	}
	s.cancelInflight(draftID)
	return s.enqueue(ctx, d)
}

// RetryVerification re-runs verification of the current image after a
// failed call.
func (s *Service) RetryVerification(ctx context.Context, draftID string) (workflow.Draft, error) {
	d, err := s.mutate(ctx, draftID, workflow.RetryVerification)
	if err != nil {
		return d, err
	}
	return s.enqueue(ctx, d)
}

func (s *Service) enqueue(ctx context.Context, d workflow.Draft) (workflow.Draft, error) {
	if _, err := s.Jobs.EnqueueVerification(ctx, d.ID, d.Attempt); err != nil {
		cause := fmt.Errorf("queue verification: %w", err)
		log.Printf("draft %s: %v", d.ID, cause)
		attempt := d.Attempt
		failed, ferr := s.mutate(ctx, d.ID, func(d workflow.Draft, now time.Time) (workflow.Draft, error) {
			return workflow.FailVerification(d, attempt, cause, now)
		})
		if ferr != nil {
			log.Printf("draft %s: could not record queue failure: %v", d.ID, ferr)
		}
		return failed, domain.VerificationTransport(cause)
	}
	return d, nil
}

// Process runs one verification job. It is used by the background workers and
// by inline processing. Results for superseded attempts are discarded.
//
// ctx only bounds the verifier call. The outcome is recorded even after ctx
// is done, so an expired request or a stopping worker leaves the draft failed
// and retryable instead of verifying forever.
func (s *Service) Process(ctx context.Context, job ports.VerificationJob) error {
	sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer scancel()

	d, err := s.Drafts.GetDraft(sctx, job.DraftID)
	if err != nil {
		return err
	}
	if err := workflow.CheckAttempt(d, job.Attempt); err != nil {
		log.Printf("draft %s: skipping job %s: %v", d.ID, job.ID, err)
		return nil
	}

	vctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()
	s.trackInflight(d.ID, job.Attempt, cancel)
	defer s.untrackInflight(d.ID, job.Attempt)

	c, verr := s.classify(vctx, d)
	if verr != nil {
		switch {
		case ctx.Err() != nil:
			verr = fmt.Errorf("verification stopped before the verifier answered: %w", ctx.Err())
		case errors.Is(vctx.Err(), context.DeadlineExceeded):
			verr = fmt.Errorf("verifier timed out after %s", s.verifyTimeout)
		}
	}

	_, err = s.mutate(sctx, d.ID, func(cur workflow.Draft, now time.Time) (workflow.Draft, error) {
		if verr != nil {
			return workflow.FailVerification(cur, job.Attempt, verr, now)
		}
		return workflow.CompleteVerification(cur, job.Attempt, c, s.threshold, now)
	})
	if errors.Is(err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "stale_verification"}) {
		log.Printf("draft %s: discarding result of superseded attempt %d", d.ID, job.Attempt)
		return nil
	}
	if err != nil {
		return err
	}
	if verr != nil {
		return domain.VerificationTransport(verr)
	}
	return nil
}

func (s *Service) classify(ctx context.Context, d workflow.Draft) (workflow.Classification, error) {
	data, err := s.Images.GetImage(ctx, *d.Image)
	if err != nil {
		return workflow.Classification{}, fmt.Errorf("load image: %w", err)
	}
	return s.Verifier.Verify(ctx, data, d.Image.ContentType)
}

// AcquireLocation asks locator for a position. Failures are recorded on the
// draft with their reason and returned as location_unavailable; they never
// touch verification.
func (s *Service) AcquireLocation(ctx context.Context, draftID string, locator ports.Locator) (workflow.Draft, error) {
	d, err := s.Drafts.GetDraft(ctx, draftID)
	if err != nil {
		return workflow.Draft{}, err
	}
	if d.Submitted() {
		return d, domain.SubmissionRejected("already_submitted", "the draft was already submitted")
	}

	lctx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	loc, lerr := locator.CurrentPosition(lctx)
	timedOut := errors.Is(lctx.Err(), context.DeadlineExceeded)
	cancel()

	if lerr == nil {
		return s.mutate(ctx, draftID, func(d workflow.Draft, now time.Time) (workflow.Draft, error) {
			return workflow.SetLocation(d, loc, now)
		})
	}

	reason, ok := domain.LocationReasonOf(lerr)
	switch {
	case ok:
	case timedOut:
		reason = domain.LocationTimeout
	default:
		reason = domain.LocationUnavailable
	}
	d, err = s.mutate(ctx, draftID, func(d workflow.Draft, now time.Time) (workflow.Draft, error) {
		return workflow.FailLocation(d, reason, lerr.Error(), now)
	})
	if err != nil {
		return d, err
	}
	if ok {
		return d, lerr
	}
	return d, domain.LocationError(reason, lerr)
}

func (s *Service) OverrideWasteType(ctx context.Context, draftID string, t domain.WasteType) (workflow.Draft, error) {
	return s.mutate(ctx, draftID, func(d workflow.Draft, now time.Time) (workflow.Draft, error) {
		return workflow.OverrideWasteType(d, t, now)
	})
}

// Submit turns a verified draft into a pending report. Nothing is written
// unless every precondition holds.
func (s *Service) Submit(ctx context.Context, draftID string) (domain.Report, error) {
	unlock := s.locks.Lock(draftID)
	defer unlock()

	d, err := s.Drafts.GetDraft(ctx, draftID)
	if err != nil {
		return domain.Report{}, err
	}
	next, report, err := workflow.Submit(d, uuid.NewString(), s.clock.Now())
	if err != nil {
		return domain.Report{}, err
	}
	if _, err := s.Drafts.SubmitDraft(ctx, next, report); err != nil {
		return domain.Report{}, err
	}
	log.Printf("draft %s submitted as report %s (%s, %.2f)", d.ID, report.ID, report.WasteType, report.Confidence)

	s.Events.Publish(ctx, ports.Event{Type: ports.EventReportSubmitted, At: report.CreatedAt, Payload: report})
	if s.Refresher != nil {
		if _, err := s.Refresher.Recompute(ctx); err != nil {
			log.Printf("hotspot refresh after report %s: %v", report.ID, err)
		}
	}
	return report, nil
}

func (s *Service) mutate(ctx context.Context, draftID string, fn func(workflow.Draft, time.Time) (workflow.Draft, error)) (workflow.Draft, error) {
	unlock := s.locks.Lock(draftID)
	defer unlock()
	d, err := s.Drafts.GetDraft(ctx, draftID)
	if err != nil {
		return workflow.Draft{}, err
	}
	next, err := fn(d, s.clock.Now())
	if err != nil {
		return d, err
	}
	return s.Drafts.SaveDraft(ctx, next)
}

func (s *Service) trackInflight(draftID string, attempt int, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[draftID] = inflightCall{attempt: attempt, cancel: cancel}
}

func (s *Service) untrackInflight(draftID string, attempt int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.inflight[draftID]; ok && c.attempt == attempt {
		delete(s.inflight, draftID)
	}
}

func (s *Service) cancelInflight(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.inflight[draftID]; ok {
		c.cancel()
		delete(s.inflight, draftID)
	}
}

func checkImage(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", domain.Validation("image", "an image is required")
	}
	if len(data) > maxImageBytes {
		return "", domain.Validation("image", fmt.Sprintf("image is larger than %d bytes", maxImageBytes))
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.Validation("image", fmt.Sprintf("unsupported content type %q", contentType))
	}
	return contentType, nil
}
