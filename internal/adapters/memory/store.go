// Package memory implements every repository port in process. It backs
// development runs without DATABASE_URL and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

// defaultMaxFinishedJobs caps the finished job records kept for inspection.
const defaultMaxFinishedJobs = 1000

type jobRecord struct {
	job       ports.VerificationJob
	status    string // queued|running|completed|failed|superseded
	reason    string
	seq       int
	startedAt time.Time
}

func (j *jobRecord) finished() bool {
	return j.status == "completed" || j.status == "failed" || j.status == "superseded"
}

type Store struct {
	mu       sync.Mutex
	reports  map[string]domain.Report
	drafts   map[string]workflow.Draft
	hotspots []domain.Hotspot
	images   map[string][]byte
	jobs     []*jobRecord
	seq      int

	clock           clockwork.Clock
	maxFinishedJobs int
}

func New() *Store { return NewWithClock(clockwork.NewRealClock()) }

// NewWithClock uses clock to age running verification jobs.
func NewWithClock(clock clockwork.Clock) *Store {
	return &Store{
		reports:         make(map[string]domain.Report),
		drafts:          make(map[string]workflow.Draft),
		images:          make(map[string][]byte),
		clock:           clock,
		maxFinishedJobs: defaultMaxFinishedJobs,
	}
}

var (
	_ ports.ReportRepository  = (*Store)(nil)
	_ ports.DraftRepository   = (*Store)(nil)
	_ ports.HotspotRepository = (*Store)(nil)
	_ ports.ImageStore        = (*Store)(nil)
	_ ports.JobRepository     = (*Store)(nil)
)

// Reports

func (s *Store) ListReports(_ context.Context, f ports.ReportFilter) ([]domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, cloneReport(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) GetReport(_ context.Context, id string) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return domain.Report{}, domain.NotFound("report", id)
	}
	return cloneReport(r), nil
}

func (s *Store) UpdateReportStatus(_ context.Context, id string, from, to domain.ReportStatus, at time.Time) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return domain.Report{}, domain.NotFound("report", id)
	}
	if r.Status != from {
		return domain.Report{}, domain.Conflict(fmt.Sprintf("report %s is %s, expected %s", id, r.Status, from))
	}
	r.Status = to
	r.UpdatedAt = at
	s.reports[id] = r
	return cloneReport(r), nil
}

// Seed inserts reports directly, bypassing the draft workflow. Used for
// fixtures.
func (s *Store) Seed(reports ...domain.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reports {
		s.reports[r.ID] = cloneReport(r)
	}
}

// Drafts

func (s *Store) CreateDraft(_ context.Context, d workflow.Draft) (workflow.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.drafts[d.ID]; exists {
		return workflow.Draft{}, domain.Conflict(fmt.Sprintf("draft %s already exists", d.ID))
	}
	d.Version = 1
	s.drafts[d.ID] = cloneDraft(d)
	return cloneDraft(d), nil
}

func (s *Store) GetDraft(_ context.Context, id string) (workflow.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return workflow.Draft{}, domain.NotFound("draft", id)
	}
	return cloneDraft(d), nil
}

func (s *Store) SaveDraft(_ context.Context, d workflow.Draft) (workflow.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkVersion(d); err != nil {
		return workflow.Draft{}, err
	}
	d.Version++
	s.drafts[d.ID] = cloneDraft(d)
	return cloneDraft(d), nil
}

func (s *Store) SubmitDraft(_ context.Context, d workflow.Draft, r domain.Report) (workflow.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkVersion(d); err != nil {
		return workflow.Draft{}, err
	}
	if _, exists := s.reports[r.ID]; exists {
		return workflow.Draft{}, domain.Conflict(fmt.Sprintf("report %s already exists", r.ID))
	}
	d.Version++
	s.drafts[d.ID] = cloneDraft(d)
	s.reports[r.ID] = cloneReport(r)
	return cloneDraft(d), nil
}

func (s *Store) checkVersion(d workflow.Draft) error {
	cur, ok := s.drafts[d.ID]
	if !ok {
		return domain.NotFound("draft", d.ID)
	}
	if cur.Version != d.Version {
		return domain.Conflict(fmt.Sprintf("draft %s was modified concurrently", d.ID))
	}
	return nil
}

// Hotspots

func (s *Store) ListHotspots(context.Context) ([]domain.Hotspot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Hotspot{}, s.hotspots...), nil
}

func (s *Store) ReplaceHotspots(_ context.Context, hs []domain.Hotspot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotspots = append([]domain.Hotspot{}, hs...)
	return nil
}

// Images

func (s *Store) PutImage(_ context.Context, data []byte, contentType string) (domain.ImageRef, error) {
	if len(data) == 0 {
		return domain.ImageRef{}, domain.Validation("image", "image is empty")
	}
	digest := domain.DigestOf(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[digest] = append([]byte(nil), data...)
	return domain.ImageRef{Ref: "mem://" + digest, Digest: digest, ContentType: contentType, Size: len(data)}, nil
}

func (s *Store) GetImage(_ context.Context, ref domain.ImageRef) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.images[ref.Digest]
	if !ok {
		return nil, domain.NotFound("image", ref.Ref)
	}
	return append([]byte(nil), data...), nil
}

// Verification jobs

func (s *Store) EnqueueVerification(_ context.Context, draftID string, attempt int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.job.DraftID == draftID && j.status == "queued" {
			j.status = "superseded"
		}
	}
	s.seq++
	rec := &jobRecord{job: ports.VerificationJob{ID: uuid.NewString(), DraftID: draftID, Attempt: attempt}, status: "queued", seq: s.seq}
	s.jobs = append(s.jobs, rec)
	s.pruneJobsLocked()
	return rec.job.ID, nil
}

func (s *Store) ClaimNext(context.Context) (ports.VerificationJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.status == "queued" {
			j.status = "running"
			j.startedAt = s.clock.Now()
			return j.job, true, nil
		}
	}
	return ports.VerificationJob{}, false, nil
}

func (s *Store) MarkCompleted(_ context.Context, jobID string) error {
	return s.setJobStatus(jobID, "completed", "")
}

func (s *Store) MarkFailed(_ context.Context, jobID string, reason string) error {
	return s.setJobStatus(jobID, "failed", reason)
}

func (s *Store) StartJobForDraft(_ context.Context, draftID string) (ports.VerificationJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.job.DraftID == draftID && j.status == "queued" {
			j.status = "running"
			j.startedAt = s.clock.Now()
			return j.job, nil
		}
	}
	return ports.VerificationJob{}, domain.NotFound("verification job", draftID)
}

// JobStatus reports the state of a job; empty when unknown.
func (s *Store) JobStatus(jobID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.job.ID == jobID {
			return j.status
		}
	}
	return ""
}

func (s *Store) setJobStatus(jobID, status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.job.ID == jobID {
			j.status = status
			j.reason = reason
			s.pruneJobsLocked()
			return nil
		}
	}
	return domain.NotFound("verification job", jobID)
}

func (s *Store) RequeueStale(_ context.Context, olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newest := make(map[string]int)
	for _, j := range s.jobs {
		if j.job.Attempt > newest[j.job.DraftID] {
			newest[j.job.DraftID] = j.job.Attempt
		}
	}
	requeued := 0
	for _, j := range s.jobs {
		if j.status != "running" || s.clock.Since(j.startedAt) <= olderThan {
			continue
		}
		if j.job.Attempt < newest[j.job.DraftID] {
			j.status = "superseded"
			continue
		}
		j.status = "queued"
		j.startedAt = time.Time{}
		requeued++
	}
	s.pruneJobsLocked()
	return requeued, nil
}

// pruneJobsLocked drops the oldest finished records beyond the cap. Queued
// and running jobs are never dropped.
func (s *Store) pruneJobsLocked() {
	excess := -s.maxFinishedJobs
	for _, j := range s.jobs {
		if j.finished() {
			excess++
		}
	}
	if excess <= 0 {
		return
	}
	kept := s.jobs[:0]
	for _, j := range s.jobs {
		if excess > 0 && j.finished() {
			excess--
			continue
		}
		kept = append(kept, j)
	}
	for i := len(kept); i < len(s.jobs); i++ {
		s.jobs[i] = nil
	}
	s.jobs = kept
}

func cloneReport(r domain.Report) domain.Report {
	if r.VerificationResult != nil {
		v := *r.VerificationResult
		r.VerificationResult = &v
	}
	return r
}

func cloneDraft(d workflow.Draft) workflow.Draft {
	if d.Image != nil {
		img := *d.Image
		d.Image = &img
	}
	if d.Verification != nil {
		v := *d.Verification
		d.Verification = &v
	}
	if d.Location != nil {
		l := *d.Location
		d.Location = &l
	}
	if d.LocationFailure != nil {
		f := *d.LocationFailure
		d.LocationFailure = &f
	}
	return d
}
