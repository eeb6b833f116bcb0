package ports

import (
	"context"
	"time"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/workflow"
)

// ReportFilter selects reports newest first. Zero values mean no filter.
type ReportFilter struct {
	Status domain.ReportStatus
	Limit  int
}

// ReportRepository stores submitted reports. Reports are only created through
// DraftRepository.SubmitDraft.
type ReportRepository interface {
	ListReports(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	GetReport(ctx context.Context, reportID string) (domain.Report, error)
	// UpdateReportStatus moves a report from -> to, failing with
	// domain.ErrConflict if the stored status is no longer from.
	UpdateReportStatus(ctx context.Context, reportID string, from, to domain.ReportStatus, at time.Time) (domain.Report, error)
}

// DraftRepository stores drafts with optimistic versioning: SaveDraft fails
// with domain.ErrConflict unless d.Version matches the stored version.
type DraftRepository interface {
	CreateDraft(ctx context.Context, d workflow.Draft) (workflow.Draft, error)
	GetDraft(ctx context.Context, draftID string) (workflow.Draft, error)
	SaveDraft(ctx context.Context, d workflow.Draft) (workflow.Draft, error)
	// SubmitDraft saves the submitted draft and inserts its report atomically.
	SubmitDraft(ctx context.Context, d workflow.Draft, r domain.Report) (workflow.Draft, error)
}

// HotspotRepository keeps the latest aggregation result.
type HotspotRepository interface {
	ListHotspots(ctx context.Context) ([]domain.Hotspot, error)
	ReplaceHotspots(ctx context.Context, hs []domain.Hotspot) error
}

// ImageStore keeps captured photos and hands out opaque references.
type ImageStore interface {
	PutImage(ctx context.Context, data []byte, contentType string) (domain.ImageRef, error)
	GetImage(ctx context.Context, ref domain.ImageRef) ([]byte, error)
}
