package ports

import (
	"context"
	"time"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/workflow"
)

// Submissions drives a draft from capture to a submitted report.
type Submissions interface {
	Create(ctx context.Context) (workflow.Draft, error)
	Get(ctx context.Context, draftID string) (workflow.Draft, error)
	AttachImage(ctx context.Context, draftID string, data []byte, contentType string) (workflow.Draft, error)
	RetryVerification(ctx context.Context, draftID string) (workflow.Draft, error)
	AcquireLocation(ctx context.Context, draftID string, locator Locator) (workflow.Draft, error)
	OverrideWasteType(ctx context.Context, draftID string, t domain.WasteType) (workflow.Draft, error)
	Submit(ctx context.Context, draftID string) (domain.Report, error)
}

// Reports exposes submitted reports and their administrative transitions.
type Reports interface {
	List(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	Get(ctx context.Context, reportID string) (domain.Report, error)
	SetStatus(ctx context.Context, reportID string, to domain.ReportStatus) (domain.Report, error)
}

// Hotspots serves the derived hotspot view.
type Hotspots interface {
	List(ctx context.Context) ([]domain.Hotspot, error)
	Recompute(ctx context.Context) ([]domain.Hotspot, error)
	SetPredicted(ctx context.Context, predicted []domain.Hotspot) ([]domain.Hotspot, error)
}

// Dashboard builds read-only snapshots for dashboards.
type Dashboard interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// HotspotRefresher is notified when the report set changes materially.
type HotspotRefresher interface {
	Recompute(ctx context.Context) ([]domain.Hotspot, error)
}

// Verifier classifies an image. A returned error means the call itself
// failed; a negative classification is a successful call.
type Verifier interface {
	Verify(ctx context.Context, image []byte, contentType string) (workflow.Classification, error)
}

// Locator supplies the current position. Failures should be built with
// domain.LocationError so the reason survives.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Location, error)
}

type LocatorFunc func(ctx context.Context) (domain.Location, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (domain.Location, error) { return f(ctx) }

const (
	EventHotspotsUpdated = "hotspots.updated"
	EventReportSubmitted = "report.submitted"
	EventReportStatus    = "report.status_changed"
)

type Event struct {
	Type    string
	At      time.Time
	Payload any
}

// EventPublisher fans events out to live dashboards. Publishing never blocks
// the caller on slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
