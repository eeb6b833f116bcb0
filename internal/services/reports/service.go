package reports

import (
	"context"
	"log"

	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
)

const maxListLimit = 500

type Service struct {
	reports   ports.ReportRepository
	refresher ports.HotspotRefresher
	events    ports.EventPublisher
	clock     clockwork.Clock
}

func New(reports ports.ReportRepository, refresher ports.HotspotRefresher, events ports.EventPublisher, clock clockwork.Clock) *Service {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{reports: reports, refresher: refresher, events: events, clock: clock}
}

var _ ports.Reports = (*Service)(nil)

func (s *Service) List(ctx context.Context, f ports.ReportFilter) ([]domain.Report, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Validation("status", "unknown report status "+string(f.Status))
	}
	if f.Limit < 0 {
		return nil, domain.Validation("limit", "limit must not be negative")
	}
	if f.Limit == 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.reports.ListReports(ctx, f)
}

func (s *Service) Get(ctx context.Context, reportID string) (domain.Report, error) {
	return s.reports.GetReport(ctx, reportID)
}

// SetStatus moves a report along its lifecycle. The store update is a
// compare-and-swap on the status that was checked, so two admins racing on
// the same report cannot both win.
func (s *Service) SetStatus(ctx context.Context, reportID string, to domain.ReportStatus) (domain.Report, error) {
	cur, err := s.reports.GetReport(ctx, reportID)
	if err != nil {
		return domain.Report{}, err
	}
	if err := domain.CheckTransition(cur.Status, to); err != nil {
		return domain.Report{}, err
	}
	updated, err := s.reports.UpdateReportStatus(ctx, reportID, cur.Status, to, s.clock.Now())
	if err != nil {
		return domain.Report{}, err
	}
	log.Printf("report %s: %s -> %s", reportID, cur.Status, to)

	s.events.Publish(ctx, ports.Event{Type: ports.EventReportStatus, At: updated.UpdatedAt, Payload: updated})
	if s.refresher != nil {
		if _, err := s.refresher.Recompute(ctx); err != nil {
			log.Printf("hotspot refresh after report %s: %v", reportID, err)
		}
	}
	return updated, nil
}
