package hotspots

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"go.uber.org/multierr"

	"ewastewatch/internal/domain"
	agg "ewastewatch/internal/hotspots"
	"ewastewatch/internal/ports"
)

type Service struct {
	reports  ports.ReportRepository
	hotspots ports.HotspotRepository
	events   ports.EventPublisher
	params   agg.Params
	clock    clockwork.Clock

	// requested counts Recompute calls. A run covers every request made
	// before it started reading reports.
	requested atomic.Uint64

	// serialises writers of the hotspot set
	mu    sync.Mutex
	built uint64 // guarded by mu
	last  []domain.Hotspot
}

func New(reports ports.ReportRepository, hotspots ports.HotspotRepository, events ports.EventPublisher, params agg.Params, clock clockwork.Clock) *Service {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{reports: reports, hotspots: hotspots, events: events, params: params, clock: clock}
}

var (
	_ ports.Hotspots         = (*Service)(nil)
	_ ports.HotspotRefresher = (*Service)(nil)
)

func (s *Service) List(ctx context.Context) ([]domain.Hotspot, error) {
	hs, err := s.hotspots.ListHotspots(ctx)
	if err != nil {
		return nil, err
	}
	agg.Sort(hs)
	return hs, nil
}

// Recompute rebuilds the hotspot set from every report, carrying over the
// predicted hotspots of the previous run. Callers queued behind a run that
// started after their request share its result; a run already in flight is
// never joined, since it may have read the reports before the caller's change.
func (s *Service) Recompute(ctx context.Context) ([]domain.Hotspot, error) {
	want := s.requested.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.built >= want {
		return append([]domain.Hotspot(nil), s.last...), nil
	}
	covers := s.requested.Load()
	prior, err := s.hotspots.ListHotspots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hotspots: %w", err)
	}
	return s.rebuild(ctx, predictedOnly(prior), covers)
}

// SetPredicted replaces the external prediction signal and recomputes.
func (s *Service) SetPredicted(ctx context.Context, predicted []domain.Hotspot) ([]domain.Hotspot, error) {
	var errs error
	signal := make([]domain.Hotspot, 0, len(predicted))
	for i, h := range predicted {
		if err := domain.ValidateCoordinates(h.Center.Lat, h.Center.Lng); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("hotspots[%d]: %w", i, err))
			continue
		}
		if h.Severity != "" && !h.Severity.Valid() {
			errs = multierr.Append(errs, domain.Validation(fmt.Sprintf("hotspots[%d].severity", i), fmt.Sprintf("unknown severity %q", h.Severity)))
			continue
		}
		h.IsPredicted = true
		h.ReportCount = 0
		h.CleanedCount = 0
		signal = append(signal, h)
	}
	if errs != nil {
		return nil, errs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild(ctx, signal, s.requested.Load())
}

func (s *Service) rebuild(ctx context.Context, prior []domain.Hotspot, covers uint64) ([]domain.Hotspot, error) {
	reports, err := s.reports.ListReports(ctx, ports.ReportFilter{})
	if err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	hs := agg.Aggregate(reports, prior, s.params)
	if err := s.hotspots.ReplaceHotspots(ctx, hs); err != nil {
		return nil, fmt.Errorf("store hotspots: %w", err)
	}
	s.built, s.last = covers, hs
	log.Printf("hotspots recomputed: %d from %d reports", len(hs), len(reports))
	s.events.Publish(ctx, ports.Event{Type: ports.EventHotspotsUpdated, At: s.clock.Now(), Payload: hs})
	return hs, nil
}

func predictedOnly(hs []domain.Hotspot) []domain.Hotspot {
	out := make([]domain.Hotspot, 0, len(hs))
	for _, h := range hs {
		if h.IsPredicted {
			out = append(out, h)
		}
	}
	return out
}
