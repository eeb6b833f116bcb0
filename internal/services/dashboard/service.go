// Package dashboard builds the read model shown on the public and admin
// dashboards. Nothing here is stored; every figure is derived from the
// current reports and hotspots.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
)

const (
	trendDays          = 7
	defaultRecentLimit = 10
)

type Service struct {
	reports     ports.ReportRepository
	hotspots    ports.Hotspots
	clock       clockwork.Clock
	recentLimit int
}

func New(reports ports.ReportRepository, hotspots ports.Hotspots, clock clockwork.Clock, recentLimit int) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &Service{reports: reports, hotspots: hotspots, clock: clock, recentLimit: recentLimit}
}

var _ ports.Dashboard = (*Service)(nil)

func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	reports, err := s.reports.ListReports(ctx, ports.ReportFilter{})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load reports: %w", err)
	}
	hs, err := s.hotspots.List(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load hotspots: %w", err)
	}
	now := s.clock.Now().UTC()

	recent := reports
	if len(recent) > s.recentLimit {
		recent = recent[:s.recentLimit]
	}
	return domain.Snapshot{
		Stats:         Stats(reports, hs),
		Distribution:  Distribution(reports),
		WeeklyTrend:   WeeklyTrend(reports, now),
		RecentReports: recent,
		Hotspots:      hs,
		GeneratedAt:   now,
	}, nil
}

func Stats(reports []domain.Report, hs []domain.Hotspot) domain.DashboardStats {
	st := domain.DashboardStats{TotalReports: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case domain.StatusVerified:
			st.VerifiedReports++
		case domain.StatusRejected:
			st.RejectedReports++
		case domain.StatusPending:
			st.PendingReports++
		case domain.StatusCleaned:
			st.CleanedLocations++
		}
	}
	for _, h := range hs {
		if h.IsPredicted {
			st.PredictedHotspots++
		} else if h.ReportCount > 0 {
			st.ActiveHotspots++
		}
		if h.Severity == domain.SeverityHigh {
			st.HighSeverityHotspots++
		}
	}
	return st
}

// Distribution counts non-rejected reports per waste type, in enumeration
// order. Types without reports are included with a zero count.
func Distribution(reports []domain.Report) []domain.WasteTypeCount {
	counts := make(map[domain.WasteType]int, len(domain.WasteTypes))
	for _, r := range reports {
		if r.Status == domain.StatusRejected {
			continue
		}
		counts[r.WasteType]++
	}
	out := make([]domain.WasteTypeCount, 0, len(domain.WasteTypes))
	for _, t := range domain.WasteTypes {
		if !t.IsEwaste() {
			continue
		}
		out = append(out, domain.WasteTypeCount{Type: t, Count: counts[t]})
	}
	return out
}

// WeeklyTrend buckets reports by UTC creation day over the seven days ending
// on now's day, oldest first.
func WeeklyTrend(reports []domain.Report, now time.Time) []domain.DayTrend {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(trendDays - 1))
	out := make([]domain.DayTrend, trendDays)
	for i := range out {
		d := first.AddDate(0, 0, i)
		out[i] = domain.DayTrend{Day: d.Weekday().String()[:3], Date: d}
	}
	for _, r := range reports {
		c := r.CreatedAt.UTC()
		day := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
		idx := int(day.Sub(first).Hours() / 24)
		if day.Before(first) || idx >= trendDays {
			continue
		}
		out[idx].Reports++
		if r.Status == domain.StatusVerified || r.Status == domain.StatusCleaned {
			out[idx].Verified++
		}
	}
	return out
}
