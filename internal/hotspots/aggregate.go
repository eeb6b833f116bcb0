// Package hotspots turns a set of reports into severity-ranked hotspots.
//
// Clustering is grid snap: every report falls into exactly one cell, so the
// result depends only on the set of reports and never on their order.
package hotspots

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"ewastewatch/internal/domain"
)

// Params are the aggregation thresholds. Counts are inclusive lower bounds.
type Params struct {
	RadiusMeters      float64
	HighThreshold     int
	ModerateThreshold int
}

func DefaultParams() Params {
	return Params{RadiusMeters: 500, HighThreshold: 10, ModerateThreshold: 4}
}

func (p Params) Validate() error {
	if p.RadiusMeters <= 0 {
		return fmt.Errorf("hotspot radius must be positive, got %v", p.RadiusMeters)
	}
	if p.ModerateThreshold < 1 {
		return fmt.Errorf("moderate threshold must be at least 1, got %d", p.ModerateThreshold)
	}
	if p.HighThreshold <= p.ModerateThreshold {
		return fmt.Errorf("high threshold (%d) must exceed moderate threshold (%d)", p.HighThreshold, p.ModerateThreshold)
	}
	return nil
}

func (p Params) Severity(count int) domain.Severity {
	switch {
	case count >= p.HighThreshold:
		return domain.SeverityHigh
	case count >= p.ModerateThreshold:
		return domain.SeverityModerate
	default:
		return domain.SeverityLow
	}
}

type cluster struct {
	active  []domain.Report
	cleaned int
}

// Aggregate builds hotspots from reports. Predicted hotspots in prior are
// carried over unchanged when no active report falls into their cell; they
// are never created here.
func Aggregate(reports []domain.Report, prior []domain.Hotspot, p Params) []domain.Hotspot {
	g := newGrid(p.RadiusMeters)

	clusters := make(map[cellKey]*cluster)
	for _, r := range reports {
		if !r.Status.Active() && r.Status != domain.StatusCleaned {
			continue
		}
		k := g.cell(r.Location.Lat, r.Location.Lng)
		c, ok := clusters[k]
		if !ok {
			c = &cluster{}
			clusters[k] = c
		}
		if r.Status == domain.StatusCleaned {
			c.cleaned++
			continue
		}
		c.active = append(c.active, r)
	}

	out := make([]domain.Hotspot, 0, len(clusters))
	for k, c := range clusters {
		if len(c.active) == 0 {
			continue
		}
		out = append(out, observed(k, c, p))
	}

	out = append(out, carryPredicted(g, clusters, prior, p)...)
	Sort(out)
	return out
}

func observed(k cellKey, c *cluster, p Params) domain.Hotspot {
	members := c.active
	sort.Slice(members, func(i, j int) bool { return lessReport(members[i], members[j]) })

	var sumLat, sumLng float64
	last := members[0].CreatedAt
	for _, r := range members {
		sumLat += r.Location.Lat
		sumLng += r.Location.Lng
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
	}
	n := float64(len(members))
	center := domain.Coordinates{Lat: sumLat / n, Lng: sumLng / n}

	radius := p.RadiusMeters
	for _, r := range members {
		if d := distance(center.Lat, center.Lng, r.Location.Lat, r.Location.Lng); d > radius {
			radius = d
		}
	}

	return domain.Hotspot{
		ID:             observedPrefix + k.String(),
		Center:         center,
		RadiusMeters:   math.Ceil(radius),
		Severity:       p.Severity(len(members)),
		ReportCount:    len(members),
		CleanedCount:   c.cleaned,
		LastReportDate: last,
	}
}

// carryPredicted keeps the predictions whose cell has no active report. Their
// ids always carry the predicted prefix so they never collide with a cluster.
func carryPredicted(g grid, clusters map[cellKey]*cluster, prior []domain.Hotspot, p Params) []domain.Hotspot {
	var predicted []domain.Hotspot
	for _, h := range prior {
		if h.IsPredicted {
			predicted = append(predicted, h)
		}
	}
	sort.Slice(predicted, func(i, j int) bool { return lessHotspotID(predicted[i], predicted[j]) })

	var out []domain.Hotspot
	seen := make(map[string]bool)
	for _, h := range predicted {
		k := g.cell(h.Center.Lat, h.Center.Lng)
		if c, ok := clusters[k]; ok && len(c.active) > 0 {
			continue
		}
		switch {
		case h.ID == "":
			h.ID = predictedPrefix + k.String()
		case !strings.HasPrefix(h.ID, predictedPrefix):
			h.ID = predictedPrefix + h.ID
		}
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		h.ReportCount = 0
		h.CleanedCount = 0
		if !h.Severity.Valid() {
			h.Severity = domain.SeverityLow
		}
		if h.RadiusMeters <= 0 {
			h.RadiusMeters = p.RadiusMeters
		}
		out = append(out, h)
	}
	return out
}

// Sort orders hotspots worst first: severity, report count, most recent
// activity, then id.
func Sort(hs []domain.Hotspot) {
	sort.SliceStable(hs, func(i, j int) bool {
		a, b := hs[i], hs[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.ReportCount != b.ReportCount {
			return a.ReportCount > b.ReportCount
		}
		if !a.LastReportDate.Equal(b.LastReportDate) {
			return a.LastReportDate.After(b.LastReportDate)
		}
		return a.ID < b.ID
	})
}

func lessReport(a, b domain.Report) bool {
	if a.Location.Lat != b.Location.Lat {
		return a.Location.Lat < b.Location.Lat
	}
	if a.Location.Lng != b.Location.Lng {
		return a.Location.Lng < b.Location.Lng
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func lessHotspotID(a, b domain.Hotspot) bool {
	if c := strings.Compare(a.ID, b.ID); c != 0 {
		return c < 0
	}
	if a.Center.Lat != b.Center.Lat {
		return a.Center.Lat < b.Center.Lat
	}
	return a.Center.Lng < b.Center.Lng
}
