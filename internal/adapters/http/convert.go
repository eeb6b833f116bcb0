package httpadapter

import (
	"encoding/json"

	openapi_types "github.com/oapi-codegen/runtime/types"

	api "ewastewatch/internal/api"
	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func toLocation(l domain.Location) api.Location {
	return api.Location{Lat: l.Lat, Lng: l.Lng, Address: l.Address}
}

func toVerification(v *domain.VerificationResult) *api.VerificationResult {
	if v == nil {
		return nil
	}
	return &api.VerificationResult{
		IsEwaste:     v.IsEwaste,
		Confidence:   v.Confidence,
		DetectedType: api.WasteType(v.DetectedType),
		Timestamp:    v.Timestamp,
	}
}

func toDraft(d workflow.Draft) api.Draft {
	out := api.Draft{
		Id:           d.ID,
		State:        api.DraftState(d.State),
		Version:      d.Version,
		Attempt:      d.Attempt,
		Verification: toVerification(d.Verification),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Image != nil {
		out.Image = &api.ImageInfo{Url: d.Image.Ref, Digest: d.Image.Digest, ContentType: d.Image.ContentType, Size: d.Image.Size}
	}
	if d.VerificationError != "" {
		out.VerificationError = ptr(d.VerificationError)
	}
	if d.Location != nil {
		out.Location = ptr(toLocation(*d.Location))
	}
	if f := d.LocationFailure; f != nil {
		out.LocationFailure = &api.LocationFailure{Reason: api.LocationErrorReason(f.Reason), Message: f.Reason.Message(), At: f.At}
	}
	if d.WasteType != "" {
		out.WasteType = ptr(api.WasteType(d.WasteType))
		out.WasteTypeLabel = ptr(d.WasteType.Label())
	}
	if d.ReportID != "" {
		out.ReportId = ptr(d.ReportID)
	}
	return out
}

func toReport(r domain.Report) api.Report {
	return api.Report{
		Id:             r.ID,
		ImageUrl:       r.Image.Ref,
		Location:       toLocation(r.Location),
		WasteType:      api.WasteType(r.WasteType),
		WasteTypeLabel: r.WasteType.Label(),
		Confidence:     r.Confidence,
		Status:         api.ReportStatus(r.Status),
		Verification:   toVerification(r.VerificationResult),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toReports(rs []domain.Report) []api.Report {
	out := make([]api.Report, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReport(r))
	}
	return out
}

func toHotspot(h domain.Hotspot) api.Hotspot {
	out := api.Hotspot{
		Id:           h.ID,
		Center:       api.Coordinates{Lat: h.Center.Lat, Lng: h.Center.Lng},
		Radius:       h.RadiusMeters,
		Severity:     api.Severity(h.Severity),
		ReportCount:  h.ReportCount,
		CleanedCount: h.CleanedCount,
		IsPredicted:  h.IsPredicted,
	}
	if !h.LastReportDate.IsZero() {
		out.LastReportDate = ptr(h.LastReportDate)
	}
	return out
}

func toHotspots(hs []domain.Hotspot) []api.Hotspot {
	out := make([]api.Hotspot, 0, len(hs))
	for _, h := range hs {
		out = append(out, toHotspot(h))
	}
	return out
}

func fromPredicted(ps []api.PredictedHotspot) []domain.Hotspot {
	out := make([]domain.Hotspot, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.Hotspot{
			ID:           deref(p.Id),
			Center:       domain.Coordinates{Lat: p.Center.Lat, Lng: p.Center.Lng},
			RadiusMeters: deref(p.Radius),
			Severity:     domain.Severity(deref(p.Severity)),
			IsPredicted:  true,
		})
	}
	return out
}

func toDashboard(s domain.Snapshot) api.Dashboard {
	st := s.Stats
	out := api.Dashboard{
		Stats: api.DashboardStats{
			TotalReports:         st.TotalReports,
			VerifiedReports:      st.VerifiedReports,
			RejectedReports:      st.RejectedReports,
			PendingReports:       st.PendingReports,
			CleanedLocations:     st.CleanedLocations,
			ActiveHotspots:       st.ActiveHotspots,
			PredictedHotspots:    st.PredictedHotspots,
			HighSeverityHotspots: st.HighSeverityHotspots,
		},
		Distribution:  make([]api.WasteTypeCount, 0, len(s.Distribution)),
		WeeklyTrend:   make([]api.DayTrend, 0, len(s.WeeklyTrend)),
		RecentReports: toReports(s.RecentReports),
		Hotspots:      toHotspots(s.Hotspots),
		GeneratedAt:   s.GeneratedAt,
	}
	for _, c := range s.Distribution {
		out.Distribution = append(out.Distribution, api.WasteTypeCount{Type: api.WasteType(c.Type), Label: c.Type.Label(), Count: c.Count})
	}
	for _, d := range s.WeeklyTrend {
		out.WeeklyTrend = append(out.WeeklyTrend, api.DayTrend{Day: d.Day, Date: openapi_types.Date{Time: d.Date}, Reports: d.Reports, Verified: d.Verified})
	}
	return out
}

// EncodeEvent renders workflow events in the API's JSON shapes for the
// dashboard websocket.
func EncodeEvent(ev ports.Event) ([]byte, error) {
	var payload interface{}
	switch p := ev.Payload.(type) {
	case domain.Report:
		payload = toReport(p)
	case []domain.Hotspot:
		payload = toHotspots(p)
	case nil:
	default:
		payload = p
	}
	msg := api.Event{Type: ev.Type, At: ev.At}
	if payload != nil {
		msg.Payload = &payload
	}
	return json.Marshal(msg)
}
