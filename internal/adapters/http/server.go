package httpadapter

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/chi/v5"

	api "ewastewatch/internal/api"
	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workers/verifyrunner"
	"ewastewatch/internal/workflow"
)

const (
	defaultWaitTimeout = 30 * time.Second
	waitPollInterval   = 50 * time.Millisecond
)

type Deps struct {
	Submissions ports.Submissions
	Reports     ports.Reports
	Hotspots    ports.Hotspots
	Dashboard   ports.Dashboard
	Jobs        ports.JobRepository
	// Processor runs verification inline for wait=true requests.
	Processor verifyrunner.Processor
}

// Server implements the generated StrictServerInterface.
type Server struct {
	Deps
}

func New(deps Deps) *Server {
	return &Server{Deps: deps}
}

var _ api.StrictServerInterface = (*Server)(nil)

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  badRequest,
		ResponseErrorHandlerFunc: writeError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: badRequest})
	return r
}

func (s *Server) GetHealthz(context.Context, api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) CreateDraft(ctx context.Context, _ api.CreateDraftRequestObject) (api.CreateDraftResponseObject, error) {
	d, err := s.Submissions.Create(ctx)
	if err != nil {
		return nil, err
	}
	return api.CreateDraft201JSONResponse(toDraft(d)), nil
}

func (s *Server) GetDraft(ctx context.Context, req api.GetDraftRequestObject) (api.GetDraftResponseObject, error) {
	d, err := s.Submissions.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetDraft200JSONResponse(toDraft(d)), nil
}

func (s *Server) AttachImage(ctx context.Context, req api.AttachImageRequestObject) (api.AttachImageResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validation("image", "missing body")
	}
	d, err := s.Submissions.AttachImage(ctx, req.Id, req.Body.Data, deref(req.Body.ContentType))
	if err != nil {
		return nil, err
	}
	if !deref(req.Params.Wait) {
		return api.AttachImage202JSONResponse(toDraft(d)), nil
	}
	done, err := s.awaitVerification(ctx, d, req.Params.Timeout)
	if err != nil {
		return nil, err
	}
	return api.AttachImage200JSONResponse(toDraft(done)), nil
}

func (s *Server) RetryVerification(ctx context.Context, req api.RetryVerificationRequestObject) (api.RetryVerificationResponseObject, error) {
	d, err := s.Submissions.RetryVerification(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if !deref(req.Params.Wait) {
		return api.RetryVerification202JSONResponse(toDraft(d)), nil
	}
	done, err := s.awaitVerification(ctx, d, req.Params.Timeout)
	if err != nil {
		return nil, err
	}
	return api.RetryVerification200JSONResponse(toDraft(done)), nil
}

// awaitVerification processes the draft's queued job inline and then waits
// for the attempt to settle. A failed verifier call, including one cut short
// by the wait timeout, is recorded on the draft and returned as a draft.
func (s *Server) awaitVerification(ctx context.Context, d workflow.Draft, timeoutSeconds *int) (workflow.Draft, error) {
	timeout := defaultWaitTimeout
	if t := deref(timeoutSeconds); t > 0 {
		timeout = time.Duration(t) * time.Second
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := verifyrunner.ProcessInline(wctx, s.Jobs, s.Processor, d.ID); err != nil && !errors.Is(err, domain.ErrVerificationTransport) {
		return workflow.Draft{}, err
	}

	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()
	for {
		// ctx, not wctx: an attempt that failed on the wait deadline has been
		// recorded and is returned as such.
		cur, err := s.Submissions.Get(ctx, d.ID)
		if err != nil {
			return workflow.Draft{}, err
		}
		if cur.State != workflow.StateVerifying || cur.Attempt != d.Attempt {
			return cur, nil
		}
		select {
		case <-wctx.Done():
			return workflow.Draft{}, wctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Server) SetLocation(ctx context.Context, req api.SetLocationRequestObject) (api.SetLocationResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validation("location", "missing body")
	}
	locator, err := locatorFor(*req.Body)
	if err != nil {
		return nil, err
	}
	d, err := s.Submissions.AcquireLocation(ctx, req.Id, locator)
	if err != nil {
		return nil, err
	}
	return api.SetLocation200JSONResponse(toDraft(d)), nil
}

// locatorFor replays what the client's geolocation produced: either a fix or
// the reason it could not get one.
func locatorFor(u api.LocationUpdate) (ports.Locator, error) {
	switch {
	case u.Error != nil:
		reason := domain.LocationReason(*u.Error)
		var cause error
		if detail := deref(u.Detail); detail != "" {
			cause = errors.New(detail)
		}
		return ports.LocatorFunc(func(context.Context) (domain.Location, error) {
			return domain.Location{}, domain.LocationError(reason, cause)
		}), nil
	case u.Lat != nil && u.Lng != nil:
		loc := domain.Location{Lat: *u.Lat, Lng: *u.Lng, Address: deref(u.Address)}
		return ports.LocatorFunc(func(context.Context) (domain.Location, error) {
			return loc, nil
		}), nil
	default:
		return nil, domain.Validation("location", "either lat and lng or an error reason is required")
	}
}

func (s *Server) SetWasteType(ctx context.Context, req api.SetWasteTypeRequestObject) (api.SetWasteTypeResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validation("wasteType", "missing body")
	}
	d, err := s.Submissions.OverrideWasteType(ctx, req.Id, domain.WasteType(req.Body.WasteType))
	if err != nil {
		return nil, err
	}
	return api.SetWasteType200JSONResponse(toDraft(d)), nil
}

func (s *Server) SubmitDraft(ctx context.Context, req api.SubmitDraftRequestObject) (api.SubmitDraftResponseObject, error) {
	r, err := s.Submissions.Submit(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.SubmitDraft201JSONResponse(toReport(r)), nil
}

func (s *Server) ListReports(ctx context.Context, req api.ListReportsRequestObject) (api.ListReportsResponseObject, error) {
	f := ports.ReportFilter{
		Status: domain.ReportStatus(deref(req.Params.Status)),
		Limit:  deref(req.Params.Limit),
	}
	rs, err := s.Reports.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return api.ListReports200JSONResponse(toReports(rs)), nil
}

func (s *Server) GetReport(ctx context.Context, req api.GetReportRequestObject) (api.GetReportResponseObject, error) {
	r, err := s.Reports.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return api.GetReport200JSONResponse(toReport(r)), nil
}

func (s *Server) SetReportStatus(ctx context.Context, req api.SetReportStatusRequestObject) (api.SetReportStatusResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validation("status", "missing body")
	}
	r, err := s.Reports.SetStatus(ctx, req.Id, domain.ReportStatus(req.Body.Status))
	if err != nil {
		return nil, err
	}
	return api.SetReportStatus200JSONResponse(toReport(r)), nil
}

func (s *Server) ListHotspots(ctx context.Context, _ api.ListHotspotsRequestObject) (api.ListHotspotsResponseObject, error) {
	hs, err := s.Hotspots.List(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListHotspots200JSONResponse(toHotspots(hs)), nil
}

func (s *Server) SetPredictedHotspots(ctx context.Context, req api.SetPredictedHotspotsRequestObject) (api.SetPredictedHotspotsResponseObject, error) {
	if req.Body == nil {
		return nil, domain.Validation("hotspots", "missing body")
	}
	hs, err := s.Hotspots.SetPredicted(ctx, fromPredicted(req.Body.Hotspots))
	if err != nil {
		return nil, err
	}
	return api.SetPredictedHotspots200JSONResponse(toHotspots(hs)), nil
}

func (s *Server) GetDashboard(ctx context.Context, _ api.GetDashboardRequestObject) (api.GetDashboardResponseObject, error) {
	snap, err := s.Dashboard.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetDashboard200JSONResponse(toDashboard(snap)), nil
}
