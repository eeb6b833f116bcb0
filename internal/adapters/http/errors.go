package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.uber.org/multierr"

	api "ewastewatch/internal/api"
	"ewastewatch/internal/domain"
)

var statusByKind = map[domain.Kind]int{
	domain.KindValidation:            http.StatusUnprocessableEntity,
	domain.KindVerificationFailed:    http.StatusUnprocessableEntity,
	domain.KindVerificationTransport: http.StatusBadGateway,
	domain.KindLocationUnavailable:   http.StatusUnprocessableEntity,
	domain.KindSubmissionRejected:    http.StatusConflict,
	domain.KindInvalidTransition:     http.StatusConflict,
	domain.KindNotFound:              http.StatusNotFound,
	domain.KindConflict:              http.StatusConflict,
}

// errorResponse maps err to a status and body. Combined precondition errors
// take the status of the first violation and list every violation in
// reasons.
func errorResponse(err error) (int, api.Error) {
	errs := multierr.Errors(err)
	var first *domain.Error
	if len(errs) == 0 || !errors.As(errs[0], &first) {
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, api.Error{Code: "timeout", Message: "request timed out"}
		}
		return http.StatusInternalServerError, api.Error{Code: "internal", Message: "internal server error"}
	}
	status, ok := statusByKind[first.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	body := api.Error{Code: string(first.Kind), Message: first.Message}
	if first.Code != "" {
		body.Code = first.Code
	}
	if body.Message == "" {
		body.Message = first.Error()
	}
	if first.Field != "" {
		body.Field = ptr(first.Field)
	}
	if len(errs) > 1 {
		reasons := make([]string, 0, len(errs))
		for _, e := range errs {
			reasons = append(reasons, e.Error())
		}
		body.Reasons = &reasons
	}
	return status, body
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, api.Error{Code: "bad_request", Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
