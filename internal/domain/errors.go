package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation            Kind = "validation"
	KindVerificationFailed    Kind = "verification_failed"
	KindVerificationTransport Kind = "verification_transport"
	KindLocationUnavailable   Kind = "location_unavailable"
	KindSubmissionRejected    Kind = "submission_rejected"
	KindInvalidTransition     Kind = "invalid_transition"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
)

// Error is the single error type surfaced at the workflow boundary. Field and
// Code are optional refinements: Field names the offending input, Code is a
// machine readable sub-reason.
type Error struct {
	Kind    Kind
	Field   string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		b.WriteString(" [" + e.Field + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, and on Field/Code when the target sets them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Field != "" && t.Field != e.Field {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return true
}

var (
	ErrValidation            = &Error{Kind: KindValidation}
	ErrVerificationFailed    = &Error{Kind: KindVerificationFailed}
	ErrVerificationTransport = &Error{Kind: KindVerificationTransport}
	ErrLocationUnavailable   = &Error{Kind: KindLocationUnavailable}
	ErrSubmissionRejected    = &Error{Kind: KindSubmissionRejected}
	ErrInvalidTransition     = &Error{Kind: KindInvalidTransition}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
)

type LocationReason string

const (
	LocationPermissionDenied LocationReason = "permission_denied"
	LocationUnavailable      LocationReason = "unavailable"
	LocationTimeout          LocationReason = "timeout"
)

func (r LocationReason) Valid() bool {
	return r == LocationPermissionDenied || r == LocationUnavailable || r == LocationTimeout
}

var locationMessages = map[LocationReason]string{
	LocationPermissionDenied: "location permission denied; enable location access and try again",
	LocationUnavailable:      "position unavailable; check that GPS is enabled",
	LocationTimeout:          "timed out waiting for a position fix; try again",
}

// Message is the user facing explanation of the reason.
func (r LocationReason) Message() string {
	if m, ok := locationMessages[r]; ok {
		return m
	}
	return locationMessages[LocationUnavailable]
}

func Validation(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

func VerificationFailed(msg string) error {
	return &Error{Kind: KindVerificationFailed, Field: "image", Message: msg}
}

func VerificationTransport(err error) error {
	return &Error{Kind: KindVerificationTransport, Field: "image", Message: "image verification did not complete", Err: err}
}

// LocationError builds a location_unavailable error whose Code is the reason.
func LocationError(reason LocationReason, err error) error {
	if !reason.Valid() {
		reason = LocationUnavailable
	}
	return &Error{Kind: KindLocationUnavailable, Field: "location", Code: string(reason), Message: locationMessages[reason], Err: err}
}

func SubmissionRejected(code, msg string) error {
	return &Error{Kind: KindSubmissionRejected, Code: code, Message: msg}
}

func NotFound(what, id string) error {
	return &Error{Kind: KindNotFound, Field: what, Message: fmt.Sprintf("%s %s not found", what, id)}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// LocationReasonOf extracts the reason from a location_unavailable error.
func LocationReasonOf(err error) (LocationReason, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindLocationUnavailable {
		return LocationReason(e.Code), true
	}
	return "", false
}

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
