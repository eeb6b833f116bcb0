// Package workflow holds the report submission state machine. Every
// transition is a pure function from one Draft value to the next; callers
// persist the result. A transition that returns an error returns the input
// draft unchanged.
package workflow

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"ewastewatch/internal/domain"
)

// State is the AI verification state of a draft. It is deliberately a
// different type from domain.ReportStatus.
type State string

const (
	StateCapturing State = "capturing"
	StateVerifying State = "verifying"
	StateVerified  State = "verified"
	StateRejected  State = "rejected"
	StateFailed    State = "failed"
	StateSubmitted State = "submitted"
)

// LocationFailure records the last failed location acquisition.
type LocationFailure struct {
	Reason domain.LocationReason
	Detail string
	At     time.Time
}

// Classification is what a verifier returns for one image.
type Classification struct {
	IsEwaste     bool
	Confidence   float64
	DetectedType domain.WasteType
}

type Draft struct {
	ID      string
	State   State
	Version int

	Image   *domain.ImageRef
	Attempt int

	Verification      *domain.VerificationResult
	VerificationError string

	Location        *domain.Location
	LocationFailure *LocationFailure

	WasteType           domain.WasteType
	WasteTypeOverridden bool

	ReportID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id string, now time.Time) Draft {
	return Draft{ID: id, State: StateCapturing, CreatedAt: now, UpdatedAt: now}
}

func (d Draft) Submitted() bool { return d.State == StateSubmitted }

func rejectSubmitted(d Draft) error {
	if d.Submitted() {
		return domain.SubmissionRejected("already_submitted", fmt.Sprintf("draft %s was already submitted as report %s", d.ID, d.ReportID))
	}
	return nil
}

// AttachImage replaces the image and starts a new verification attempt. Any
// derived verification state from a previous image is dropped.
func AttachImage(d Draft, img domain.ImageRef, now time.Time) (Draft, error) {
	if err := rejectSubmitted(d); err != nil {
		return d, err
	}
	if img.Ref == "" || img.Digest == "" {
		return d, domain.Validation("image", "an image is required")
	}
	next := d
	next.Image = &img
	next.Attempt = d.Attempt + 1
	next.State = StateVerifying
	next.Verification = nil
	next.VerificationError = ""
	next.WasteType = ""
	next.WasteTypeOverridden = false
	next.UpdatedAt = now
	return next, nil
}

// RetryVerification starts a new attempt for the current image after a
// transport failure. A negative classification needs a new photo instead.
func RetryVerification(d Draft, now time.Time) (Draft, error) {
	if err := rejectSubmitted(d); err != nil {
		return d, err
	}
	switch d.State {
	case StateFailed:
	case StateVerifying:
		return d, domain.SubmissionRejected("verification_in_flight", "a verification is already running for this image")
	case StateRejected:
		return d, domain.VerificationFailed("the image was not recognised as e-waste; take a new photo")
	default:
		return d, domain.SubmissionRejected("nothing_to_verify", fmt.Sprintf("draft in state %s has no failed verification to retry", d.State))
	}
	next := d
	next.Attempt = d.Attempt + 1
	next.State = StateVerifying
	next.VerificationError = ""
	next.UpdatedAt = now
	return next, nil
}

// CheckAttempt reports whether a verifier result for attempt still applies.
func CheckAttempt(d Draft, attempt int) error {
	if d.State != StateVerifying || attempt != d.Attempt {
		return domain.SubmissionRejected("stale_verification", fmt.Sprintf("verification attempt %d is no longer current for draft %s", attempt, d.ID))
	}
	return nil
}

// CompleteVerification applies a classifier result. A confidence outside
// [0,1] violates the verifier contract and is treated as a failed call.
func CompleteVerification(d Draft, attempt int, c Classification, threshold float64, now time.Time) (Draft, error) {
	if err := CheckAttempt(d, attempt); err != nil {
		return d, err
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return FailVerification(d, attempt, fmt.Errorf("verifier returned confidence %v outside [0,1]", c.Confidence), now)
	}
	next := d
	next.Verification = &domain.VerificationResult{
		IsEwaste:     c.IsEwaste,
		Confidence:   c.Confidence,
		DetectedType: c.DetectedType,
		Timestamp:    now,
		ImageDigest:  d.Image.Digest,
	}
	next.UpdatedAt = now
	if c.IsEwaste && c.Confidence >= threshold && c.DetectedType.IsEwaste() {
		next.State = StateVerified
		next.WasteType = c.DetectedType
		return next, nil
	}
	next.State = StateRejected
	switch {
	case !c.IsEwaste || !c.DetectedType.IsEwaste():
		next.VerificationError = "no e-waste detected in the image"
	default:
		next.VerificationError = fmt.Sprintf("confidence %.2f is below the acceptance threshold %.2f", c.Confidence, threshold)
	}
	return next, nil
}

// FailVerification records a verifier call that did not produce a result.
func FailVerification(d Draft, attempt int, cause error, now time.Time) (Draft, error) {
	if err := CheckAttempt(d, attempt); err != nil {
		return d, err
	}
	next := d
	next.State = StateFailed
	next.Verification = nil
	next.VerificationError = cause.Error()
	next.UpdatedAt = now
	return next, nil
}

// SetLocation stores a position fix. It never touches the verification state
// and clears any earlier location failure.
func SetLocation(d Draft, loc domain.Location, now time.Time) (Draft, error) {
	if err := rejectSubmitted(d); err != nil {
		return d, err
	}
	if err := domain.ValidateCoordinates(loc.Lat, loc.Lng); err != nil {
		return d, err
	}
	if loc.Address == "" {
		loc.Address = domain.CoordinateLabel(loc.Lat, loc.Lng)
	}
	next := d
	next.Location = &loc
	next.LocationFailure = nil
	next.UpdatedAt = now
	return next, nil
}

// FailLocation records a failed acquisition. A previously acquired location
// is kept.
func FailLocation(d Draft, reason domain.LocationReason, detail string, now time.Time) (Draft, error) {
	if err := rejectSubmitted(d); err != nil {
		return d, err
	}
	if !reason.Valid() {
		reason = domain.LocationUnavailable
	}
	next := d
	next.LocationFailure = &LocationFailure{Reason: reason, Detail: detail, At: now}
	next.UpdatedAt = now
	return next, nil
}

// OverrideWasteType lets the user correct the detected type after a
// successful verification.
func OverrideWasteType(d Draft, t domain.WasteType, now time.Time) (Draft, error) {
	if err := rejectSubmitted(d); err != nil {
		return d, err
	}
	if d.State != StateVerified {
		return d, domain.SubmissionRejected("not_verified", "the waste type can only be changed after the image is verified")
	}
	if !t.IsEwaste() {
		return d, domain.Validation("wasteType", fmt.Sprintf("%q is not an e-waste type", t))
	}
	next := d
	next.WasteType = t
	next.WasteTypeOverridden = d.Verification == nil || t != d.Verification.DetectedType
	next.UpdatedAt = now
	return next, nil
}

// CheckSubmittable evaluates every submission precondition and returns all
// violations combined.
func CheckSubmittable(d Draft) error {
	if err := rejectSubmitted(d); err != nil {
		return err
	}
	var err error
	if d.Image == nil {
		err = multierr.Append(err, domain.Validation("image", "an image is required"))
	}
	if d.Location == nil {
		msg := "a location is required"
		if d.LocationFailure != nil {
			msg = fmt.Sprintf("a location is required (last attempt failed: %s)", d.LocationFailure.Reason)
		}
		err = multierr.Append(err, domain.Validation("location", msg))
	}
	switch d.State {
	case StateVerified:
		if d.Verification == nil || d.Image == nil || d.Verification.ImageDigest != d.Image.Digest {
			err = multierr.Append(err, domain.SubmissionRejected("stale_verification", "the verification result does not belong to the current image"))
		}
	case StateVerifying:
		err = multierr.Append(err, domain.SubmissionRejected("verification_in_flight", "image verification is still running"))
	case StateRejected:
		err = multierr.Append(err, domain.VerificationFailed(d.VerificationError))
	case StateFailed:
		err = multierr.Append(err, domain.VerificationTransport(fmt.Errorf("%s", d.VerificationError)))
	case StateCapturing:
		// the missing image is already reported
	}
	return err
}

// Submit validates the draft and builds the report it becomes. The returned
// draft is marked submitted.
func Submit(d Draft, reportID string, now time.Time) (Draft, domain.Report, error) {
	if err := CheckSubmittable(d); err != nil {
		return d, domain.Report{}, err
	}
	v := *d.Verification
	report := domain.Report{
		ID:                 reportID,
		Image:              *d.Image,
		Location:           *d.Location,
		WasteType:          d.WasteType,
		Confidence:         v.Confidence,
		Status:             domain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
		VerificationResult: &v,
	}
	next := d
	next.State = StateSubmitted
	next.ReportID = reportID
	next.UpdatedAt = now
	return next, report, nil
}
