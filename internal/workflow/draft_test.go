package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"ewastewatch/internal/domain"
)

const threshold = 0.75

var t0 = time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

func image(digest string) domain.ImageRef {
	return domain.ImageRef{Ref: "mem://" + digest, Digest: digest, ContentType: "image/jpeg", Size: 3}
}

var accept = Classification{IsEwaste: true, Confidence: 0.9, DetectedType: domain.WasteBattery}

func verifiedDraft(t *testing.T) Draft {
	t.Helper()
	d, err := AttachImage(New("d1", t0), image("aaa"), t0)
	require.NoError(t, err)
	d, err = CompleteVerification(d, d.Attempt, accept, threshold, t0)
	require.NoError(t, err)
	require.Equal(t, StateVerified, d.State)
	return d
}

func TestAttachImage_StartsVerification(t *testing.T) {
	d := New("d1", t0)
	assert.Equal(t, StateCapturing, d.State)

	next, err := AttachImage(d, image("aaa"), t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, StateVerifying, next.State)
	assert.Equal(t, 1, next.Attempt)
	assert.Nil(t, next.Verification)
	// input untouched
	assert.Equal(t, StateCapturing, d.State)
	assert.Nil(t, d.Image)
}

func TestAttachImage_RequiresImage(t *testing.T) {
	d := New("d1", t0)
	next, err := AttachImage(d, domain.ImageRef{}, t0)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindValidation, Field: "image"})
	assert.Equal(t, d, next)
}

func TestCompleteVerification_Accepts(t *testing.T) {
	d := verifiedDraft(t)
	require.NotNil(t, d.Verification)
	assert.True(t, d.Verification.IsEwaste)
	assert.Equal(t, "aaa", d.Verification.ImageDigest)
	assert.Equal(t, domain.WasteBattery, d.WasteType)
	assert.False(t, d.WasteTypeOverridden)
}

func TestCompleteVerification_ThresholdInclusive(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	next, err := CompleteVerification(d, 1, Classification{IsEwaste: true, Confidence: 0.75, DetectedType: domain.WastePCB}, threshold, t0)
	require.NoError(t, err)
	assert.Equal(t, StateVerified, next.State)

	next, err = CompleteVerification(d, 1, Classification{IsEwaste: true, Confidence: 0.7499, DetectedType: domain.WastePCB}, threshold, t0)
	require.NoError(t, err)
	assert.Equal(t, StateRejected, next.State)
	assert.Contains(t, next.VerificationError, "below the acceptance threshold")
}

func TestCompleteVerification_NotEwasteRejectsAndSubmitFails(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	d, _ = SetLocation(d, domain.Location{Lat: 28.6, Lng: 77.2}, t0)

	d, err := CompleteVerification(d, 1, Classification{IsEwaste: false, Confidence: 0.3, DetectedType: domain.WasteNonEwaste}, threshold, t0)
	require.NoError(t, err)
	assert.Equal(t, StateRejected, d.State)
	require.NotNil(t, d.Verification)
	assert.Equal(t, domain.WasteType(""), d.WasteType)

	_, _, err = Submit(d, "r1", t0)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestCompleteVerification_ContractViolationFails(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	next, err := CompleteVerification(d, 1, Classification{IsEwaste: true, Confidence: 1.2, DetectedType: domain.WastePCB}, threshold, t0)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, next.State)
	assert.Nil(t, next.Verification)
	assert.Contains(t, next.VerificationError, "outside [0,1]")
}

func TestCompleteVerification_StaleAttemptDiscarded(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	d2, _ := AttachImage(d, image("bbb"), t0)

	next, err := CompleteVerification(d2, 1, accept, threshold, t0)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "stale_verification"})
	assert.Equal(t, d2, next)

	_, err = FailVerification(d2, 1, errors.New("timeout"), t0)
	assert.Error(t, err)
}

func TestReplacingImageClearsVerification(t *testing.T) {
	d := verifiedDraft(t)
	d, _ = SetLocation(d, domain.Location{Lat: 28.6, Lng: 77.2}, t0)
	d, err := OverrideWasteType(d, domain.WastePCB, t0)
	require.NoError(t, err)

	d, err = AttachImage(d, image("bbb"), t0)
	require.NoError(t, err)
	assert.Equal(t, StateVerifying, d.State)
	assert.Nil(t, d.Verification)
	assert.Empty(t, d.WasteType)
	assert.False(t, d.WasteTypeOverridden)
	require.NotNil(t, d.Location, "location survives an image change")

	_, _, err = Submit(d, "r1", t0)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "verification_in_flight"})
}

func TestFailVerification_AndRetry(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	d, err := FailVerification(d, 1, errors.New("verifier timed out"), t0)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, d.State)
	assert.Nil(t, d.Verification)

	d, err = RetryVerification(d, t0)
	require.NoError(t, err)
	assert.Equal(t, StateVerifying, d.State)
	assert.Equal(t, 2, d.Attempt)
	assert.Empty(t, d.VerificationError)

	_, err = RetryVerification(d, t0)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "verification_in_flight"})
}

func TestRetryVerification_RejectedNeedsNewPhoto(t *testing.T) {
	d, _ := AttachImage(New("d1", t0), image("aaa"), t0)
	d, _ = CompleteVerification(d, 1, Classification{IsEwaste: false, Confidence: 0.4, DetectedType: domain.WasteNonEwaste}, threshold, t0)
	_, err := RetryVerification(d, t0)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
}

func TestSetLocation_DerivesAddressAndClearsFailure(t *testing.T) {
	d := New("d1", t0)
	d, err := FailLocation(d, domain.LocationTimeout, "no fix", t0)
	require.NoError(t, err)
	d, err = FailLocation(d, domain.LocationTimeout, "no fix", t0)
	require.NoError(t, err)
	require.NotNil(t, d.LocationFailure)

	d, err = SetLocation(d, domain.Location{Lat: 28.61394, Lng: 77.20899}, t0)
	require.NoError(t, err)
	assert.Nil(t, d.LocationFailure)
	assert.Equal(t, "28.6139, 77.2090", d.Location.Address)
	assert.Equal(t, StateCapturing, d.State, "location does not move the verification state")
}

func TestSetLocation_InvalidCoordinates(t *testing.T) {
	d := New("d1", t0)
	next, err := SetLocation(d, domain.Location{Lat: 120, Lng: 0}, t0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, d, next)
}

func TestFailLocation_KeepsVerification(t *testing.T) {
	d := verifiedDraft(t)
	next, err := FailLocation(d, domain.LocationPermissionDenied, "denied", t0)
	require.NoError(t, err)
	assert.Equal(t, StateVerified, next.State)
	assert.Equal(t, d.Verification, next.Verification)
	assert.Equal(t, domain.LocationPermissionDenied, next.LocationFailure.Reason)
}

func TestOverrideWasteType(t *testing.T) {
	_, err := OverrideWasteType(New("d1", t0), domain.WastePCB, t0)
	assert.ErrorIs(t, err, domain.ErrSubmissionRejected)

	d := verifiedDraft(t)
	_, err = OverrideWasteType(d, domain.WasteNonEwaste, t0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	next, err := OverrideWasteType(d, domain.WasteComputer, t0)
	require.NoError(t, err)
	assert.Equal(t, domain.WasteComputer, next.WasteType)
	assert.True(t, next.WasteTypeOverridden)
	assert.Equal(t, domain.WasteBattery, next.Verification.DetectedType)
}

func TestCheckSubmittable_Exhaustive(t *testing.T) {
	loc := domain.Location{Lat: 1, Lng: 1}
	withImage := func(s State) Draft {
		d, _ := AttachImage(New("d", t0), image("aaa"), t0)
		d.State = s
		return d
	}
	verified := verifiedDraft(t)
	verifiedWithLoc, _ := SetLocation(verified, loc, t0)
	noImageWithLoc, _ := SetLocation(New("d", t0), loc, t0)
	staleVerified := verifiedWithLoc
	staleImage := image("zzz")
	staleVerified.Image = &staleImage

	cases := []struct {
		name    string
		draft   Draft
		targets []error
	}{
		{"empty", New("d", t0), []error{
			&domain.Error{Kind: domain.KindValidation, Field: "image"},
			&domain.Error{Kind: domain.KindValidation, Field: "location"},
		}},
		{"no image", noImageWithLoc, []error{&domain.Error{Kind: domain.KindValidation, Field: "image"}}},
		{"verified without location", verified, []error{&domain.Error{Kind: domain.KindValidation, Field: "location"}}},
		{"verifying", withImage(StateVerifying), []error{domain.ErrSubmissionRejected, domain.ErrValidation}},
		{"failed", withImage(StateFailed), []error{domain.ErrVerificationTransport}},
		{"stale", staleVerified, []error{&domain.Error{Kind: domain.KindSubmissionRejected, Code: "stale_verification"}}},
		{"ok", verifiedWithLoc, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSubmittable(tc.draft)
			if tc.targets == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, target := range tc.targets {
				assert.ErrorIs(t, err, target)
			}
		})
	}
}

func TestCheckSubmittable_ReportsAllViolations(t *testing.T) {
	err := CheckSubmittable(New("d", t0))
	assert.Len(t, multierr.Errors(err), 2)
}

func TestSubmit_BuildsPendingReport(t *testing.T) {
	d := verifiedDraft(t)
	d, _ = SetLocation(d, domain.Location{Lat: 28.6, Lng: 77.2, Address: "Connaught Place"}, t0)
	d, _ = OverrideWasteType(d, domain.WasteComputer, t0)

	at := t0.Add(time.Minute)
	next, report, err := Submit(d, "r1", at)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, next.State)
	assert.Equal(t, "r1", next.ReportID)

	assert.Equal(t, domain.StatusPending, report.Status)
	assert.Equal(t, domain.WasteComputer, report.WasteType)
	assert.Equal(t, 0.9, report.Confidence)
	assert.Equal(t, at, report.CreatedAt)
	assert.Equal(t, "Connaught Place", report.Location.Address)
	require.NotNil(t, report.VerificationResult)
	assert.Equal(t, domain.WasteBattery, report.VerificationResult.DetectedType)

	_, _, err = Submit(next, "r2", at)
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindSubmissionRejected, Code: "already_submitted"})
	_, err = AttachImage(next, image("ccc"), at)
	assert.ErrorIs(t, err, domain.ErrSubmissionRejected)
}
