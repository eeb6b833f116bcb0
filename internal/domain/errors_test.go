package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestErrorIs_MatchesKindFieldAndCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Validation("location", "location is required"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, &Error{Kind: KindValidation, Field: "location"})
	assert.NotErrorIs(t, err, &Error{Kind: KindValidation, Field: "image"})
	assert.NotErrorIs(t, err, ErrVerificationFailed)
}

func TestErrorIs_ThroughMultierr(t *testing.T) {
	err := multierr.Combine(
		Validation("image", "an image is required"),
		Validation("location", "a location is required"),
	)
	assert.ErrorIs(t, err, &Error{Kind: KindValidation, Field: "image"})
	assert.ErrorIs(t, err, &Error{Kind: KindValidation, Field: "location"})
	assert.Len(t, multierr.Errors(err), 2)
}

func TestLocationError(t *testing.T) {
	cause := errors.New("deadline")
	err := LocationError(LocationTimeout, cause)

	reason, ok := LocationReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, LocationTimeout, reason)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, &Error{Kind: KindLocationUnavailable, Code: string(LocationPermissionDenied)})

	// unknown reasons collapse to unavailable
	reason, _ = LocationReasonOf(LocationError("bogus", nil))
	assert.Equal(t, LocationUnavailable, reason)
}

func TestVerificationTransport_DistinctFromFailed(t *testing.T) {
	err := VerificationTransport(errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrVerificationTransport)
	assert.NotErrorIs(t, err, ErrVerificationFailed)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindVerificationTransport, kind)
	assert.Contains(t, err.Error(), "connection refused")
}
