package postgres

import (
	"time"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/workflow"
)

// Drafts are stored as a JSONB document next to their version column; the
// structs below fix the column's shape independently of the Go types.

type imageJSON struct {
	Ref         string `json:"ref"`
	Digest      string `json:"digest"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type verificationJSON struct {
	IsEwaste     bool      `json:"is_ewaste"`
	Confidence   float64   `json:"confidence"`
	DetectedType string    `json:"detected_type"`
	Timestamp    time.Time `json:"timestamp"`
	ImageDigest  string    `json:"image_digest"`
}

type locationJSON struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type locationFailureJSON struct {
	Reason string    `json:"reason"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type draftJSON struct {
	Image               *imageJSON           `json:"image,omitempty"`
	Attempt             int                  `json:"attempt"`
	Verification        *verificationJSON    `json:"verification,omitempty"`
	VerificationError   string               `json:"verification_error,omitempty"`
	Location            *locationJSON        `json:"location,omitempty"`
	LocationFailure     *locationFailureJSON `json:"location_failure,omitempty"`
	WasteType           string               `json:"waste_type,omitempty"`
	WasteTypeOverridden bool                 `json:"waste_type_overridden,omitempty"`
}

func encodeVerification(v *domain.VerificationResult) *verificationJSON {
	if v == nil {
		return nil
	}
	return &verificationJSON{
		IsEwaste:     v.IsEwaste,
		Confidence:   v.Confidence,
		DetectedType: string(v.DetectedType),
		Timestamp:    v.Timestamp,
		ImageDigest:  v.ImageDigest,
	}
}

func (v *verificationJSON) decode() *domain.VerificationResult {
	if v == nil {
		return nil
	}
	return &domain.VerificationResult{
		IsEwaste:     v.IsEwaste,
		Confidence:   v.Confidence,
		DetectedType: domain.WasteType(v.DetectedType),
		Timestamp:    v.Timestamp,
		ImageDigest:  v.ImageDigest,
	}
}

func encodeDraft(d workflow.Draft) draftJSON {
	out := draftJSON{
		Attempt:             d.Attempt,
		Verification:        encodeVerification(d.Verification),
		VerificationError:   d.VerificationError,
		WasteType:           string(d.WasteType),
		WasteTypeOverridden: d.WasteTypeOverridden,
	}
	if d.Image != nil {
		out.Image = &imageJSON{Ref: d.Image.Ref, Digest: d.Image.Digest, ContentType: d.Image.ContentType, Size: d.Image.Size}
	}
	if d.Location != nil {
		out.Location = &locationJSON{Lat: d.Location.Lat, Lng: d.Location.Lng, Address: d.Location.Address}
	}
	if f := d.LocationFailure; f != nil {
		out.LocationFailure = &locationFailureJSON{Reason: string(f.Reason), Detail: f.Detail, At: f.At}
	}
	return out
}

func (p draftJSON) decode(d *workflow.Draft) {
	d.Attempt = p.Attempt
	d.Verification = p.Verification.decode()
	d.VerificationError = p.VerificationError
	d.WasteType = domain.WasteType(p.WasteType)
	d.WasteTypeOverridden = p.WasteTypeOverridden
	if p.Image != nil {
		d.Image = &domain.ImageRef{Ref: p.Image.Ref, Digest: p.Image.Digest, ContentType: p.Image.ContentType, Size: p.Image.Size}
	}
	if p.Location != nil {
		d.Location = &domain.Location{Lat: p.Location.Lat, Lng: p.Location.Lng, Address: p.Location.Address}
	}
	if f := p.LocationFailure; f != nil {
		d.LocationFailure = &workflow.LocationFailure{Reason: domain.LocationReason(f.Reason), Detail: f.Detail, At: f.At}
	}
}
