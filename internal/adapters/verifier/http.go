package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

// HTTP posts the raw image to a classifier service and expects
// {"is_ewaste": bool, "confidence": float, "detected_type": string} back.
type HTTP struct {
	url     string
	client  *http.Client
	retries uint64
	backoff time.Duration
}

type HTTPOption func(*HTTP)

func WithHTTPClient(c *http.Client) HTTPOption { return func(h *HTTP) { h.client = c } }

// WithRetries opts into retrying 5xx answers and connection errors within the
// caller's deadline. By default a failed call is final; the user retries the
// attempt.
func WithRetries(n uint64, backoff time.Duration) HTTPOption {
	return func(h *HTTP) { h.retries, h.backoff = n, backoff }
}

func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{url: url, client: http.DefaultClient, backoff: 200 * time.Millisecond}
	for _, o := range opts {
		o(h)
	}
	return h
}

var _ ports.Verifier = (*HTTP)(nil)

type classifyResponse struct {
	IsEwaste     bool    `json:"is_ewaste"`
	Confidence   float64 `json:"confidence"`
	DetectedType string  `json:"detected_type"`
}

func (h *HTTP) Verify(ctx context.Context, image []byte, contentType string) (workflow.Classification, error) {
	var out workflow.Classification
	b := retry.WithMaxRetries(h.retries, retry.NewExponential(h.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		c, err := h.call(ctx, image, contentType)
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (h *HTTP) call(ctx context.Context, image []byte, contentType string) (workflow.Classification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(image))
	if err != nil {
		return workflow.Classification{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return workflow.Classification{}, err
		}
		return workflow.Classification{}, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return workflow.Classification{}, retry.RetryableError(fmt.Errorf("classifier returned %s", resp.Status))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return workflow.Classification{}, fmt.Errorf("classifier returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	var cr classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return workflow.Classification{}, fmt.Errorf("decode classifier response: %w", err)
	}
	t := domain.WasteType(cr.DetectedType)
	if !t.Valid() {
		return workflow.Classification{}, fmt.Errorf("classifier returned unknown type %q", cr.DetectedType)
	}
	return workflow.Classification{IsEwaste: cr.IsEwaste, Confidence: cr.Confidence, DetectedType: t}, nil
}
