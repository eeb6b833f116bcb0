// Package verifier holds the e-waste image classifiers the workflow can call.
package verifier

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

var detectable = []domain.WasteType{
	domain.WasteMobilePhone,
	domain.WasteBattery,
	domain.WastePCB,
	domain.WasteTVAppliance,
	domain.WasteComputer,
}

// Simulated stands in for a real classifier in development. After a fixed
// delay it detects e-waste four times out of five.
type Simulated struct {
	clock clockwork.Clock
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulated(clock clockwork.Clock, delay time.Duration, seed int64) *Simulated {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Simulated{clock: clock, delay: delay, rng: rand.New(rand.NewSource(seed))}
}

var _ ports.Verifier = (*Simulated)(nil)

func (s *Simulated) Verify(ctx context.Context, _ []byte, _ string) (workflow.Classification, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return workflow.Classification{}, ctx.Err()
		case <-s.clock.After(s.delay):
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng.Float64() > 0.2 {
		return workflow.Classification{
			IsEwaste:     true,
			Confidence:   0.75 + s.rng.Float64()*0.2,
			DetectedType: detectable[s.rng.Intn(len(detectable))],
		}, nil
	}
	return workflow.Classification{
		IsEwaste:     false,
		Confidence:   0.3 + s.rng.Float64()*0.2,
		DetectedType: domain.WasteNonEwaste,
	}, nil
}
