// Package refresher recomputes hotspots on a fixed interval so that reports
// written by other processes eventually show up in the hotspot set.
package refresher

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"ewastewatch/internal/ports"
)

// Run recomputes once immediately and then on every tick until ctx is done.
func Run(ctx context.Context, clock clockwork.Clock, hotspots ports.HotspotRefresher, interval time.Duration) {
	if interval <= 0 {
		return
	}
	refresh(ctx, hotspots, "initial")

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			refresh(ctx, hotspots, "scheduled")
		}
	}
}

func refresh(ctx context.Context, hotspots ports.HotspotRefresher, kind string) {
	hs, err := hotspots.Recompute(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("%s hotspot refresh failed: %v", kind, err)
		}
		return
	}
	log.Printf("%s hotspot refresh: %d hotspots", kind, len(hs))
}
