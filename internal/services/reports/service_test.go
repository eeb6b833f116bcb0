package reports

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewastewatch/internal/adapters/memory"
	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
)

type countingRefresher struct{ n int }

func (c *countingRefresher) Recompute(context.Context) ([]domain.Hotspot, error) {
	c.n++
	return nil, nil
}

var t0 = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func setup() (*Service, *memory.Store, *countingRefresher, *clockwork.FakeClock) {
	store := memory.New()
	store.Seed(
		domain.Report{ID: "r1", Status: domain.StatusPending, CreatedAt: t0},
		domain.Report{ID: "r2", Status: domain.StatusVerified, CreatedAt: t0.Add(time.Hour)},
		domain.Report{ID: "r3", Status: domain.StatusRejected, CreatedAt: t0.Add(2 * time.Hour)},
	)
	refresher := &countingRefresher{}
	clock := clockwork.NewFakeClockAt(t0.Add(24 * time.Hour))
	return New(store, refresher, nil, clock), store, refresher, clock
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := setup()

	all, err := svc.List(ctx, ports.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].ID)

	verified, err := svc.List(ctx, ports.ReportFilter{Status: domain.StatusVerified})
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "r2", verified[0].ID)

	_, err = svc.List(ctx, ports.ReportFilter{Status: "archived"})
	assert.ErrorIs(t, err, &domain.Error{Kind: domain.KindValidation, Field: "status"})
	_, err = svc.List(ctx, ports.ReportFilter{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, refresher, clock := setup()

	r, err := svc.SetStatus(ctx, "r1", domain.StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, r.Status)
	assert.Equal(t, clock.Now(), r.UpdatedAt)
	assert.Equal(t, 1, refresher.n)

	r, err = svc.SetStatus(ctx, "r1", domain.StatusCleaned)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCleaned, r.Status)

	_, err = svc.SetStatus(ctx, "r1", domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.SetStatus(ctx, "r3", domain.StatusVerified)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "rejected is terminal")
	_, err = svc.SetStatus(ctx, "r2", "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.SetStatus(ctx, "missing", domain.StatusVerified)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, refresher.n, "failed transitions do not refresh hotspots")
}
