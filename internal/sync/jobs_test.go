package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog/memory"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

func newTestJobs(c *memory.Catalog, now time.Time) *Jobs {
	j := NewJobs(c.Accessor(), testLogger(), 10*time.Minute, 100)
	j.now = func() time.Time { return now }
	return j
}

func TestRefreshAvailability_SetsNextOpenDate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := now.AddDate(0, 0, 2)

	c := memory.New()
	c.Artists.Put(domain.Artist{
		ID:          "a1",
		IsAvailable: true,
		Availability: []domain.AvailabilityDay{
			{Date: now.AddDate(0, 0, -1), OpenSlots: 2},
			{Date: open, OpenSlots: 1},
		},
	})

	report, err := newTestJobs(c, now).RefreshAvailability(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	got, err := c.Artists.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, got.IsAvailable)
	require.NotNil(t, got.NextAvailableDate)
	assert.Equal(t, open, *got.NextAvailableDate)
}

func TestRefreshAvailability_FlagsUnavailableWhenNoOpenDates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := now.AddDate(0, 0, -3)

	c := memory.New()
	c.Artists.Put(domain.Artist{
		ID:                "a1",
		IsAvailable:       true,
		NextAvailableDate: &stale,
		Availability: []domain.AvailabilityDay{
			{Date: stale, OpenSlots: 4},
			{Date: now.AddDate(0, 0, 1), OpenSlots: 0},
		},
	})

	report, err := newTestJobs(c, now).RefreshAvailability(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	got, err := c.Artists.FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)
	assert.Nil(t, got.NextAvailableDate)
}

func TestRefreshAvailability_SkipsUnchangedRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	open := now.AddDate(0, 0, 2)

	c := memory.New()
	c.Artists.Put(domain.Artist{
		ID:                "a1",
		IsAvailable:       true,
		NextAvailableDate: &open,
		Availability:      []domain.AvailabilityDay{{Date: open, OpenSlots: 1}},
	})

	report, err := newTestJobs(c, now).RefreshAvailability(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 0, report.Failures)
}

func TestTransitionWorkshops_CompletesOverdueActiveOnly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := memory.New()
	c.Workshops.Put(domain.Workshop{ID: "overdue", Status: domain.WorkshopActive, Date: now.AddDate(0, 0, -1)})
	c.Workshops.Put(domain.Workshop{ID: "upcoming", Status: domain.WorkshopActive, Date: now.AddDate(0, 0, 1)})
	c.Workshops.Put(domain.Workshop{ID: "cancelled", Status: domain.WorkshopCancelled, Date: now.AddDate(0, 0, -1)})

	report, err := newTestJobs(c, now).TransitionWorkshops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	overdue, _ := c.Workshops.FindByID(ctx, "overdue")
	assert.Equal(t, domain.WorkshopCompleted, overdue.Status)
	upcoming, _ := c.Workshops.FindByID(ctx, "upcoming")
	assert.Equal(t, domain.WorkshopActive, upcoming.Status)
	cancelled, _ := c.Workshops.FindByID(ctx, "cancelled")
	assert.Equal(t, domain.WorkshopCancelled, cancelled.Status)
}

func TestRecomputePopularity_CountsConfirmedAndPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", TotalBookings: 99})
	c.Workshops.Put(domain.Workshop{ID: "w1", ArtistID: "art-1"})
	c.Workshops.Put(domain.Workshop{ID: "w2", ArtistID: "art-1"})
	c.Bookings.Put(domain.Booking{ID: "b1", WorkshopID: "w1", Status: domain.BookingConfirmed})
	c.Bookings.Put(domain.Booking{ID: "b2", WorkshopID: "w2", Status: domain.BookingPending})
	c.Bookings.Put(domain.Booking{ID: "b3", WorkshopID: "w1", Status: domain.BookingCancelled})
	c.Bookings.Put(domain.Booking{ID: "b4", WorkshopID: "other", Status: domain.BookingConfirmed})

	report, err := newTestJobs(c, now).RecomputePopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	got, err := c.Artists.FindByID(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalBookings)
}

func TestRecomputePopularity_NoWorkshopsMeansZero(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", TotalBookings: 5})

	report, err := newTestJobs(c, now).RecomputePopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	got, _ := c.Artists.FindByID(ctx, "art-1")
	assert.Equal(t, 0, got.TotalBookings)
}

func TestCheckStaleness_CountsWithoutMutating(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "stale", IsAvailable: true, UpdatedAt: now.Add(-time.Hour)})
	c.Artists.Put(domain.Artist{ID: "fresh", IsAvailable: true, UpdatedAt: now.Add(-time.Minute)})
	c.Artists.Put(domain.Artist{ID: "offline", IsAvailable: false, UpdatedAt: now.Add(-time.Hour)})

	report, err := newTestJobs(c, now).CheckStaleness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	// Monitoring only: the stale record itself is untouched.
	stale, _ := c.Artists.FindByID(ctx, "stale")
	assert.Equal(t, now.Add(-time.Hour), stale.UpdatedAt)
	assert.True(t, stale.IsAvailable)
}
