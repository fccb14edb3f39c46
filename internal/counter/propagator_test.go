package counter

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/catalog/memory"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPropagator(c *memory.Catalog) *Propagator {
	return NewPropagator(c.Accessor(), testLogger())
}

func TestOnBookingCreated_IncrementsEnrollmentAndRevenue(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Workshops.Put(domain.Workshop{ID: "w1", Enrolled: 10, Revenue: 5000})
	p := newTestPropagator(c)

	err := p.OnBookingCreated(ctx, &domain.Booking{ID: "b1", WorkshopID: "w1", Quantity: 3, Amount: 1500})
	require.NoError(t, err)

	got, err := c.Workshops.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 13, got.Enrolled)
	assert.Equal(t, 6500.0, got.Revenue)
}

func TestOnBookingCreated_QuantityDefaultsToOne(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Workshops.Put(domain.Workshop{ID: "w1"})
	p := newTestPropagator(c)

	require.NoError(t, p.OnBookingCreated(ctx, &domain.Booking{ID: "b1", WorkshopID: "w1"}))

	got, _ := c.Workshops.FindByID(ctx, "w1")
	assert.Equal(t, 1, got.Enrolled)
}

func TestBookingCreateThenDeleteLeavesCountersUnchanged(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Workshops.Put(domain.Workshop{ID: "w1", Enrolled: 10, Revenue: 5000})
	p := newTestPropagator(c)

	b := &domain.Booking{ID: "b1", WorkshopID: "w1", Quantity: 2, Amount: 900}
	require.NoError(t, p.OnBookingCreated(ctx, b))
	require.NoError(t, p.OnBookingDeleted(ctx, b))

	got, err := c.Workshops.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Enrolled)
	assert.Equal(t, 5000.0, got.Revenue)
}

func TestOnBookingCreated_UnknownWorkshop(t *testing.T) {
	ctx := context.Background()
	p := newTestPropagator(memory.New())

	err := p.OnBookingCreated(ctx, &domain.Booking{ID: "b1", WorkshopID: "missing"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestOnReviewCreated_AppendsTestimonialAndRecomputesRating(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Rating: 5, ReviewsCount: 1})
	c.Reviews.Put(domain.Review{ID: "r1", ArtistID: "art-1", Rating: 5})
	p := newTestPropagator(c)

	newReview := domain.Review{ID: "r2", ArtistID: "art-1", UserName: "Asha", Rating: 3, Comment: "good", CreatedAt: time.Now().UTC()}
	c.Reviews.Put(newReview)
	require.NoError(t, p.OnReviewCreated(ctx, &newReview))

	got, err := c.Artists.FindByID(ctx, "art-1")
	require.NoError(t, err)
	require.Len(t, got.Testimonials, 1)
	assert.Equal(t, "r2", got.Testimonials[0].ReviewID)
	assert.Equal(t, "Asha", got.Testimonials[0].UserName)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 2, got.ReviewsCount)
}

func TestOnReviewUpdated_CorrelatesByReviewID(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Testimonials: []domain.Testimonial{
		{ReviewID: "r1", UserName: "Asha", Comment: "ok", Rating: 3},
	}})
	updated := domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha", Rating: 5, Comment: "superb"}
	c.Reviews.Put(updated)
	p := newTestPropagator(c)

	require.NoError(t, p.OnReviewUpdated(ctx, &updated))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	require.Len(t, got.Testimonials, 1)
	assert.Equal(t, "superb", got.Testimonials[0].Comment)
	assert.Equal(t, 5.0, got.Testimonials[0].Rating)
	assert.Equal(t, 5.0, got.Rating)
}

func TestOnReviewUpdated_LegacyCorrelationByNameAndComment(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Testimonials: []domain.Testimonial{
		{UserName: "Asha", Comment: "nice class", Rating: 4},
	}})
	updated := domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha", Rating: 2, Comment: "nice class"}
	c.Reviews.Put(updated)
	p := newTestPropagator(c)

	require.NoError(t, p.OnReviewUpdated(ctx, &updated))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	require.Len(t, got.Testimonials, 1)
	// Correlation also backfills the missing reference.
	assert.Equal(t, "r1", got.Testimonials[0].ReviewID)
	assert.Equal(t, 2.0, got.Testimonials[0].Rating)
}

func TestOnReviewUpdated_LegacyCorrelationByTimestampProximity(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Testimonials: []domain.Testimonial{
		{UserName: "Asha", Comment: "old words", Rating: 4, CreatedAt: at},
	}})
	updated := domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha", Rating: 1, Comment: "edited words", CreatedAt: at.Add(500 * time.Millisecond)}
	c.Reviews.Put(updated)
	p := newTestPropagator(c)

	require.NoError(t, p.OnReviewUpdated(ctx, &updated))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	require.Len(t, got.Testimonials, 1)
	assert.Equal(t, "edited words", got.Testimonials[0].Comment)
}

func TestOnReviewUpdated_CorrelationMissStillRecomputes(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Rating: 4, Testimonials: []domain.Testimonial{
		{UserName: "Someone Else", Comment: "unrelated", Rating: 4},
	}})
	updated := domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha", Rating: 2, Comment: "meh"}
	c.Reviews.Put(updated)
	p := newTestPropagator(c)

	require.NoError(t, p.OnReviewUpdated(ctx, &updated))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	// The cosmetic copy is untouched but the numbers still reflect the reviews.
	require.Len(t, got.Testimonials, 1)
	assert.Equal(t, "unrelated", got.Testimonials[0].Comment)
	assert.Equal(t, 2.0, got.Rating)
	assert.Equal(t, 1, got.ReviewsCount)
}

func TestOnReviewDeleted_RemovesTestimonialAndRecomputes(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Testimonials: []domain.Testimonial{
		{ReviewID: "r1", UserName: "Asha", Rating: 2},
		{ReviewID: "r2", UserName: "Ravi", Rating: 4},
	}})
	c.Reviews.Put(domain.Review{ID: "r2", ArtistID: "art-1", Rating: 4})
	p := newTestPropagator(c)

	deleted := domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha", Rating: 2}
	require.NoError(t, p.OnReviewDeleted(ctx, &deleted))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	require.Len(t, got.Testimonials, 1)
	assert.Equal(t, "r2", got.Testimonials[0].ReviewID)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 1, got.ReviewsCount)
}

func TestOnReviewDeleted_LastReviewZeroesRating(t *testing.T) {
	ctx := context.Background()
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Rating: 5, ReviewsCount: 1, Testimonials: []domain.Testimonial{
		{ReviewID: "r1", UserName: "Asha", Rating: 5},
	}})
	p := newTestPropagator(c)

	require.NoError(t, p.OnReviewDeleted(ctx, &domain.Review{ID: "r1", ArtistID: "art-1", UserName: "Asha"}))

	got, _ := c.Artists.FindByID(ctx, "art-1")
	assert.Empty(t, got.Testimonials)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, 0, got.ReviewsCount)
}
