// Package counter propagates booking and review mutations into the
// denormalized aggregate counters stored on workshops and artists. It is
// invoked synchronously by the upstream write paths, not on a schedule.
package counter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// correlationWindow is how far apart a review and testimonial timestamp may
// be and still be treated as the same record when no back-reference exists.
const correlationWindow = time.Second

// Propagator adjusts denormalized counters in response to booking and
// review mutations.
type Propagator struct {
	catalog catalog.Accessor
	logger  *slog.Logger
	locks   *keyedMutex
}

// NewPropagator creates a counter propagator.
func NewPropagator(cat catalog.Accessor, logger *slog.Logger) *Propagator {
	return &Propagator{
		catalog: cat,
		logger:  logger,
		locks:   newKeyedMutex(),
	}
}

// OnBookingCreated increments the owning workshop's enrollment counter by
// the booking's quantity and its revenue counter by the booking's amount.
func (p *Propagator) OnBookingCreated(ctx context.Context, b *domain.Booking) error {
	if err := p.catalog.Workshops.IncrementByID(ctx, b.WorkshopID, map[string]float64{
		"enrolled": float64(b.Seats()),
		"revenue":  b.Amount,
	}); err != nil {
		return fmt.Errorf("booking created: %w", err)
	}
	p.logger.DebugContext(ctx, "booking counters incremented",
		slog.String("workshop_id", b.WorkshopID),
		slog.Int("quantity", b.Seats()),
	)
	return nil
}

// OnBookingDeleted applies the exact inverse of OnBookingCreated, so a
// create followed by a delete leaves the counters unchanged.
func (p *Propagator) OnBookingDeleted(ctx context.Context, b *domain.Booking) error {
	if err := p.catalog.Workshops.IncrementByID(ctx, b.WorkshopID, map[string]float64{
		"enrolled": -float64(b.Seats()),
		"revenue":  -b.Amount,
	}); err != nil {
		return fmt.Errorf("booking deleted: %w", err)
	}
	p.logger.DebugContext(ctx, "booking counters decremented",
		slog.String("workshop_id", b.WorkshopID),
		slog.Int("quantity", b.Seats()),
	)
	return nil
}

// OnReviewCreated appends a testimonial derived from the review to the
// owning artist, then recomputes that artist's average rating and review
// count from all reviews currently attached.
func (p *Propagator) OnReviewCreated(ctx context.Context, r *domain.Review) error {
	unlock := p.locks.Lock(r.ArtistID)
	defer unlock()

	artist, err := p.catalog.Artists.FindByID(ctx, r.ArtistID)
	if err != nil {
		return fmt.Errorf("review created: %w", err)
	}

	testimonials := append(artist.Testimonials, domain.Testimonial{
		ReviewID:  r.ID,
		UserName:  r.UserName,
		Comment:   r.Comment,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	})
	if err := p.catalog.Artists.UpdateByID(ctx, r.ArtistID, map[string]any{
		"testimonials": testimonials,
	}); err != nil {
		return fmt.Errorf("review created: %w", err)
	}

	return p.recomputeRating(ctx, r.ArtistID)
}

// OnReviewUpdated updates the matching testimonial and recomputes the
// rating. A testimonial that cannot be correlated is a cosmetic miss: the
// numeric recompute proceeds regardless.
func (p *Propagator) OnReviewUpdated(ctx context.Context, r *domain.Review) error {
	unlock := p.locks.Lock(r.ArtistID)
	defer unlock()

	artist, err := p.catalog.Artists.FindByID(ctx, r.ArtistID)
	if err != nil {
		return fmt.Errorf("review updated: %w", err)
	}

	if idx := p.correlate(ctx, artist.Testimonials, r); idx >= 0 {
		testimonials := make([]domain.Testimonial, len(artist.Testimonials))
		copy(testimonials, artist.Testimonials)
		testimonials[idx].Comment = r.Comment
		testimonials[idx].Rating = r.Rating
		if testimonials[idx].ReviewID == "" {
			testimonials[idx].ReviewID = r.ID
		}
		if err := p.catalog.Artists.UpdateByID(ctx, r.ArtistID, map[string]any{
			"testimonials": testimonials,
		}); err != nil {
			return fmt.Errorf("review updated: %w", err)
		}
	}

	return p.recomputeRating(ctx, r.ArtistID)
}

// OnReviewDeleted removes the matching testimonial and recomputes the
// rating.
func (p *Propagator) OnReviewDeleted(ctx context.Context, r *domain.Review) error {
	unlock := p.locks.Lock(r.ArtistID)
	defer unlock()

	artist, err := p.catalog.Artists.FindByID(ctx, r.ArtistID)
	if err != nil {
		return fmt.Errorf("review deleted: %w", err)
	}

	if idx := p.correlate(ctx, artist.Testimonials, r); idx >= 0 {
		testimonials := make([]domain.Testimonial, 0, len(artist.Testimonials)-1)
		testimonials = append(testimonials, artist.Testimonials[:idx]...)
		testimonials = append(testimonials, artist.Testimonials[idx+1:]...)
		if err := p.catalog.Artists.UpdateByID(ctx, r.ArtistID, map[string]any{
			"testimonials": testimonials,
		}); err != nil {
			return fmt.Errorf("review deleted: %w", err)
		}
	}

	return p.recomputeRating(ctx, r.ArtistID)
}

// correlate locates the testimonial for a review: by the stored ReviewID
// back-reference first, then by name plus comment text, then by name plus
// timestamp proximity for legacy records. Returns -1 on a miss.
func (p *Propagator) correlate(ctx context.Context, testimonials []domain.Testimonial, r *domain.Review) int {
	for i := range testimonials {
		if testimonials[i].ReviewID != "" && testimonials[i].ReviewID == r.ID {
			return i
		}
	}
	for i := range testimonials {
		if testimonials[i].ReviewID != "" {
			continue
		}
		if testimonials[i].UserName != r.UserName {
			continue
		}
		if testimonials[i].Comment == r.Comment {
			return i
		}
		delta := testimonials[i].CreatedAt.Sub(r.CreatedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta <= correlationWindow {
			return i
		}
	}
	p.logger.WarnContext(ctx, "testimonial correlation miss",
		slog.String("review_id", r.ID),
		slog.String("artist_id", r.ArtistID),
	)
	return -1
}

// recomputeRating recalculates the artist's average rating and review count
// from all attached reviews. A full recompute avoids the floating-point
// drift that accumulates over many incremental updates.
func (p *Propagator) recomputeRating(ctx context.Context, artistID string) error {
	reviews, err := p.catalog.Reviews.Find(ctx, catalog.Query{
		Filter: domain.Filter{}.Eq("artistId", artistID),
	})
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	var rating float64
	if len(reviews) > 0 {
		var sum float64
		for i := range reviews {
			sum += reviews[i].Rating
		}
		rating = sum / float64(len(reviews))
	}

	if err := p.catalog.Artists.UpdateByID(ctx, artistID, map[string]any{
		"rating":       rating,
		"reviewsCount": len(reviews),
	}); err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}
	return nil
}
