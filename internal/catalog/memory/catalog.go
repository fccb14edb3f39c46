package memory

import (
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Catalog holds the concrete in-memory collections so tests can seed records
// through Put/Remove while the core sees only the catalog.Accessor view.
type Catalog struct {
	Artists   *Collection[domain.Artist]
	Workshops *Collection[domain.Workshop]
	Bookings  *Collection[domain.Booking]
	Reviews   *Collection[domain.Review]
}

// New creates an empty in-memory catalog.
func New() *Catalog {
	return &Catalog{
		Artists: newCollection(
			func(a *domain.Artist) string { return a.ID },
			artistField, setArtistField,
		),
		Workshops: newCollection(
			func(w *domain.Workshop) string { return w.ID },
			workshopField, setWorkshopField,
		),
		Bookings: newCollection(
			func(b *domain.Booking) string { return b.ID },
			bookingField, setBookingField,
		),
		Reviews: newCollection(
			func(r *domain.Review) string { return r.ID },
			reviewField, setReviewField,
		),
	}
}

// Accessor returns the backend-agnostic view used by the discovery core.
func (c *Catalog) Accessor() catalog.Accessor {
	return catalog.Accessor{
		Artists:   c.Artists,
		Workshops: c.Workshops,
		Bookings:  c.Bookings,
		Reviews:   c.Reviews,
	}
}

// SetClock overrides the clock used for updatedAt stamps. Tests use it to
// control staleness windows.
func (c *Catalog) SetClock(now func() time.Time) {
	c.Artists.now = now
	c.Workshops.now = now
	c.Bookings.now = now
	c.Reviews.now = now
}
