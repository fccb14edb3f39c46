package domain

import "time"

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingPending   = "pending"
	BookingCancelled = "cancelled"
)

// Booking is a seat reservation on a workshop. Quantity defaults to 1 and
// Amount to 0 when the write path omits them.
type Booking struct {
	ID         string    `bson:"_id" json:"id"`
	WorkshopID string    `bson:"workshopId" json:"workshop_id"`
	ArtistID   string    `bson:"artistId" json:"artist_id"`
	UserID     string    `bson:"userId" json:"user_id"`
	Status     string    `bson:"status" json:"status"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	Amount     float64   `bson:"amount" json:"amount"`
	CreatedAt  time.Time `bson:"createdAt" json:"created_at"`
}

// Seats returns the booking quantity, defaulting to 1 for legacy records
// that never stored one.
func (b *Booking) Seats() int {
	if b.Quantity < 1 {
		return 1
	}
	return b.Quantity
}

// Review is a rating left for an artist.
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	ArtistID  string    `bson:"artistId" json:"artist_id"`
	UserName  string    `bson:"userName" json:"user_name"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
