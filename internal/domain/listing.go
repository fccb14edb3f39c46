package domain

import (
	"time"
)

// Delivery modes shared by artists and workshops.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Workshop lifecycle states.
const (
	WorkshopActive    = "active"
	WorkshopCompleted = "completed"
	WorkshopCancelled = "cancelled"
)

// AvailabilityDay is one entry in an artist's availability calendar.
type AvailabilityDay struct {
	Date      time.Time `bson:"date" json:"date"`
	OpenSlots int       `bson:"openSlots" json:"open_slots"`
}

// Testimonial is a denormalized copy of a review stored on the artist
// document. ReviewID links it back to the owning review; older documents
// written before the back-reference existed may have it empty.
type Testimonial struct {
	ReviewID  string    `bson:"reviewId,omitempty" json:"review_id,omitempty"`
	UserName  string    `bson:"userName" json:"user_name"`
	Comment   string    `bson:"comment" json:"comment"`
	Rating    float64   `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Artist is a bookable instructor listed in the catalog.
type Artist struct {
	ID                string            `bson:"_id" json:"id"`
	Name              string            `bson:"name" json:"name"`
	Bio               string            `bson:"bio" json:"bio"`
	Category          string            `bson:"category" json:"category"`
	Specialties       []string          `bson:"specialties" json:"specialties"`
	City              string            `bson:"city" json:"city"`
	Price             float64           `bson:"price" json:"price"`
	Rating            float64           `bson:"rating" json:"rating"`
	ReviewsCount      int               `bson:"reviewsCount" json:"reviews_count"`
	TotalBookings     int               `bson:"totalBookings" json:"total_bookings"`
	ExperienceYears   int               `bson:"experienceYears" json:"experience_years"`
	Mode              string            `bson:"mode" json:"mode"`
	Tags              []string          `bson:"tags" json:"tags"`
	TargetAudience    []string          `bson:"targetAudience" json:"target_audience"`
	IsAvailable       bool              `bson:"isAvailable" json:"is_available"`
	NextAvailableDate *time.Time        `bson:"nextAvailableDate,omitempty" json:"next_available_date,omitempty"`
	Availability      []AvailabilityDay `bson:"availability" json:"availability"`
	Featured          bool              `bson:"featured" json:"featured"`
	FeaturedOrder     int               `bson:"featuredOrder" json:"featured_order"`
	SearchText        string            `bson:"searchText" json:"-"`
	Image             string            `bson:"image" json:"image"`
	Testimonials      []Testimonial     `bson:"testimonials" json:"testimonials,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"created_at"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updated_at"`
}

// Workshop is a bookable session owned by an artist.
type Workshop struct {
	ID                string    `bson:"_id" json:"id"`
	ArtistID          string    `bson:"artistId" json:"artist_id"`
	Title             string    `bson:"title" json:"title"`
	Description       string    `bson:"description" json:"description"`
	Category          string    `bson:"category" json:"category"`
	Subcategory       string    `bson:"subcategory" json:"subcategory"`
	City              string    `bson:"city" json:"city"`
	Price             float64   `bson:"price" json:"price"`
	AverageRating     float64   `bson:"averageRating" json:"average_rating"`
	ReviewCount       int       `bson:"reviewCount" json:"review_count"`
	Enrolled          int       `bson:"enrolled" json:"enrolled"`
	Revenue           float64   `bson:"revenue" json:"revenue"`
	SeatsTotal        int       `bson:"seatsTotal" json:"seats_total"`
	SeatsAvailable    int       `bson:"seatsAvailable" json:"seats_available"`
	Date              time.Time `bson:"date" json:"date"`
	Status            string    `bson:"status" json:"status"`
	Mode              string    `bson:"mode" json:"mode"`
	Certificate       bool      `bson:"certificate" json:"certificate"`
	MaterialsIncluded bool      `bson:"materialsIncluded" json:"materials_included"`
	Tags              []string  `bson:"tags" json:"tags"`
	TargetAudience    []string  `bson:"targetAudience" json:"target_audience"`
	Featured          bool      `bson:"featured" json:"featured"`
	FeaturedOrder     int       `bson:"featuredOrder" json:"featured_order"`
	SearchText        string    `bson:"searchText" json:"-"`
	Image             string    `bson:"image" json:"image"`
	CreatedAt         time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updated_at"`
}

// NextOpenDate returns the earliest future calendar day with at least one
// open slot, or nil if the artist has none.
func (a *Artist) NextOpenDate(now time.Time) *time.Time {
	var next *time.Time
	for i := range a.Availability {
		day := a.Availability[i]
		if day.OpenSlots < 1 || !day.Date.After(now) {
			continue
		}
		if next == nil || day.Date.Before(*next) {
			d := day.Date
			next = &d
		}
	}
	return next
}

// Suggestion is a single autocomplete entry. Date and Price are only set for
// workshop suggestions.
type Suggestion struct {
	Type     string     `json:"type"`
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	City     string     `json:"city"`
	Image    string     `json:"image"`
	Date     *time.Time `json:"date,omitempty"`
	Price    *float64   `json:"price,omitempty"`
}

// Suggestion type discriminators.
const (
	SuggestionArtist   = "artist"
	SuggestionWorkshop = "workshop"
)

// RankedArtist pairs an artist with its transient ranking score.
type RankedArtist struct {
	Artist
	RankingScore float64 `json:"ranking_score"`
}

// RankedWorkshop pairs a workshop with its transient ranking score.
type RankedWorkshop struct {
	Workshop
	RankingScore float64 `json:"ranking_score"`
}
