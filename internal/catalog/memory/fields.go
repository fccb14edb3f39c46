package memory

import (
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Field access for each entity uses the stored (bson) field names so the
// planner's filter specs evaluate identically here and in MongoDB.

func artistField(a *domain.Artist, field string) (any, bool) {
	switch field {
	case "_id":
		return a.ID, true
	case "name":
		return a.Name, true
	case "bio":
		return a.Bio, true
	case "category":
		return a.Category, true
	case "specialties":
		return a.Specialties, true
	case "city":
		return a.City, true
	case "price":
		return a.Price, true
	case "rating":
		return a.Rating, true
	case "reviewsCount":
		return a.ReviewsCount, true
	case "totalBookings":
		return a.TotalBookings, true
	case "experienceYears":
		return a.ExperienceYears, true
	case "mode":
		return a.Mode, true
	case "tags":
		return a.Tags, true
	case "targetAudience":
		return a.TargetAudience, true
	case "isAvailable":
		return a.IsAvailable, true
	case "nextAvailableDate":
		return a.NextAvailableDate, true
	case "featured":
		return a.Featured, true
	case "featuredOrder":
		return a.FeaturedOrder, true
	case "searchText":
		return a.SearchText, true
	case "createdAt":
		return a.CreatedAt, true
	case "updatedAt":
		return a.UpdatedAt, true
	default:
		return nil, false
	}
}

func setArtistField(a *domain.Artist, field string, value any) {
	switch field {
	case "rating":
		if n, ok := toFloat(value); ok {
			a.Rating = n
		}
	case "reviewsCount":
		if n, ok := toFloat(value); ok {
			a.ReviewsCount = int(n)
		}
	case "totalBookings":
		if n, ok := toFloat(value); ok {
			a.TotalBookings = int(n)
		}
	case "isAvailable":
		if b, ok := value.(bool); ok {
			a.IsAvailable = b
		}
	case "nextAvailableDate":
		switch t := value.(type) {
		case nil:
			a.NextAvailableDate = nil
		case *time.Time:
			a.NextAvailableDate = t
		case time.Time:
			a.NextAvailableDate = &t
		}
	case "searchText":
		if s, ok := value.(string); ok {
			a.SearchText = s
		}
	case "testimonials":
		if ts, ok := value.([]domain.Testimonial); ok {
			a.Testimonials = ts
		}
	case "updatedAt":
		if t, ok := value.(time.Time); ok {
			a.UpdatedAt = t
		}
	}
}

func workshopField(w *domain.Workshop, field string) (any, bool) {
	switch field {
	case "_id":
		return w.ID, true
	case "artistId":
		return w.ArtistID, true
	case "title":
		return w.Title, true
	case "description":
		return w.Description, true
	case "category":
		return w.Category, true
	case "subcategory":
		return w.Subcategory, true
	case "city":
		return w.City, true
	case "price":
		return w.Price, true
	case "averageRating":
		return w.AverageRating, true
	case "reviewCount":
		return w.ReviewCount, true
	case "enrolled":
		return w.Enrolled, true
	case "revenue":
		return w.Revenue, true
	case "seatsTotal":
		return w.SeatsTotal, true
	case "seatsAvailable":
		return w.SeatsAvailable, true
	case "date":
		return w.Date, true
	case "status":
		return w.Status, true
	case "mode":
		return w.Mode, true
	case "certificate":
		return w.Certificate, true
	case "materialsIncluded":
		return w.MaterialsIncluded, true
	case "tags":
		return w.Tags, true
	case "targetAudience":
		return w.TargetAudience, true
	case "featured":
		return w.Featured, true
	case "featuredOrder":
		return w.FeaturedOrder, true
	case "searchText":
		return w.SearchText, true
	case "createdAt":
		return w.CreatedAt, true
	case "updatedAt":
		return w.UpdatedAt, true
	default:
		return nil, false
	}
}

func setWorkshopField(w *domain.Workshop, field string, value any) {
	switch field {
	case "status":
		if s, ok := value.(string); ok {
			w.Status = s
		}
	case "enrolled":
		if n, ok := toFloat(value); ok {
			w.Enrolled = int(n)
		}
	case "revenue":
		if n, ok := toFloat(value); ok {
			w.Revenue = n
		}
	case "seatsAvailable":
		if n, ok := toFloat(value); ok {
			w.SeatsAvailable = int(n)
		}
	case "averageRating":
		if n, ok := toFloat(value); ok {
			w.AverageRating = n
		}
	case "reviewCount":
		if n, ok := toFloat(value); ok {
			w.ReviewCount = int(n)
		}
	case "searchText":
		if s, ok := value.(string); ok {
			w.SearchText = s
		}
	case "updatedAt":
		if t, ok := value.(time.Time); ok {
			w.UpdatedAt = t
		}
	}
}

func bookingField(b *domain.Booking, field string) (any, bool) {
	switch field {
	case "_id":
		return b.ID, true
	case "workshopId":
		return b.WorkshopID, true
	case "artistId":
		return b.ArtistID, true
	case "userId":
		return b.UserID, true
	case "status":
		return b.Status, true
	case "quantity":
		return b.Quantity, true
	case "amount":
		return b.Amount, true
	case "createdAt":
		return b.CreatedAt, true
	default:
		return nil, false
	}
}

func setBookingField(b *domain.Booking, field string, value any) {
	switch field {
	case "status":
		if s, ok := value.(string); ok {
			b.Status = s
		}
	case "updatedAt":
		// bookings carry no updatedAt field
	}
}

func reviewField(r *domain.Review, field string) (any, bool) {
	switch field {
	case "_id":
		return r.ID, true
	case "artistId":
		return r.ArtistID, true
	case "userName":
		return r.UserName, true
	case "rating":
		return r.Rating, true
	case "comment":
		return r.Comment, true
	case "createdAt":
		return r.CreatedAt, true
	default:
		return nil, false
	}
}

func setReviewField(r *domain.Review, field string, value any) {
	switch field {
	case "rating":
		if n, ok := toFloat(value); ok {
			r.Rating = n
		}
	case "comment":
		if s, ok := value.(string); ok {
			r.Comment = s
		}
	case "updatedAt":
		// reviews carry no updatedAt field
	}
}
