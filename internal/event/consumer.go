package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/counter"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
	pkgkafka "github.com/Niharika209/kalakendra-discovery/pkg/kafka"
)

// Kafka topics for booking and review domain events consumed by the
// discovery service.
const (
	TopicBookingCreated = "marketplace.booking.created"
	TopicBookingDeleted = "marketplace.booking.deleted"
	TopicReviewCreated  = "marketplace.review.created"
	TopicReviewUpdated  = "marketplace.review.updated"
	TopicReviewDeleted  = "marketplace.review.deleted"
)

// Topics lists every topic the consumer subscribes to.
func Topics() []string {
	return []string{
		TopicBookingCreated,
		TopicBookingDeleted,
		TopicReviewCreated,
		TopicReviewUpdated,
		TopicReviewDeleted,
	}
}

// BookingEventData is the payload carried by booking domain events.
type BookingEventData struct {
	ID         string    `json:"id"`
	WorkshopID string    `json:"workshop_id"`
	ArtistID   string    `json:"artist_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	Quantity   int       `json:"quantity"`
	Amount     float64   `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewEventData is the payload carried by review domain events.
type ReviewEventData struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artist_id"`
	UserName  string    `json:"user_name"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Consumer routes booking and review events onto the counter propagator.
type Consumer struct {
	propagator *counter.Propagator
	logger     *slog.Logger
}

// NewConsumer creates a new event consumer for the discovery service.
func NewConsumer(propagator *counter.Propagator, logger *slog.Logger) *Consumer {
	return &Consumer{
		propagator: propagator,
		logger:     logger,
	}
}

// Handle processes a Kafka event based on its type.
func (c *Consumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	switch event.EventType {
	case TopicBookingCreated:
		return c.handleBooking(ctx, event, c.propagator.OnBookingCreated)
	case TopicBookingDeleted:
		return c.handleBooking(ctx, event, c.propagator.OnBookingDeleted)
	case TopicReviewCreated:
		return c.handleReview(ctx, event, c.propagator.OnReviewCreated)
	case TopicReviewUpdated:
		return c.handleReview(ctx, event, c.propagator.OnReviewUpdated)
	case TopicReviewDeleted:
		return c.handleReview(ctx, event, c.propagator.OnReviewDeleted)
	default:
		c.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *Consumer) handleBooking(ctx context.Context, event *pkgkafka.Event, apply func(context.Context, *domain.Booking) error) error {
	var data BookingEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	booking := &domain.Booking{
		ID:         data.ID,
		WorkshopID: data.WorkshopID,
		ArtistID:   data.ArtistID,
		UserID:     data.UserID,
		Status:     data.Status,
		Quantity:   data.Quantity,
		Amount:     data.Amount,
		CreatedAt:  data.CreatedAt,
	}

	if err := apply(ctx, booking); err != nil {
		return fmt.Errorf("apply %s: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "applied booking event",
		slog.String("event_type", event.EventType),
		slog.String("booking_id", data.ID),
		slog.String("workshop_id", data.WorkshopID),
	)
	return nil
}

func (c *Consumer) handleReview(ctx context.Context, event *pkgkafka.Event, apply func(context.Context, *domain.Review) error) error {
	var data ReviewEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", event.EventType, err)
	}

	review := &domain.Review{
		ID:        data.ID,
		ArtistID:  data.ArtistID,
		UserName:  data.UserName,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
	}

	if err := apply(ctx, review); err != nil {
		return fmt.Errorf("apply %s: %w", event.EventType, err)
	}

	c.logger.InfoContext(ctx, "applied review event",
		slog.String("event_type", event.EventType),
		slog.String("review_id", data.ID),
		slog.String("artist_id", data.ArtistID),
	)
	return nil
}
