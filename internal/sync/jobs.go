package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Job names.
const (
	JobAvailabilityRefresh = "availability_refresh"
	JobLifecycleTransition = "lifecycle_transition"
	JobPopularityRecompute = "popularity_recompute"
	JobStalenessCheck      = "staleness_check"
	JobFullReindex         = "full_reindex"
)

// Report summarizes one job run.
type Report struct {
	Processed int
	Failures  int
}

// Jobs implements the scheduled recomputation of derived catalog fields.
// Each job mutates a disjoint set of derived fields, so different jobs may
// run concurrently with each other and with ordinary requests.
type Jobs struct {
	catalog catalog.Accessor
	logger  *slog.Logger
	now     func() time.Time

	stalenessWindow    time.Duration
	stalenessThreshold int
}

// NewJobs creates the job implementations.
func NewJobs(cat catalog.Accessor, logger *slog.Logger, stalenessWindow time.Duration, stalenessThreshold int) *Jobs {
	return &Jobs{
		catalog:            cat,
		logger:             logger,
		now:                time.Now,
		stalenessWindow:    stalenessWindow,
		stalenessThreshold: stalenessThreshold,
	}
}

// RefreshAvailability recomputes each available artist's next open calendar
// date. Artists with no future date holding an open slot are flagged
// unavailable. A single artist's update failure is logged and skipped.
func (j *Jobs) RefreshAvailability(ctx context.Context) (Report, error) {
	now := j.now().UTC()

	artists, err := j.catalog.Artists.Find(ctx, catalog.Query{
		Filter: domain.Filter{}.Eq("isAvailable", true),
	})
	if err != nil {
		return Report{}, fmt.Errorf("availability refresh: %w", err)
	}

	var report Report
	for i := range artists {
		a := &artists[i]
		next := a.NextOpenDate(now)

		fields := map[string]any{}
		if next == nil {
			if a.IsAvailable || a.NextAvailableDate != nil {
				fields["isAvailable"] = false
				fields["nextAvailableDate"] = nil
			}
		} else if a.NextAvailableDate == nil || !a.NextAvailableDate.Equal(*next) {
			fields["nextAvailableDate"] = *next
		}
		if len(fields) == 0 {
			continue
		}

		if err := j.catalog.Artists.UpdateByID(ctx, a.ID, fields); err != nil {
			report.Failures++
			j.logger.ErrorContext(ctx, "availability update failed",
				slog.String("artist_id", a.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Processed++
	}
	return report, nil
}

// TransitionWorkshops moves every active workshop whose date has passed to
// completed, and reports how many rows transitioned.
func (j *Jobs) TransitionWorkshops(ctx context.Context) (Report, error) {
	now := j.now().UTC()

	filter := domain.Filter{}.
		Lt("date", now).
		Eq("status", domain.WorkshopActive)

	n, err := j.catalog.Workshops.UpdateMany(ctx, filter, map[string]any{
		"status": domain.WorkshopCompleted,
	})
	if err != nil {
		return Report{}, fmt.Errorf("lifecycle transition: %w", err)
	}
	return Report{Processed: int(n)}, nil
}

// RecomputePopularity recomputes every artist's total-bookings counter as
// the count of confirmed or pending bookings across all workshops owned by
// that artist.
func (j *Jobs) RecomputePopularity(ctx context.Context) (Report, error) {
	artists, err := j.catalog.Artists.Find(ctx, catalog.Query{})
	if err != nil {
		return Report{}, fmt.Errorf("popularity recompute: %w", err)
	}

	var report Report
	for i := range artists {
		a := &artists[i]
		total, err := j.artistBookings(ctx, a.ID)
		if err != nil {
			report.Failures++
			j.logger.ErrorContext(ctx, "popularity recompute failed",
				slog.String("artist_id", a.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if total == a.TotalBookings {
			continue
		}
		if err := j.catalog.Artists.UpdateByID(ctx, a.ID, map[string]any{"totalBookings": total}); err != nil {
			report.Failures++
			j.logger.ErrorContext(ctx, "popularity update failed",
				slog.String("artist_id", a.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Processed++
	}
	return report, nil
}

func (j *Jobs) artistBookings(ctx context.Context, artistID string) (int, error) {
	workshops, err := j.catalog.Workshops.Find(ctx, catalog.Query{
		Filter: domain.Filter{}.Eq("artistId", artistID),
	})
	if err != nil {
		return 0, err
	}
	if len(workshops) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(workshops))
	for i := range workshops {
		ids = append(ids, workshops[i].ID)
	}

	n, err := j.catalog.Bookings.Count(ctx, domain.Filter{}.
		In("workshopId", ids).
		In("status", []string{domain.BookingConfirmed, domain.BookingPending}),
	)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// CheckStaleness counts available artists whose records have not been
// refreshed within the staleness window and warns when the count exceeds
// the threshold. It is a monitoring signal only and never mutates data.
func (j *Jobs) CheckStaleness(ctx context.Context) (Report, error) {
	cutoff := j.now().UTC().Add(-j.stalenessWindow)

	n, err := j.catalog.Artists.Count(ctx, domain.Filter{}.
		Eq("isAvailable", true).
		Lt("updatedAt", cutoff),
	)
	if err != nil {
		return Report{}, fmt.Errorf("staleness check: %w", err)
	}

	staleAvailableArtists.Set(float64(n))
	if int(n) > j.stalenessThreshold {
		j.logger.WarnContext(ctx, "stale available artists above threshold",
			slog.Int64("stale", n),
			slog.Int("threshold", j.stalenessThreshold),
			slog.Duration("window", j.stalenessWindow),
		)
	}
	return Report{Processed: int(n)}, nil
}
