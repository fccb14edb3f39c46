package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Retry policy for individual record updates during a bulk reindex.
const (
	reindexMaxAttempts = 3
	reindexBaseDelay   = 100 * time.Millisecond
)

// Reindexer performs the on-demand full recomputation of derived fields
// across the whole catalog, e.g. after a bulk data migration. Records are
// processed in fixed-size batches with a short pause in between, so a full
// sweep never overwhelms the catalog store.
type Reindexer struct {
	catalog    catalog.Accessor
	logger     *slog.Logger
	now        func() time.Time
	batchSize  int
	batchPause time.Duration
}

// NewReindexer creates a reindexer with the given batch size and
// inter-batch pause.
func NewReindexer(cat catalog.Accessor, logger *slog.Logger, batchSize int, batchPause time.Duration) *Reindexer {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Reindexer{
		catalog:    cat,
		logger:     logger,
		now:        time.Now,
		batchSize:  batchSize,
		batchPause: batchPause,
	}
}

// Run recomputes derived fields for every artist and workshop. A single
// record's permanent failure is logged and skipped; it never aborts the
// batch.
func (r *Reindexer) Run(ctx context.Context) (Report, error) {
	artistReport, err := r.reindexArtists(ctx)
	if err != nil {
		return artistReport, err
	}

	workshopReport, err := r.reindexWorkshops(ctx)
	return Report{
		Processed: artistReport.Processed + workshopReport.Processed,
		Failures:  artistReport.Failures + workshopReport.Failures,
	}, err
}

func (r *Reindexer) reindexArtists(ctx context.Context) (Report, error) {
	var report Report
	sort := domain.Sort{{Field: "_id", Desc: false}}

	for skip := int64(0); ; skip += int64(r.batchSize) {
		batch, err := r.catalog.Artists.Find(ctx, catalog.Query{
			Sort:  sort,
			Skip:  skip,
			Limit: int64(r.batchSize),
		})
		if err != nil {
			return report, fmt.Errorf("reindex artists: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			a := &batch[i]
			if err := r.updateWithRetry(ctx, func() error {
				return r.catalog.Artists.UpdateByID(ctx, a.ID, r.artistFields(a))
			}); err != nil {
				report.Failures++
				r.logger.ErrorContext(ctx, "artist reindex failed, skipping record",
					slog.String("artist_id", a.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			report.Processed++
		}

		if len(batch) < r.batchSize {
			break
		}
		r.pause(ctx)
	}
	return report, nil
}

func (r *Reindexer) reindexWorkshops(ctx context.Context) (Report, error) {
	var report Report
	now := r.now().UTC()
	sort := domain.Sort{{Field: "_id", Desc: false}}

	for skip := int64(0); ; skip += int64(r.batchSize) {
		batch, err := r.catalog.Workshops.Find(ctx, catalog.Query{
			Sort:  sort,
			Skip:  skip,
			Limit: int64(r.batchSize),
		})
		if err != nil {
			return report, fmt.Errorf("reindex workshops: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			w := &batch[i]
			fields := map[string]any{
				"searchText": workshopSearchText(w),
			}
			if w.Status == domain.WorkshopActive && w.Date.Before(now) {
				fields["status"] = domain.WorkshopCompleted
			}
			if err := r.updateWithRetry(ctx, func() error {
				return r.catalog.Workshops.UpdateByID(ctx, w.ID, fields)
			}); err != nil {
				report.Failures++
				r.logger.ErrorContext(ctx, "workshop reindex failed, skipping record",
					slog.String("workshop_id", w.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			report.Processed++
		}

		if len(batch) < r.batchSize {
			break
		}
		r.pause(ctx)
	}
	return report, nil
}

func (r *Reindexer) artistFields(a *domain.Artist) map[string]any {
	now := r.now().UTC()
	fields := map[string]any{
		"searchText": artistSearchText(a),
	}
	if next := a.NextOpenDate(now); next != nil {
		fields["nextAvailableDate"] = *next
	} else {
		fields["isAvailable"] = false
		fields["nextAvailableDate"] = nil
	}
	return fields
}

// updateWithRetry retries one record's update with exponential backoff
// (base delay doubled per attempt, fixed attempt cap).
func (r *Reindexer) updateWithRetry(ctx context.Context, update func() error) error {
	var err error
	for attempt := 0; attempt < reindexMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := reindexBaseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = update(); err == nil {
			return nil
		}
	}
	return err
}

func (r *Reindexer) pause(ctx context.Context) {
	if r.batchPause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.batchPause):
	}
}

func artistSearchText(a *domain.Artist) string {
	parts := []string{a.Name, a.Category, a.City}
	parts = append(parts, a.Specialties...)
	parts = append(parts, a.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func workshopSearchText(w *domain.Workshop) string {
	parts := []string{w.Title, w.Category, w.Subcategory, w.City}
	parts = append(parts, w.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
