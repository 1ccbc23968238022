package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/spf13/pflag"
)

// filterFlags holds the raw flag values shared by history list/export.
type filterFlags struct {
	category      string
	since         string
	until         string
	includeBreaks bool
	limit         int
}

// addFilterFlags registers the shared history filter flags on a flag set.
func addFilterFlags(fs *pflag.FlagSet, f *filterFlags) {
	fs.StringVar(&f.category, "category", "", "Filter by category name")
	fs.StringVar(&f.since, "since", "", "Only records on or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.until, "until", "", "Only records on or before this date (YYYY-MM-DD)")
	fs.BoolVar(&f.includeBreaks, "breaks", false, "Include break records")
	fs.IntVar(&f.limit, "limit", 100, "Maximum number of records")
}

// toRecordFilter resolves flag values into a repository filter, translating
// the category name to its ID.
func (f *filterFlags) toRecordFilter(ctx context.Context, app *App) (repository.RecordFilter, error) {
	filter := repository.RecordFilter{
		IncludeBreaks: f.includeBreaks,
		Limit:         f.limit,
	}

	if f.category != "" {
		cat, err := app.Categories.GetByName(ctx, f.category)
		if err != nil {
			return filter, fmt.Errorf("resolving category %q: %w", f.category, err)
		}
		filter.CategoryID = cat.ID
	}
	if f.since != "" {
		t, err := time.ParseInLocation("2006-01-02", f.since, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since date %q (want YYYY-MM-DD)", f.since)
		}
		filter.Since = &t
	}
	if f.until != "" {
		t, err := time.ParseInLocation("2006-01-02", f.until, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --until date %q (want YYYY-MM-DD)", f.until)
		}
		// Inclusive through the end of the named day.
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		filter.Until = &end
	}
	return filter, nil
}
