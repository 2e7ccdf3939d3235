package render

import (
	"context"
	"fmt"
	"io"
	"slices"

	"achrip/internal/achievements"
	"achrip/internal/components/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// CSVLines returns the item lines of the sheet, sorted, followed by the day
// total lines, sorted by key. Games are named by their catalog key so a
// title holding ';' cannot add a column.
func CSVLines(catalog achievements.Catalog, progress telemetry.Progress) (items []string, totals []string) {
	for _, key := range catalog.Keys() {
		collection := catalog[key]
		progress.Printf("CSV: Processing %s...", key)

		nested := progress.Nest()
		for _, item := range collection.Items {
			nested.Printf("CSV: processing %s", item.Name)
			items = append(items, fmt.Sprintf(
				"%s--%d;%s;%s;%s;%d",
				item.Timestamp(), item.Sequence,
				key, item.Name, item.Description, item.Score,
			))
		}
	}
	slices.Sort(items)

	progress.Print("CSV: Processing daily totals")
	dayTotals := achievements.Aggregate(catalog)
	for _, key := range dayTotals.Keys() {
		totals = append(totals, fmt.Sprintf("%s;%d", key, dayTotals[key]))
	}

	return items, totals
}

// WriteCSV writes the sheet: one line per item, two blank lines, then one
// line per game and day.
func WriteCSV(ctx context.Context, w io.Writer, catalog achievements.Catalog, progress telemetry.Progress) error {
	_, span := tracer.Start(ctx, "WriteCSV")
	defer span.End()

	items, totals := CSVLines(catalog, progress)
	span.SetAttributes(
		attribute.Int("items", len(items)),
		attribute.Int("day_totals", len(totals)),
	)

	progress.Print("CSV: writing CSV file")
	for _, line := range items {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n\n"); err != nil {
		return err
	}
	for _, line := range totals {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	progress.Print("CSV: completed....")

	return nil
}

func WriteCSVFile(ctx context.Context, path string, catalog achievements.Catalog, progress telemetry.Progress) error {
	return WriteFile(path, func(w io.Writer) error {
		return WriteCSV(ctx, w, catalog, progress)
	})
}
