package achievements

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"achrip/internal/components/assert"
	"achrip/internal/components/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_reader_read      = "reader.read"
	report_reader_read_file = "reader.read-file"
	report_reader_no_header = "reader.no-header"
)

var tracer = telemetry.Tracer("achrip.achievements")
var meter = telemetry.Meter("achrip.achievements")
var documentCounter, _ = meter.Int64Counter("documents")
var itemCounter, _ = meter.Int64Counter("items")

type ReaderOptions struct {
	// Pattern is the glob matched against file names in the directory.
	Pattern string
	// Exclude lists base names that are never read, ex. the games list.
	Exclude []string
	// Location is the time zone item times are converted into, nil keeps UTC.
	Location *time.Location
}

// Reader builds a Catalog out of a directory of saved achievement pages.
type Reader struct {
	tel      telemetry.API
	progress telemetry.Progress
	options  ReaderOptions
}

func NewReader(tel telemetry.API, progress telemetry.Progress, options ReaderOptions) Reader {
	assert.NotNil(tel)
	assert.NotEmptyStr(options.Pattern)

	return Reader{
		tel:      telemetry.NewScopedAPI("achievements", tel),
		progress: progress,
		options:  options,
	}
}

// Stats counts what happened during a Read.
type Stats struct {
	Documents int
	Skipped   int
	Items     int
}

// pages lists the files directly in dir whose name matches the pattern, in
// name order. dir itself is never read as a pattern.
func (r Reader) pages(dir string) ([]string, error) {
	if _, err := filepath.Match(r.options.Pattern, ""); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, _ := filepath.Match(r.options.Pattern, entry.Name())
		if matched {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// Read parses every matching page in dir. Pages without a header are
// skipped, any failure to read or decode a page aborts the read.
func (r Reader) Read(ctx context.Context, dir string) (Catalog, Stats, error) {
	ctx, span := tracer.Start(ctx, "Reader.Read")
	defer span.End()

	paths, err := r.pages(dir)
	if err != nil {
		r.tel.ReportBroken(report_reader_read, err, dir, r.options.Pattern)
		span.SetStatus(codes.Error, err.Error())
		return nil, Stats{}, fmt.Errorf("list pages: %w", err)
	}

	catalog := Catalog{}
	var stats Stats
	for _, path := range paths {
		if slices.Contains(r.options.Exclude, filepath.Base(path)) {
			continue
		}
		r.progress.Printf("reader: processing %s...", filepath.Base(path))

		collection, ok, err := r.ReadFile(ctx, path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "read file")
			return nil, stats, err
		}
		stats.Documents++
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Items += len(collection.Items)
		catalog[collection.Header.Key] = collection
	}

	span.SetAttributes(
		attribute.Int("documents", stats.Documents),
		attribute.Int("skipped", stats.Skipped),
		attribute.Int("collections", len(catalog)),
	)
	r.tel.ReportCount("documents", int64(stats.Documents))
	r.tel.ReportCount("skipped", int64(stats.Skipped))

	return catalog, stats, nil
}

// ReadFile parses a single page, ok is false if the page has no header.
func (r Reader) ReadFile(ctx context.Context, path string) (Collection, bool, error) {
	ctx, span := tracer.Start(ctx, "Reader.ReadFile")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	contents, err := os.ReadFile(path)
	if err != nil {
		r.tel.ReportBroken(report_reader_read_file, err, path)
		span.SetStatus(codes.Error, err.Error())
		return Collection{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	collection, ok, err := Extract(string(contents))
	if err != nil {
		r.tel.ReportBroken(report_reader_read_file, err, path)
		return Collection{}, false, fmt.Errorf("extract %s: %w", path, err)
	}
	if !ok {
		r.tel.ReportWarning(report_reader_no_header, path)
		documentCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "skipped")))
		return Collection{}, false, nil
	}

	collection, err = collection.Decode()
	if err != nil {
		r.tel.ReportBroken(report_reader_read_file, err, path)
		return Collection{}, false, fmt.Errorf("decode %s: %w", path, err)
	}

	progress := r.progress.Nest()
	for i, item := range collection.Items {
		collection.Items[i] = item.In(r.options.Location)
		progress.Printf("reader: found %s", item.Name)
	}

	documentCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "parsed")))
	itemCounter.Add(ctx, int64(len(collection.Items)))
	r.tel.ReportDebug("parsed page", path, collection.Header.Key, len(collection.Items))

	return collection, true, nil
}
