// Package history archives the catalog of every run so the totals of past
// runs can be looked up later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"achrip/internal/achievements"
	"achrip/internal/components/assert"
	"achrip/internal/components/chrono"
	"achrip/internal/components/db"
	"achrip/internal/components/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_store_save   = "store.save"
	report_store_delete = "store.delete"
)

const runIdLength = 12

var ErrRunNotFound = errors.New("run not found")

var tracer = telemetry.Tracer("achrip.history")

type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	time   chrono.API
	tel    telemetry.API
}

func NewStore(database *sql.DB, time chrono.API, tel telemetry.API) Store {
	assert.NotNil(database)
	assert.NotNil(time)
	assert.NotNil(tel)

	return Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		time:   time,
		tel:    telemetry.NewScopedAPI("history", tel),
	}
}

type Run struct {
	ID          string
	CreatedAt   time.Time
	Gamertag    string
	Gamerscore  int64
	Increase    int
	Collections int
	Items       int
}

type SaveRequest struct {
	Gamertag   string
	Gamerscore int64
	Increase   int
	Catalog    achievements.Catalog
}

// Save stores the catalog of a run in a single transaction.
func (s Store) Save(ctx context.Context, req SaveRequest) (Run, error) {
	ctx, span := tracer.Start(ctx, "Store.Save")
	defer span.End()

	id, err := random.String(runIdLength)
	if err != nil {
		return Run{}, fmt.Errorf("generate run id: %w", err)
	}
	run := Run{
		ID:          id,
		CreatedAt:   s.time.Now(),
		Gamertag:    req.Gamertag,
		Gamerscore:  req.Gamerscore,
		Increase:    req.Increase,
		Collections: len(req.Catalog),
		Items:       req.Catalog.ItemCount(),
	}
	span.SetAttributes(attribute.String("run_id", id))

	err = s.save(ctx, run, req.Catalog)
	if err != nil {
		s.tel.ReportBroken(report_store_save, err, id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save run")
		return Run{}, err
	}
	return run, nil
}

func (s Store) save(ctx context.Context, run Run, catalog achievements.Catalog) error {
	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	err = txqry.CreateRun(ctx, db.CreateRunParams{
		ID:         run.ID,
		CreatedAt:  run.CreatedAt.Unix(),
		Gamertag:   run.Gamertag,
		Gamerscore: run.Gamerscore,
		Increase:   int64(run.Increase),
	})
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	for _, key := range catalog.Keys() {
		collection := catalog[key]
		header := collection.Header
		err = txqry.CreateCollection(ctx, db.CreateCollectionParams{
			RunID:      run.ID,
			Key:        key,
			Title:      header.Title,
			Percent:    int64(header.Percent),
			Score:      int64(header.Score),
			ScoreTotal: int64(header.ScoreTotal),
			Count:      int64(header.Count),
			CountTotal: int64(header.CountTotal),
		})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", key, err)
		}

		for _, item := range collection.Items {
			err = txqry.CreateItem(ctx, db.CreateItemParams{
				RunID:         run.ID,
				CollectionKey: key,
				Sequence:      int64(item.Sequence),
				Name:          item.Name,
				Description:   item.Description,
				Image:         item.Image,
				Score:         int64(item.Score),
				Year:          int64(item.Year),
				Month:         int64(item.Month),
				Day:           int64(item.Day),
				Hour:          int64(item.Hour),
				Minute:        int64(item.Minute),
			})
			if err != nil {
				return fmt.Errorf("create item %s: %w", item.Name, err)
			}
		}
	}

	return commit()
}

// Runs returns the latest runs, newest first.
func (s Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	ctx, span := tracer.Start(ctx, "Store.Runs")
	defer span.End()

	rows, err := s.qry.ListRuns(ctx, int64(limit))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]Run, len(rows))
	for i, r := range rows {
		runs[i] = Run{
			ID:          r.ID,
			CreatedAt:   time.Unix(r.CreatedAt, 0).In(s.time.Location()),
			Gamertag:    r.Gamertag,
			Gamerscore:  r.Gamerscore,
			Increase:    int(r.Increase),
			Collections: int(r.Collections),
			Items:       int(r.Items),
		}
	}
	return runs, nil
}

// Totals returns the day totals of a stored run.
func (s Store) Totals(ctx context.Context, runID string) (achievements.DayTotals, error) {
	ctx, span := tracer.Start(ctx, "Store.Totals")
	defer span.End()

	_, err := s.qry.GetRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.qry.GetDayTotals(ctx, runID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get day totals: %w", err)
	}

	totals := achievements.DayTotals{}
	for _, r := range rows {
		totals[achievements.DayKey{
			Year:  int(r.Year),
			Month: int(r.Month),
			Day:   int(r.Day),
			Game:  r.CollectionKey,
		}] = int(r.Total)
	}
	return totals, nil
}

// Delete removes a run together with its collections and items.
func (s Store) Delete(ctx context.Context, runID string) error {
	ctx, span := tracer.Start(ctx, "Store.Delete")
	defer span.End()

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	_, err = txqry.GetRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	for _, del := range []func(context.Context, string) error{
		txqry.DeleteRunItems,
		txqry.DeleteRunCollections,
		txqry.DeleteRun,
	} {
		err = del(ctx, runID)
		if err != nil {
			s.tel.ReportBroken(report_store_delete, err, runID)
			return fmt.Errorf("delete run: %w", err)
		}
	}
	return commit()
}
