package db

import (
	"context"
)

type Run struct {
	ID         string
	CreatedAt  int64
	Gamertag   string
	Gamerscore int64
	Increase   int64
}

const createRun = `-- name: CreateRun :exec
insert into run(id, created_at, gamertag, gamerscore, increase)
values (?, ?, ?, ?, ?)
`

type CreateRunParams struct {
	ID         string
	CreatedAt  int64
	Gamertag   string
	Gamerscore int64
	Increase   int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) error {
	_, err := q.db.ExecContext(ctx, createRun,
		arg.ID,
		arg.CreatedAt,
		arg.Gamertag,
		arg.Gamerscore,
		arg.Increase,
	)
	return err
}

const createCollection = `-- name: CreateCollection :exec
insert into collection(run_id, key, title, percent, score, score_total, count, count_total)
values (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateCollectionParams struct {
	RunID      string
	Key        string
	Title      string
	Percent    int64
	Score      int64
	ScoreTotal int64
	Count      int64
	CountTotal int64
}

func (q *Queries) CreateCollection(ctx context.Context, arg CreateCollectionParams) error {
	_, err := q.db.ExecContext(ctx, createCollection,
		arg.RunID,
		arg.Key,
		arg.Title,
		arg.Percent,
		arg.Score,
		arg.ScoreTotal,
		arg.Count,
		arg.CountTotal,
	)
	return err
}

const createItem = `-- name: CreateItem :exec
insert into item(run_id, collection_key, sequence, name, description, image, score, year, month, day, hour, minute)
values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateItemParams struct {
	RunID         string
	CollectionKey string
	Sequence      int64
	Name          string
	Description   string
	Image         string
	Score         int64
	Year          int64
	Month         int64
	Day           int64
	Hour          int64
	Minute        int64
}

func (q *Queries) CreateItem(ctx context.Context, arg CreateItemParams) error {
	_, err := q.db.ExecContext(ctx, createItem,
		arg.RunID,
		arg.CollectionKey,
		arg.Sequence,
		arg.Name,
		arg.Description,
		arg.Image,
		arg.Score,
		arg.Year,
		arg.Month,
		arg.Day,
		arg.Hour,
		arg.Minute,
	)
	return err
}

const getRun = `-- name: GetRun :one
select id, created_at, gamertag, gamerscore, increase from run
where id = ?
`

func (q *Queries) GetRun(ctx context.Context, id string) (Run, error) {
	row := q.db.QueryRowContext(ctx, getRun, id)
	var i Run
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.Gamertag,
		&i.Gamerscore,
		&i.Increase,
	)
	return i, err
}

const listRuns = `-- name: ListRuns :many
select
    run.id, run.created_at, run.gamertag, run.gamerscore, run.increase,
    (select count(*) from collection where collection.run_id = run.id) as collections,
    (select count(*) from item where item.run_id = run.id) as items
from run
order by run.created_at desc, run.id
limit ?
`

type ListRunsRow struct {
	ID          string
	CreatedAt   int64
	Gamertag    string
	Gamerscore  int64
	Increase    int64
	Collections int64
	Items       int64
}

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]ListRunsRow, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRunsRow
	for rows.Next() {
		var i ListRunsRow
		if err := rows.Scan(
			&i.ID,
			&i.CreatedAt,
			&i.Gamertag,
			&i.Gamerscore,
			&i.Increase,
			&i.Collections,
			&i.Items,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getDayTotals = `-- name: GetDayTotals :many
select year, month, day, collection_key, sum(score) as total
from item
where run_id = ?
group by year, month, day, collection_key
order by year, month, day, collection_key
`

type GetDayTotalsRow struct {
	Year          int64
	Month         int64
	Day           int64
	CollectionKey string
	Total         int64
}

func (q *Queries) GetDayTotals(ctx context.Context, runID string) ([]GetDayTotalsRow, error) {
	rows, err := q.db.QueryContext(ctx, getDayTotals, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetDayTotalsRow
	for rows.Next() {
		var i GetDayTotalsRow
		if err := rows.Scan(
			&i.Year,
			&i.Month,
			&i.Day,
			&i.CollectionKey,
			&i.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteRun = `-- name: DeleteRun :exec
delete from run where id = ?
`

func (q *Queries) DeleteRun(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteRun, id)
	return err
}

const deleteRunCollections = `-- name: DeleteRunCollections :exec
delete from collection where run_id = ?
`

func (q *Queries) DeleteRunCollections(ctx context.Context, runID string) error {
	_, err := q.db.ExecContext(ctx, deleteRunCollections, runID)
	return err
}

const deleteRunItems = `-- name: DeleteRunItems :exec
delete from item where run_id = ?
`

func (q *Queries) DeleteRunItems(ctx context.Context, runID string) error {
	_, err := q.db.ExecContext(ctx, deleteRunItems, runID)
	return err
}
