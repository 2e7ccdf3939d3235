package history

import (
	"context"
	"testing"
	"time"

	"achrip/internal/achievements"
	"achrip/internal/components/chrono"
	"achrip/internal/components/db"
	"achrip/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func testCatalog() achievements.Catalog {
	return achievements.Catalog{
		"Alpha": {
			Header: achievements.CollectionHeader{Key: "Alpha", Title: "Alpha", Score: 25, ScoreTotal: 100, Count: 2, CountTotal: 10},
			Items: []achievements.Item{
				{Name: "one", Score: 10, Sequence: 998, Year: 2020, Month: 1, Day: 1, Hour: 10},
				{Name: "two", Score: 15, Sequence: 997, Year: 2020, Month: 1, Day: 1, Hour: 11},
			},
		},
		"Beta": {
			Header: achievements.CollectionHeader{Key: "Beta", Title: "Beta & Co"},
			Items: []achievements.Item{
				{Name: "three", Score: 5, Sequence: 998, Year: 2020, Month: 1, Day: 2},
			},
		},
	}
}

func TestStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	database, err := db.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	clock := &chrono.FixedImpl{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tel := telemetry.NewRecorderAPI()
	store := NewStore(database, clock, tel)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, runs)

	first, err := store.Save(ctx, SaveRequest{
		Gamertag:   "Pedle Zelnip",
		Gamerscore: 12345,
		Increase:   30,
		Catalog:    testCatalog(),
	})
	require.NoError(t, err)
	require.Len(t, first.ID, runIdLength)
	require.Equal(t, 2, first.Collections)
	require.Equal(t, 3, first.Items)

	clock.Time = clock.Time.Add(time.Hour)
	second, err := store.Save(ctx, SaveRequest{
		Gamertag:   "Pedle Zelnip",
		Gamerscore: -1,
		Catalog:    achievements.Catalog{},
	})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	runs, err = store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, second.ID, runs[0].ID)
	require.Equal(t, first.ID, runs[1].ID)
	require.Equal(t, 3, runs[1].Items)
	require.Equal(t, 2, runs[1].Collections)
	require.Equal(t, 30, runs[1].Increase)
	require.Equal(t, int64(12345), runs[1].Gamerscore)
	require.True(t, runs[1].CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	runs, err = store.Runs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	totals, err := store.Totals(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, achievements.Aggregate(testCatalog()), totals)

	totals, err = store.Totals(ctx, second.ID)
	require.NoError(t, err)
	require.Empty(t, totals)

	_, err = store.Totals(ctx, "missing")
	require.ErrorIs(t, err, ErrRunNotFound)

	require.NoError(t, store.Delete(ctx, first.ID))
	_, err = store.Totals(ctx, first.ID)
	require.ErrorIs(t, err, ErrRunNotFound)
	require.ErrorIs(t, store.Delete(ctx, first.ID), ErrRunNotFound)

	require.Empty(t, tel.Reports("broken", ""))
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/nested/history.db"

	database, err := db.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// the schema is applied idempotently
	database, err = db.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, database.Close())
}

func TestIsRemote(t *testing.T) {
	require.True(t, db.IsRemote("libsql://achrip.turso.io"))
	require.True(t, db.IsRemote("https://db.example.com"))
	require.False(t, db.IsRemote("history.db"))
	require.False(t, db.IsRemote(":memory:"))
}
