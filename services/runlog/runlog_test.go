package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"loyalty-rankings/lib/testutil"
	"loyalty-rankings/services/runlog/db"

	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	result, cleanup := testutil.SetupJob(t, testutil.JobParams{
		Name:     "services/runlog",
		DbSchema: db.Schema,
	})
	defer cleanup()

	store := NewStore(result.DB)
	ctx := context.Background()

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Run{
		Job:        "export",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Created:    100,
		Skipped:    2,
	}))
	require.NoError(t, store.Record(ctx, Run{
		Job:        "headshots-resolve",
		StartedAt:  started.Add(time.Minute),
		FinishedAt: started.Add(2 * time.Minute),
		Updated:    98,
		Failed:     2,
		Note:       "2 articles without an infobox image",
	}))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first
	require.Equal(t, "headshots-resolve", runs[0].Job)
	require.Equal(t, 98, runs[0].Updated)
	require.Equal(t, 2, runs[0].Failed)
	require.Equal(t, "2 articles without an infobox image", runs[0].Note)

	require.Equal(t, "export", runs[1].Job)
	require.Equal(t, 100, runs[1].Created)
	require.True(t, runs[1].StartedAt.Equal(started))
}

func TestRecentLimit(t *testing.T) {
	result, cleanup := testutil.SetupJob(t, testutil.JobParams{
		Name:     "services/runlog",
		DbSchema: db.Schema,
	})
	defer cleanup()

	store := NewStore(result.DB)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, Run{Job: "markdown"}))
	}

	runs, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestOpenDBCreatesParentDir(t *testing.T) {
	dir := t.TempDir()

	database, err := OpenDB(filepath.Join(dir, "data", "runs.db"))
	require.NoError(t, err)
	defer database.Close()

	store := NewStore(database)
	require.NoError(t, store.Record(context.Background(), Run{Job: "export"}))

	runs, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
