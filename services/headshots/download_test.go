package headshots

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"loyalty-rankings/lib/testutil"
	"loyalty-rankings/services/records"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	data  map[string][]byte
	calls int
}

func (f *fakeFetcher) DownloadImage(_ context.Context, link string) ([]byte, error) {
	f.calls++
	data, ok := f.data[link]
	if !ok {
		return nil, fmt.Errorf("GET %s: 404 Not Found", link)
	}
	return data, nil
}

func TestDownload(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/headshots"})
	defer cleanup()

	dir := t.TempDir()
	store, err := records.NewStore(filepath.Join(dir, "output"))
	require.NoError(t, err)
	headshotsDir := filepath.Join(dir, "static", "headshots")

	require.NoError(t, store.WritePerson(records.PersonFilename(1), records.Person{
		Name:        "Bernie Moreno",
		HeadshotURL: "https://upload.wikimedia.org/wikipedia/commons/a/ab/Bernie_Moreno.jpg",
	}))
	require.NoError(t, store.WritePerson(records.PersonFilename(2), records.Person{
		Name: "No Headshot",
	}))

	fetcher := &fakeFetcher{data: map[string][]byte{
		"https://upload.wikimedia.org/wikipedia/commons/a/ab/Bernie_Moreno.jpg": []byte("jpegbytes"),
	}}
	summary, err := Download(context.Background(), DownloadConfig{
		Records:      store,
		HeadshotsDir: headshotsDir,
		Fetcher:      fetcher,
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Updated: 1, Skipped: 1}, summary)

	person, err := store.ReadPerson(records.PersonFilename(1))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("static", "headshots", "bernie_moreno.jpg"), person.HeadshotLocalURL)

	data, err := os.ReadFile(filepath.Join(headshotsDir, "bernie_moreno.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpegbytes", string(data))
}

func TestDownloadCollisionSuffix(t *testing.T) {
	dir := t.TempDir()

	first, err := writeImage(dir, "Bernie Moreno", "https://x/f.jpg", []byte("a"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "bernie_moreno.jpg"), first)

	second, err := writeImage(dir, "Bernie Moreno", "https://x/f.jpg", []byte("b"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "bernie_moreno_1.jpg"), second)

	third, err := writeImage(dir, "Bernie Moreno", "https://x/f.jpg", []byte("c"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "bernie_moreno_2.jpg"), third)
}

func TestImageExtension(t *testing.T) {
	require.Equal(t, ".png", imageExtension("https://upload.wikimedia.org/a/ab/Someone.png"))
	require.Equal(t, ".jpg", imageExtension("https://upload.wikimedia.org/a/ab/Someone"))
	require.Equal(t, ".jpg", imageExtension("https://upload.wikimedia.org/a/ab/archive.tar.bzip2"))
}

func TestDownloadLeavesFailedRecordAlone(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/headshots"})
	defer cleanup()

	dir := t.TempDir()
	store, err := records.NewStore(filepath.Join(dir, "output"))
	require.NoError(t, err)

	require.NoError(t, store.WritePerson(records.PersonFilename(1), records.Person{
		Name:        "Gone Person",
		HeadshotURL: "https://upload.wikimedia.org/missing.jpg",
	}))

	summary, err := Download(context.Background(), DownloadConfig{
		Records:      store,
		HeadshotsDir: filepath.Join(dir, "static", "headshots"),
		Fetcher:      &fakeFetcher{},
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Failed: 1}, summary)

	person, err := store.ReadPerson(records.PersonFilename(1))
	require.NoError(t, err)
	require.Equal(t, "", person.HeadshotLocalURL)
}
