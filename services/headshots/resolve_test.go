package headshots

import (
	"context"
	"testing"

	"loyalty-rankings/lib/scrapers/wikipedia"
	"loyalty-rankings/lib/testutil"
	"loyalty-rankings/services/records"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	urls  map[string]string
	calls int
}

func (f *fakeResolver) HeadshotURL(_ context.Context, articleURL string) (string, error) {
	f.calls++
	link, ok := f.urls[articleURL]
	if !ok {
		return "", wikipedia.ErrNoHeadshot
	}
	return link, nil
}

func TestResolve(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/headshots"})
	defer cleanup()

	store, err := records.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.WritePerson(records.PersonFilename(1), records.Person{
		Name:    "Bernie Moreno",
		WikiURL: "https://en.wikipedia.org/wiki/Bernie_Moreno",
	}))
	require.NoError(t, store.WritePerson(records.PersonFilename(2), records.Person{
		Name:        "Jon Husted",
		WikiURL:     "https://en.wikipedia.org/wiki/Jon_Husted",
		HeadshotURL: "https://upload.wikimedia.org/already/there.jpg",
	}))
	require.NoError(t, store.WritePerson(records.PersonFilename(3), records.Person{
		Name: "No Article",
	}))
	require.NoError(t, store.WritePerson(records.PersonFilename(4), records.Person{
		Name:    "Camera Shy",
		WikiURL: "https://en.wikipedia.org/wiki/Camera_Shy",
	}))

	resolver := &fakeResolver{urls: map[string]string{
		"https://en.wikipedia.org/wiki/Bernie_Moreno": "https://upload.wikimedia.org/wikipedia/commons/a/ab/Bernie_Moreno.jpg",
	}}
	summary, err := Resolve(context.Background(), ResolveConfig{
		Records:  store,
		Resolver: resolver,
	})
	require.NoError(t, err)
	require.Equal(t, Summary{Updated: 1, Skipped: 2, Failed: 1}, summary)
	// records with a headshot or without an article never hit the network
	require.Equal(t, 2, resolver.calls)

	person, err := store.ReadPerson(records.PersonFilename(1))
	require.NoError(t, err)
	require.Equal(t, "https://upload.wikimedia.org/wikipedia/commons/a/ab/Bernie_Moreno.jpg", person.HeadshotURL)

	// the record that failed to resolve is left unmodified
	person, err = store.ReadPerson(records.PersonFilename(4))
	require.NoError(t, err)
	require.Equal(t, "", person.HeadshotURL)
}

func TestResolveIdempotent(t *testing.T) {
	_, cleanup := testutil.SetupJob(t, testutil.JobParams{Name: "services/headshots"})
	defer cleanup()

	store, err := records.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.WritePerson(records.PersonFilename(1), records.Person{
		Name:    "Bernie Moreno",
		WikiURL: "https://en.wikipedia.org/wiki/Bernie_Moreno",
	}))

	resolver := &fakeResolver{urls: map[string]string{
		"https://en.wikipedia.org/wiki/Bernie_Moreno": "https://upload.wikimedia.org/b.jpg",
	}}
	cfg := ResolveConfig{Records: store, Resolver: resolver}

	_, err = Resolve(context.Background(), cfg)
	require.NoError(t, err)
	summary, err := Resolve(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, Summary{Skipped: 1}, summary)
	require.Equal(t, 1, resolver.calls)
}
