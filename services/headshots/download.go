package headshots

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"loyalty-rankings/lib/textutil"
	"loyalty-rankings/services/records"
)

// ImageFetcher downloads the raw bytes of an image URL.
type ImageFetcher interface {
	DownloadImage(ctx context.Context, link string) ([]byte, error)
}

type DownloadConfig struct {
	Records *records.Store
	// directory the image files land in, e.g. static/headshots. the
	// path written back into the record is relative to this
	// directory's grandparent, the site's static root.
	HeadshotsDir string
	Fetcher      ImageFetcher
}

// Download fetches the headshot of every person record that has a
// headshot_url but no local copy yet, and writes the relative path
// back as headshot_local_url.
func Download(ctx context.Context, cfg DownloadConfig) (Summary, error) {
	ctx, span := tracer.Start(ctx, "headshots.Download")
	defer span.End()

	var summary Summary

	err := os.MkdirAll(cfg.HeadshotsDir, 0777)
	if err != nil {
		return summary, fmt.Errorf("create headshots dir: %w", err)
	}

	names, err := cfg.Records.ListPersons()
	if err != nil {
		return summary, err
	}
	slog.InfoContext(ctx, "found person files to process", "count", len(names))

	for _, filename := range names {
		person, err := cfg.Records.ReadPerson(filename)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read person", "file", filename, "err", err)
			summary.Failed++
			continue
		}
		if person.HeadshotLocalURL != "" {
			slog.InfoContext(ctx, "headshot_local_url already set, skipping", "file", filename)
			summary.Skipped++
			continue
		}
		if person.HeadshotURL == "" {
			slog.WarnContext(ctx, "no headshot_url, skipping", "file", filename)
			summary.Skipped++
			continue
		}

		slog.InfoContext(ctx, "downloading headshot", "name", person.Name, "url", person.HeadshotURL)
		data, err := cfg.Fetcher.DownloadImage(ctx, person.HeadshotURL)
		if err != nil {
			slog.WarnContext(
				ctx, "failed to download headshot",
				"name", person.Name,
				"url", person.HeadshotURL,
				"err", err,
			)
			summary.Failed++
			continue
		}

		imagePath, err := writeImage(cfg.HeadshotsDir, person.Name, person.HeadshotURL, data)
		if err != nil {
			slog.ErrorContext(ctx, "failed to save headshot", "name", person.Name, "err", err)
			summary.Failed++
			continue
		}

		localURL, err := filepath.Rel(filepath.Dir(filepath.Dir(cfg.HeadshotsDir)), imagePath)
		if err != nil {
			localURL = imagePath
		}

		person.HeadshotLocalURL = localURL
		err = cfg.Records.WritePerson(filename, person)
		if err != nil {
			slog.ErrorContext(ctx, "failed to update person", "file", filename, "err", err)
			summary.Failed++
			continue
		}
		slog.InfoContext(ctx, "updated person", "file", filename, "headshot_local_url", localURL)
		summary.Updated++
	}

	return summary, nil
}

// writeImage saves the image under a name derived from the person,
// adding _1, _2, ... when the name is already taken.
func writeImage(dir, personName, imageURL string, data []byte) (string, error) {
	stem := textutil.SafeName(personName)
	ext := imageExtension(imageURL)

	imagePath := filepath.Join(dir, stem+ext)
	for counter := 1; ; counter++ {
		_, err := os.Stat(imagePath)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", err
		}
		imagePath = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}

	err := os.WriteFile(imagePath, data, 0666)
	if err != nil {
		return "", err
	}
	return imagePath, nil
}

// imageExtension pulls the extension off the URL path, defaulting to
// .jpg when there is none or it looks bogus.
func imageExtension(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ".jpg"
	}
	ext := path.Ext(parsed.Path)
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return ext
}
