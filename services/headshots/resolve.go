package headshots

import (
	"context"
	"log/slog"

	"loyalty-rankings/services/records"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/headshots")

// URLResolver turns a wikipedia article URL into a portrait image URL.
type URLResolver interface {
	HeadshotURL(ctx context.Context, articleURL string) (string, error)
}

type ResolveConfig struct {
	Records  *records.Store
	Resolver URLResolver
}

type Summary struct {
	Updated int
	Skipped int
	Failed  int
}

// Resolve patches every person record that has a wiki URL but no
// headshot URL yet. Records that already carry one are left alone so
// the job can be re-run after partial failures.
func Resolve(ctx context.Context, cfg ResolveConfig) (Summary, error) {
	ctx, span := tracer.Start(ctx, "headshots.Resolve")
	defer span.End()

	var summary Summary

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
		if person.HeadshotURL != "" {
			slog.InfoContext(ctx, "headshot_url already set, skipping", "file", filename)
			summary.Skipped++
			continue
		}
		if person.WikiURL == "" {
			slog.WarnContext(ctx, "no person_wiki_url, skipping", "file", filename)
			summary.Skipped++
			continue
		}

		slog.InfoContext(ctx, "resolving headshot", "name", person.Name, "article", person.WikiURL)
		headshotURL, err := cfg.Resolver.HeadshotURL(ctx, person.WikiURL)
		if err != nil {
			slog.WarnContext(
				ctx, "no headshot found",
				"name", person.Name,
				"article", person.WikiURL,
				"err", err,
			)
			summary.Failed++
			continue
		}

		person.HeadshotURL = headshotURL
		err = cfg.Records.WritePerson(filename, person)
		if err != nil {
			slog.ErrorContext(ctx, "failed to update person", "file", filename, "err", err)
			summary.Failed++
			continue
		}
		slog.InfoContext(ctx, "updated person", "file", filename, "headshot_url", headshotURL)
		summary.Updated++
	}

	span.SetAttributes(
		attribute.Int("updated", summary.Updated),
		attribute.Int("skipped", summary.Skipped),
		attribute.Int("failed", summary.Failed),
	)
	return summary, nil
}
