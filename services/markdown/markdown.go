package markdown

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"loyalty-rankings/lib/textutil"
	"loyalty-rankings/services/records"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/markdown")

type Config struct {
	Input     string
	OutputDir string
	Format    Format
}

type Summary struct {
	FilesCreated int
	// rows skipped because the member file already exists
	AlreadyExists int
	// vacant seats and repeated header rows
	RowsSkipped int
	RowsFailed  int
}

// Run generates one markdown file per member from a spreadsheet.
// Existing files are never overwritten, so a rerun only fills gaps.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	ctx, span := tracer.Start(ctx, "markdown.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("input", cfg.Input),
		attribute.String("format", string(cfg.Format)),
	)

	var summary Summary

	err := os.MkdirAll(cfg.OutputDir, 0777)
	if err != nil {
		return summary, fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Open(cfg.Input)
	if err != nil {
		return summary, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	parse, err := cfg.Format.rowParser(reader)
	if err != nil {
		return summary, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed row", "err", err)
			summary.RowsFailed++
			continue
		}

		member, ok := parse(row)
		if !ok {
			summary.RowsSkipped++
			continue
		}
		if strings.EqualFold(member.Name, records.VacantSeatHolder) {
			summary.RowsSkipped++
			continue
		}

		filename := textutil.CleanFilename(member.Name) + ".md"
		path := filepath.Join(cfg.OutputDir, filename)
		_, err = os.Stat(path)
		if err == nil {
			slog.InfoContext(ctx, "file already exists, skipping", "path", path)
			summary.AlreadyExists++
			continue
		}
		if !os.IsNotExist(err) {
			slog.ErrorContext(ctx, "failed to stat member file", "path", path, "err", err)
			summary.RowsFailed++
			continue
		}

		err = os.WriteFile(path, []byte(render(member)), 0666)
		if err != nil {
			slog.ErrorContext(ctx, "failed to write member file", "path", path, "err", err)
			summary.RowsFailed++
			continue
		}
		slog.InfoContext(ctx, "created member file", "path", path)
		summary.FilesCreated++
	}

	return summary, nil
}

type field struct {
	Key   string
	Value string
	Link  bool
}

type member struct {
	Name   string
	Fields []field
}

func render(m member) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Name)
	for _, f := range m.Fields {
		if f.Value == "" {
			continue
		}
		if f.Link {
			fmt.Fprintf(&b, "**%s**: [%s](%s)\n\n", f.Key, f.Value, f.Value)
			continue
		}
		fmt.Fprintf(&b, "**%s**: %s\n\n", f.Key, f.Value)
	}
	return b.String()
}
