package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"loyalty-rankings/lib/textutil"
	"loyalty-rankings/services/records"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/export")

type Chamber string

const (
	ChamberSenate Chamber = "senate"
	ChamberHouse  Chamber = "house"
)

func ParseChamber(s string) (Chamber, error) {
	switch Chamber(strings.ToLower(s)) {
	case ChamberSenate:
		return ChamberSenate, nil
	case ChamberHouse:
		return ChamberHouse, nil
	}
	return "", fmt.Errorf("unknown chamber %q, expected senate or house", s)
}

// PositionPrefix is the filename prefix of the chamber's seat records.
func (c Chamber) PositionPrefix() string {
	if c == ChamberSenate {
		return "senator"
	}
	return "congressional_representative"
}

type Config struct {
	Input   string
	Records *records.Store
	Chamber Chamber
	// names at least this similar to an already-exported person
	// produce a warning; identity stays display-name based so nothing
	// is merged. <= 0 disables the check.
	DuplicateThreshold float64
}

type Summary struct {
	PersonsCreated   int
	PositionsCreated int
	RowsSkipped      int
	RowsFailed       int
}

// Run converts one member spreadsheet into person and position JSON
// records. Person and position counters resume from the highest file
// number already on disk, so a rerun appends instead of renumbering.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	ctx, span := tracer.Start(ctx, "export.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("input", cfg.Input),
		attribute.String("chamber", string(cfg.Chamber)),
	)

	var summary Summary

	file, err := os.Open(cfg.Input)
	if err != nil {
		return summary, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	idx := indexHeader(header)
	err = idx.require(colDistrict, colName)
	if err != nil {
		return summary, err
	}

	lastPerson, err := cfg.Records.LastPersonNumber()
	if err != nil {
		return summary, err
	}
	lastPosition, err := cfg.Records.LastPositionNumber()
	if err != nil {
		return summary, err
	}
	slog.InfoContext(
		ctx, "continuing counters",
		"person", lastPerson,
		"position", lastPosition,
	)

	personCounter := lastPerson + 1
	positionCounter := lastPosition + 1
	// person files created during this run, keyed by display name
	personFiles := map[string]string{}

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

		district := idx.get(row, colDistrict)
		name := idx.get(row, colName)

		// repeated header text shows up mid-sheet in hand-maintained exports
		if district == "" || name == "" || district == colDistrict || name == colName {
			summary.RowsSkipped++
			continue
		}

		seatHolder := records.VacantSeatHolder
		if !strings.EqualFold(name, records.VacantSeatHolder) {
			personFile, seen := personFiles[name]
			if !seen {
				personFile = records.PersonFilename(personCounter)
				warnNearDuplicates(ctx, personFiles, name, cfg.DuplicateThreshold)

				person := records.Person{
					Name:     name,
					Position: records.PositionFilename(cfg.Chamber.PositionPrefix(), positionCounter),
					Party:    idx.get(row, colParty),
					WikiURL:  idx.get(row, colPersonWikiURL),
					Votes: records.Votes{
						LakenRiley: records.Vote{
							Vote:   idx.get(row, colLakenRiley),
							Notes:  idx.get(row, colLakenRileyNotes),
							Points: idx.get(row, colLakenRileyPoints),
						},
						HR1968: records.Vote{
							Vote:   idx.get(row, colHR1968),
							Points: idx.get(row, colHR1968Points),
						},
					},
					TotalPoints: idx.get(row, colSum),
				}
				err = cfg.Records.WritePerson(personFile, person)
				if err != nil {
					slog.ErrorContext(ctx, "failed to write person", "name", name, "err", err)
					summary.RowsFailed++
					continue
				}

				personFiles[name] = personFile
				slog.InfoContext(ctx, "created person", "file", personFile, "name", name)
				personCounter++
				summary.PersonsCreated++
			}
			seatHolder = personFile
		}

		positionFile := records.PositionFilename(cfg.Chamber.PositionPrefix(), positionCounter)
		err = cfg.Records.WritePosition(positionFile, records.Position{
			District:   district,
			WikiURL:    idx.get(row, colDistrictWikiURL),
			SeatHolder: seatHolder,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to write position", "district", district, "err", err)
			summary.RowsFailed++
			continue
		}
		slog.InfoContext(ctx, "created position", "file", positionFile, "district", district)
		positionCounter++
		summary.PositionsCreated++
	}

	return summary, nil
}

func warnNearDuplicates(ctx context.Context, personFiles map[string]string, name string, threshold float64) {
	if threshold <= 0 {
		return
	}
	normalized := textutil.NormalizeName(name)
	for existing := range personFiles {
		similarity := matchr.JaroWinkler(normalized, textutil.NormalizeName(existing), false)
		if similarity >= threshold {
			slog.WarnContext(
				ctx, "near-duplicate person name",
				"name", name,
				"existing", existing,
				"similarity", similarity,
			)
		}
	}
}
