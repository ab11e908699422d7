package markdown

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Format declares the column layout of an input spreadsheet. The
// hand-maintained sheets come in three shapes, and guessing between
// them at runtime proved too fragile, so the caller states which one
// it has.
type Format string

const (
	// header-keyed sheet, name column is one of several known headers,
	// every other column is emitted verbatim
	FormatStandard Format = "standard"
	// positional senator sheet: state, name, party, wikipedia link.
	// the sheet is a transposed export, its first row is member data,
	// not a header
	FormatSenate Format = "senate"
	// positional representative sheet: district, name, party,
	// wikipedia link, district info link
	FormatHouse Format = "house"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatStandard:
		return FormatStandard, nil
	case FormatSenate:
		return FormatSenate, nil
	case FormatHouse:
		return FormatHouse, nil
	}
	return "", fmt.Errorf("unknown format %q, expected standard, senate or house", s)
}

// headers accepted as the name column in standard sheets
var standardNameColumns = []string{"Name", "Full Name", "Member", "Congressperson"}

type rowParser func(row []string) (member, bool)

// rowParser returns the per-row parse function for the format,
// consuming the header row from the reader when the format has one.
func (f Format) rowParser(reader *csv.Reader) (rowParser, error) {
	switch f {
	case FormatSenate:
		return parseSenateRow, nil
	case FormatHouse:
		return parseHouseRow, nil
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	nameIdx := -1
	for _, candidate := range standardNameColumns {
		for i, col := range header {
			if col == candidate {
				nameIdx = i
				break
			}
		}
		if nameIdx >= 0 {
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf(
			"input has no name column, expected one of %s",
			strings.Join(standardNameColumns, ", "),
		)
	}

	return func(row []string) (member, bool) {
		if nameIdx >= len(row) {
			return member{}, false
		}
		name := strings.TrimSpace(row[nameIdx])
		if name == "" || name == header[nameIdx] {
			return member{}, false
		}

		m := member{Name: name}
		for i, value := range row {
			if i == nameIdx || i >= len(header) || header[i] == "" {
				continue
			}
			value = strings.TrimSpace(value)
			m.Fields = append(m.Fields, field{
				Key:   header[i],
				Value: value,
				Link:  strings.HasPrefix(value, "http"),
			})
		}
		return m, true
	}, nil
}

func parseSenateRow(row []string) (member, bool) {
	if len(row) < 4 {
		return member{}, false
	}
	name := strings.TrimSpace(row[1])
	if name == "" || name == "Name" {
		return member{}, false
	}
	return member{
		Name: name,
		Fields: []field{
			{Key: "State", Value: strings.TrimSpace(row[0])},
			{Key: "Party", Value: strings.TrimSpace(row[2])},
			{Key: "Wikipedia", Value: strings.TrimSpace(row[3]), Link: true},
		},
	}, true
}

func parseHouseRow(row []string) (member, bool) {
	if len(row) < 4 {
		return member{}, false
	}
	name := strings.TrimSpace(row[1])
	if name == "" || name == "Name" {
		return member{}, false
	}
	m := member{
		Name: name,
		Fields: []field{
			{Key: "District", Value: strings.TrimSpace(row[0])},
			{Key: "Party", Value: strings.TrimSpace(row[2])},
			{Key: "Wikipedia", Value: strings.TrimSpace(row[3]), Link: true},
		},
	}
	if len(row) > 4 {
		m.Fields = append(m.Fields, field{
			Key:   "District Info",
			Value: strings.TrimSpace(row[4]),
			Link:  true,
		})
	}
	return m, true
}
