package export

import (
	"fmt"
	"strings"
)

// Column headers of the member spreadsheets. Both chambers export the
// same "init" layout, keyed by header row.
const (
	colDistrict         = "District"
	colName             = "Name"
	colParty            = "Party"
	colPersonWikiURL    = "Person Wiki URL"
	colDistrictWikiURL  = "District Wiki URL"
	colLakenRiley       = "Vote on Laken Riley"
	colLakenRileyNotes  = "Vote on Laken Riley Notes"
	colLakenRileyPoints = "Vote on Laken Riley Points"
	colHR1968           = "Vote on H.R.1968"
	colHR1968Points     = "Vote on 1968 Points"
	colSum              = "Sum"
)

type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := headerIndex{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func (h headerIndex) require(cols ...string) error {
	for _, col := range cols {
		if _, ok := h[col]; !ok {
			return fmt.Errorf("input is missing the %q column", col)
		}
	}
	return nil
}

// get returns the named cell of a row, or "" when the column is
// absent or the row is too short.
func (h headerIndex) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
