package records

// Person and Position mirror the JSON documents the ranking site is
// built from. Every field is a string; the spreadsheets these come
// from carry no stronger typing.

type Vote struct {
	Vote   string `json:"vote"`
	Notes  string `json:"notes,omitempty"`
	Points string `json:"points"`
}

type Votes struct {
	LakenRiley Vote `json:"laken_riley"`
	HR1968     Vote `json:"hr_1968"`
}

type Person struct {
	Name string `json:"name"`
	// filename of the position record this person occupies
	Position    string `json:"district"`
	Party       string `json:"party"`
	WikiURL     string `json:"person_wiki_url"`
	Votes       Votes  `json:"votes"`
	TotalPoints string `json:"total_points"`

	// added by the headshot enrichment jobs
	HeadshotURL      string `json:"headshot_url,omitempty"`
	HeadshotLocalURL string `json:"headshot_local_url,omitempty"`
}

// VacantSeatHolder marks a position with no current occupant.
const VacantSeatHolder = "vacant"

type Position struct {
	District   string `json:"district"`
	WikiURL    string `json:"district_wiki_url"`
	SeatHolder string `json:"seat_holder"`
}
