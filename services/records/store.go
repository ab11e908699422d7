package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"loyalty-rankings/lib/textutil"
)

// Store reads and writes the person/position JSON documents in a
// single output directory. Writes are plain truncating writes, a
// crash mid-write can leave a torn file behind.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func PersonFilename(n int) string {
	return fmt.Sprintf("person_%s.json", textutil.ZeroPad(n, 6))
}

func PositionFilename(prefix string, n int) string {
	return fmt.Sprintf("%s_position_%s.json", prefix, textutil.ZeroPad(n, 4))
}

var personNumberRegex = regexp.MustCompile(`^person_(\d+)\.json$`)
var positionNumberRegex = regexp.MustCompile(`position_(\d+)\.json$`)

// LastPersonNumber returns the highest person file number already on
// disk, so reruns keep counting upward instead of reusing names.
func (s *Store) LastPersonNumber() (int, error) {
	return s.lastNumber(personNumberRegex)
}

func (s *Store) LastPositionNumber() (int, error) {
	return s.lastNumber(positionNumberRegex)
}

func (s *Store) lastNumber(re *regexp.Regexp) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, entry := range entries {
		groups := re.FindStringSubmatch(entry.Name())
		if len(groups) < 2 {
			continue
		}
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (s *Store) WritePerson(filename string, p Person) error {
	return s.writeJSON(filename, p)
}

func (s *Store) WritePosition(filename string, p Position) error {
	return s.writeJSON(filename, p)
}

func (s *Store) writeJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	err = os.WriteFile(filepath.Join(s.dir, filename), data, 0666)
	if err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func (s *Store) ReadPerson(filename string) (Person, error) {
	var p Person
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	if err != nil {
		return p, fmt.Errorf("parse %s: %w", filename, err)
	}
	return p, nil
}

// ListPersons returns the person filenames in the store, sorted.
func (s *Store) ListPersons() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if personNumberRegex.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
