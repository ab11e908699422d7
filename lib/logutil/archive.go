package logutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"loyalty-rankings/lib/textutil"
)

// ErrNoLogFile is returned when there is no current log file to archive.
var ErrNoLogFile = errors.New("no log file to archive")

var archivedLogRegex = regexp.MustCompile(`^migration_(\d+)\.log$`)

// Archive moves the current log file into logDir under the next
// sequential migration_NNNNNN.log name and returns the new path.
func Archive(logFile, logDir string) (string, error) {
	_, err := os.Stat(logFile)
	if os.IsNotExist(err) {
		return "", ErrNoLogFile
	}
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(logDir, 0777)
	if err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	next, err := nextArchiveNumber(logDir)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(logDir, fmt.Sprintf("migration_%s.log", textutil.ZeroPad(next, 6)))
	err = os.Rename(logFile, dest)
	if err != nil {
		return "", fmt.Errorf("archive log: %w", err)
	}
	return dest, nil
}

func nextArchiveNumber(logDir string) (int, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, entry := range entries {
		groups := archivedLogRegex.FindStringSubmatch(entry.Name())
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
	return highest + 1, nil
}
