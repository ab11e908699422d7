package testutil

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"loyalty-rankings/lib/telemetry"

	_ "modernc.org/sqlite"
)

type JobParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
	// if unspecified, it will use `:memory:`
	DbPath string
}

type JobResult struct {
	DB *sql.DB
}

// SetupJob prepares telemetry and an optional sqlite database for a
// job test.
func SetupJob(t testing.TB, params JobParams) (JobResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	if params.DbSchema == "" {
		return JobResult{}, cleanup
	}

	dbpath := params.DbPath
	if dbpath == "" {
		dbpath = ":memory:"
	}
	sqlite, err := sql.Open("sqlite", dbpath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return JobResult{DB: sqlite}, func() {
		sqlite.Close()
		cleanup()
	}
}
