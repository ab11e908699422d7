package commands

import (
	"errors"
	"os"
	"path/filepath"

	"loyalty-rankings/lib/configutil"
	"loyalty-rankings/lib/notify"
	"loyalty-rankings/lib/serviceutil"
)

type Config struct {
	RecordsDir   string `json:"records_dir"`
	MarkdownDir  string `json:"markdown_dir"`
	HeadshotsDir string `json:"headshots_dir"`
	LogFile      string `json:"log_file"`
	LogDir       string `json:"log_dir"`
	RunsDb       string `json:"runs_db"`

	UserAgent         string  `json:"user_agent"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	// names at least this similar produce a near-duplicate warning
	// during export, <= 0 disables the check
	DuplicateThreshold float64 `json:"duplicate_threshold"`

	Smtp notify.Config `json:"smtp"`
}

// readCliConfig loads loyalty.json5 from the working directory. A
// missing file is fine, every field has a workable default.
func readCliConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("loyalty.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.RecordsDir == "" {
		cfg.RecordsDir = "output"
	}
	if cfg.MarkdownDir == "" {
		cfg.MarkdownDir = filepath.Join("content", "congresspeople")
	}
	if cfg.HeadshotsDir == "" {
		cfg.HeadshotsDir = filepath.Join("static", "headshots")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "migration.log"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.RunsDb == "" {
		cfg.RunsDb = filepath.Join(".dev", "runs.db")
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.DuplicateThreshold == 0 {
		cfg.DuplicateThreshold = 0.95
	}
	return cfg
}
