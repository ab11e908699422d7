package commands

import (
	"errors"
	"log/slog"

	"loyalty-rankings/lib/logutil"
	"loyalty-rankings/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rotateLogsCmd)
}

var rotateLogsCmd = &cobra.Command{
	Use:   "rotate-logs",
	Short: "Archives the current migration log under the next sequential name.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		dest, err := logutil.Archive(cfg.LogFile, cfg.LogDir)
		if errors.Is(err, logutil.ErrNoLogFile) {
			slog.InfoContext(cmd.Context(), "no log file to archive", "path", cfg.LogFile)
			return
		}
		if err != nil {
			serviceutil.Fatal("failed to archive log", err)
		}
		slog.InfoContext(cmd.Context(), "archived log", "dest", dest)
	},
}
