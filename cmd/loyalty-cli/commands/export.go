package commands

import (
	"fmt"
	"time"

	"loyalty-rankings/lib/serviceutil"
	"loyalty-rankings/services/export"
	"loyalty-rankings/services/records"
	"loyalty-rankings/services/runlog"

	"github.com/spf13/cobra"
)

var exportInput *string
var exportChamber *string
var exportOutput *string

func init() {
	exportInput = exportCmd.Flags().String("input", "reps.csv", "The member spreadsheet to convert.")
	exportChamber = exportCmd.Flags().String("chamber", "house", "Which chamber the spreadsheet covers: senate or house.")
	exportOutput = exportCmd.Flags().String("output", "", "Overrides records_dir from the config.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--input <members.csv>] [--chamber senate|house]",
	Short: "Converts a member spreadsheet into person and position JSON records.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		chamber, err := export.ParseChamber(*exportChamber)
		if err != nil {
			serviceutil.Fatal("invalid chamber", err)
		}

		recordsDir := cfg.RecordsDir
		if *exportOutput != "" {
			recordsDir = *exportOutput
		}
		store, err := records.NewStore(recordsDir)
		if err != nil {
			serviceutil.Fatal("failed to open records dir", err)
		}

		started := time.Now()
		summary, err := export.Run(cmd.Context(), export.Config{
			Input:              *exportInput,
			Records:            store,
			Chamber:            chamber,
			DuplicateThreshold: cfg.DuplicateThreshold,
		})
		if err != nil {
			serviceutil.Fatal("export failed", err)
		}

		finishRun(cmd.Context(), cfg, runlog.Run{
			Job:       "export",
			StartedAt: started,
			Created:   summary.PersonsCreated + summary.PositionsCreated,
			Skipped:   summary.RowsSkipped,
			Failed:    summary.RowsFailed,
			Note: fmt.Sprintf(
				"%d persons, %d positions from %s",
				summary.PersonsCreated, summary.PositionsCreated, *exportInput,
			),
		})
	},
}
