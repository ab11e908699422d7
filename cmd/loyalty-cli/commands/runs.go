package commands

import (
	"time"

	"loyalty-rankings/cmd/loyalty-cli/utils"
	"loyalty-rankings/lib/serviceutil"
	"loyalty-rankings/services/runlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runsLimit *int

func init() {
	runsLimit = runsCmd.Flags().Int("limit", 20, "How many runs to show.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--limit <n>]",
	Short: "Shows the most recent job runs from the run ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		database, err := runlog.OpenDB(cfg.RunsDb)
		if err != nil {
			serviceutil.Fatal("failed to open run ledger", err)
		}
		defer database.Close()

		runs, err := runlog.NewStore(database).Recent(cmd.Context(), *runsLimit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := utils.NewTable(table.Row{"job", "started", "duration", "created", "updated", "skipped", "failed", "note"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.Job,
				run.StartedAt.Format(time.DateTime),
				run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
				run.Created,
				run.Updated,
				run.Skipped,
				run.Failed,
				run.Note,
			})
		}
		t.Render()
	},
}
