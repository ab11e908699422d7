package commands

import (
	"context"
	"log/slog"
	"time"

	"loyalty-rankings/cmd/loyalty-cli/utils"
	"loyalty-rankings/lib/notify"
	"loyalty-rankings/services/runlog"

	"github.com/jedib0t/go-pretty/v6/table"
)

// finishRun prints the summary of a completed job, appends it to the
// run ledger and mails a report when smtp is configured. Ledger and
// mail failures are logged, the job itself already succeeded.
func finishRun(ctx context.Context, cfg Config, run runlog.Run) {
	run.FinishedAt = time.Now()

	t := utils.NewTable(table.Row{"job", "created", "updated", "skipped", "failed", "duration"})
	t.AppendRow(table.Row{
		run.Job,
		run.Created,
		run.Updated,
		run.Skipped,
		run.Failed,
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
	})
	body := t.Render()
	if run.Note != "" {
		body += "\n" + run.Note
	}

	database, err := runlog.OpenDB(cfg.RunsDb)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open run ledger", "err", err)
	} else {
		defer database.Close()
		err = runlog.NewStore(database).Record(ctx, run)
		if err != nil {
			slog.ErrorContext(ctx, "failed to record run", "err", err)
		}
	}

	if cfg.Smtp.Enabled() {
		err := notify.SendRunReport(cfg.Smtp, run.Job, body)
		if err != nil {
			slog.ErrorContext(ctx, "failed to send run report", "err", err)
			return
		}
		slog.InfoContext(ctx, "sent run report", "to", cfg.Smtp.To)
	}
}
