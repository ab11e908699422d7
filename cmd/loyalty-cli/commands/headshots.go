package commands

import (
	"time"

	"loyalty-rankings/lib/scrapers/wikipedia"
	"loyalty-rankings/lib/serviceutil"
	"loyalty-rankings/services/headshots"
	"loyalty-rankings/services/records"
	"loyalty-rankings/services/runlog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(headshotsCmd)
	headshotsCmd.AddCommand(resolveCmd)
	headshotsCmd.AddCommand(downloadCmd)
}

var headshotsCmd = &cobra.Command{
	Use:   "headshots",
	Short: "Manages wikipedia headshots on person records.",
}

func newWikipediaClient(cfg Config) *wikipedia.Client {
	client, err := wikipedia.NewClient(wikipedia.Options{
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize wikipedia client", err)
	}
	return client
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Fills headshot_url on person records from their wikipedia articles.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		store, err := records.NewStore(cfg.RecordsDir)
		if err != nil {
			serviceutil.Fatal("failed to open records dir", err)
		}

		started := time.Now()
		summary, err := headshots.Resolve(cmd.Context(), headshots.ResolveConfig{
			Records:  store,
			Resolver: newWikipediaClient(cfg),
		})
		if err != nil {
			serviceutil.Fatal("headshot resolution failed", err)
		}

		finishRun(cmd.Context(), cfg, runlog.Run{
			Job:       "headshots-resolve",
			StartedAt: started,
			Updated:   summary.Updated,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
		})
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Downloads resolved headshots and records their local paths.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		store, err := records.NewStore(cfg.RecordsDir)
		if err != nil {
			serviceutil.Fatal("failed to open records dir", err)
		}

		started := time.Now()
		summary, err := headshots.Download(cmd.Context(), headshots.DownloadConfig{
			Records:      store,
			HeadshotsDir: cfg.HeadshotsDir,
			Fetcher:      newWikipediaClient(cfg),
		})
		if err != nil {
			serviceutil.Fatal("headshot download failed", err)
		}

		finishRun(cmd.Context(), cfg, runlog.Run{
			Job:       "headshots-download",
			StartedAt: started,
			Updated:   summary.Updated,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
		})
	},
}
