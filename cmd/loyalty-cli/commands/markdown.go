package commands

import (
	"time"

	"loyalty-rankings/lib/serviceutil"
	"loyalty-rankings/services/markdown"
	"loyalty-rankings/services/runlog"

	"github.com/spf13/cobra"
)

var markdownInput *string
var markdownFormat *string
var markdownOutput *string

func init() {
	markdownInput = markdownCmd.Flags().String("input", "members.csv", "The member spreadsheet to render.")
	markdownFormat = markdownCmd.Flags().String("format", "standard", "Column layout of the spreadsheet: standard, senate or house.")
	markdownOutput = markdownCmd.Flags().String("output", "", "Overrides markdown_dir from the config.")
	rootCmd.AddCommand(markdownCmd)
}

var markdownCmd = &cobra.Command{
	Use:   "markdown [--input <members.csv>] [--format standard|senate|house]",
	Short: "Generates one markdown page per member from a spreadsheet, never overwriting existing pages.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readCliConfig()

		format, err := markdown.ParseFormat(*markdownFormat)
		if err != nil {
			serviceutil.Fatal("invalid format", err)
		}

		outputDir := cfg.MarkdownDir
		if *markdownOutput != "" {
			outputDir = *markdownOutput
		}

		started := time.Now()
		summary, err := markdown.Run(cmd.Context(), markdown.Config{
			Input:     *markdownInput,
			OutputDir: outputDir,
			Format:    format,
		})
		if err != nil {
			serviceutil.Fatal("markdown generation failed", err)
		}

		finishRun(cmd.Context(), cfg, runlog.Run{
			Job:       "markdown",
			StartedAt: started,
			Created:   summary.FilesCreated,
			Skipped:   summary.RowsSkipped + summary.AlreadyExists,
			Failed:    summary.RowsFailed,
		})
	},
}
