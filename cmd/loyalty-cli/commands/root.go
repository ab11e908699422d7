package commands

import (
	"context"
	"fmt"
	"os"

	"loyalty-rankings/lib/telemetry"

	"github.com/spf13/cobra"
)

var debug *bool

func init() {
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
}

var rootCmd = &cobra.Command{
	Use:   "loyalty-cli",
	Short: "loyalty-cli converts congressional spreadsheets into site records and enriches them with wikipedia headshots.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
