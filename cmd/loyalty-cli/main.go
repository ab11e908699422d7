package main

import (
	"context"

	"loyalty-rankings/cmd/loyalty-cli/commands"
	"loyalty-rankings/lib/serviceutil"
	"loyalty-rankings/lib/telemetry"
)

func main() {
	// the --debug flag re-initializes the handler once flags are parsed
	telemetry.InitSlog(false)

	ctx := serviceutil.SignalContext()
	tel, err := telemetry.SetupFromEnv(ctx, "loyalty-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
