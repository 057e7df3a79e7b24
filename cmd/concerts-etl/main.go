package main

import (
	"context"

	"github.com/Olympedpnt/concerts-etl-sa/cmd/concerts-etl/commands"
	"github.com/Olympedpnt/concerts-etl-sa/lib/serviceutil"
	"github.com/Olympedpnt/concerts-etl-sa/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "concerts-etl")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
