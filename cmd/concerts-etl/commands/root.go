package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/Olympedpnt/concerts-etl-sa/lib/telemetry"
	"github.com/Olympedpnt/concerts-etl-sa/services/alert"
	"github.com/Olympedpnt/concerts-etl-sa/services/dice"
	"github.com/Olympedpnt/concerts-etl-sa/services/sheets"
	"github.com/Olympedpnt/concerts-etl-sa/services/shotgun"

	"github.com/spf13/cobra"
)

// Config is the one file every command reads. Credentials usually arrive
// through ${ENV} references expanded by configutil.
type Config struct {
	Shotgun   shotgun.Config `json:"shotgun"`
	Dice      dice.Config    `json:"dice"`
	Sheets    sheets.Config  `json:"sheets"`
	Alert     alert.Config   `json:"alert"`
	ExportDir string         `json:"export_dir"`
}

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "concerts-etl",
	Short: "concerts-etl scrapes ticket sales from Shotgun and Dice and reconciles them into one review sheet.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
