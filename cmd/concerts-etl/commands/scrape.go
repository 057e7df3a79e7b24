package commands

import (
	"fmt"
	"log/slog"

	"github.com/Olympedpnt/concerts-etl-sa/lib/configutil"
	"github.com/Olympedpnt/concerts-etl-sa/lib/serviceutil"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"
	"github.com/Olympedpnt/concerts-etl-sa/services/dice"
	"github.com/Olympedpnt/concerts-etl-sa/services/shotgun"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

// scrapeCmd exists to debug one adapter after a site redesign without
// touching the sheet.
var scrapeCmd = &cobra.Command{
	Use:   "scrape <shotgun|dice>",
	Short: "Scrapes a single provider and prints what it saw.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configutil.ReadConfig[Config](configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		ctx := cmd.Context()
		runID := uuid.NewString()

		var events []consolidate.Event
		switch args[0] {
		case "shotgun":
			client := shotgun.NewClient(cfg.Shotgun, runID)
			if err := client.Login(ctx, cfg.Shotgun); err != nil {
				serviceutil.Fatal("shotgun login failed", err)
			}
			events, err = client.FetchEvents(ctx)
		case "dice":
			events, err = dice.NewClient(cfg.Dice, runID).FetchEvents(ctx)
		default:
			return fmt.Errorf("unknown provider %q, expected shotgun or dice", args[0])
		}
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}

		slog.Info("scraped", "provider", args[0], "events", len(events))
		renderEvents(events)
		return nil
	},
}
