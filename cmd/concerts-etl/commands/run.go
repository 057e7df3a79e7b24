package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/lib/configutil"
	"github.com/Olympedpnt/concerts-etl-sa/lib/serviceutil"
	"github.com/Olympedpnt/concerts-etl-sa/services/alert"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"
	"github.com/Olympedpnt/concerts-etl-sa/services/dice"
	"github.com/Olympedpnt/concerts-etl-sa/services/sheets"
	"github.com/Olympedpnt/concerts-etl-sa/services/shotgun"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	runStrategy  string
	runThreshold float64
	runTolerance time.Duration
	runPreview   bool
	runNoPublish bool
)

func init() {
	runCmd.Flags().StringVar(&runStrategy, "strategy", string(consolidate.StrategyGreedy), "matching strategy: strict, threshold or greedy")
	runCmd.Flags().Float64Var(&runThreshold, "threshold", 0.60, "minimum match score for the threshold and greedy strategies")
	runCmd.Flags().DurationVar(&runTolerance, "tolerance", 30*time.Minute, "start time tolerance for cross-day matching")
	runCmd.Flags().BoolVar(&runPreview, "preview", false, "print the consolidated table to the terminal")
	runCmd.Flags().BoolVar(&runNoPublish, "no-publish", false, "skip the Google Sheets write, only produce local artifacts")
	rootCmd.AddCommand(runCmd)
}

func matchOptions() consolidate.Options {
	return consolidate.Options{
		Strategy:      consolidate.Strategy(runStrategy),
		NameThreshold: runThreshold,
		TimeTolerance: runTolerance,
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes both providers, consolidates and publishes the review sheet.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config](configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		// credentials are the one thing worth dying for before any
		// network call happens
		if cfg.Shotgun.Email == "" || cfg.Shotgun.Password == "" {
			serviceutil.Fatal("invalid config", fmt.Errorf("shotgun email/password missing"))
		}
		if cfg.Dice.ApiToken == "" {
			serviceutil.Fatal("invalid config", fmt.Errorf("dice api_token missing"))
		}
		if !runNoPublish && cfg.Sheets.SpreadsheetId == "" {
			serviceutil.Fatal("invalid config", fmt.Errorf("sheets spreadsheet_id missing"))
		}

		ctx := cmd.Context()
		runID := uuid.NewString()
		slog.Info("starting run", "run_id", runID, "strategy", runStrategy)

		shotgunEvents, diceEvents := scrapeBoth(ctx, cfg, runID)
		slog.Info("scraped providers", "shotgun", len(shotgunEvents), "dice", len(diceEvents))

		if len(shotgunEvents) == 0 && len(diceEvents) == 0 {
			alert.Notify(cfg.Alert, "concerts-etl: empty run", "both providers returned no events, nothing to publish")
			slog.Error("both providers returned no events, nothing to publish")
			os.Exit(1)
		}

		rows := consolidate.Consolidate(ctx, shotgunEvents, diceEvents, matchOptions())
		slog.Info("consolidated", "rows", len(rows))

		if runPreview {
			renderTable(rows)
		}
		writePreviewArtifact(shotgunEvents, diceEvents, rows)

		exportDir := cfg.ExportDir
		if exportDir == "" {
			exportDir = "exports"
		}
		csvPath, err := sheets.ExportCSV(rows, exportDir)
		if err != nil {
			slog.Error("failed to write csv artifact", "err", err)
		} else {
			slog.Info("wrote csv artifact", "path", csvPath)
		}

		if runNoPublish {
			return
		}
		publisher, err := sheets.NewPublisher(ctx, cfg.Sheets)
		if err != nil {
			serviceutil.Fatal("failed to initialize sheets client", err)
		}
		if err := publisher.Publish(ctx, rows); err != nil {
			alert.Notify(cfg.Alert, "concerts-etl: publish failed", err.Error())
			serviceutil.Fatal("failed to publish to google sheets", err)
		}
		slog.Info("published", "rows", len(rows), "worksheet", cfg.Sheets.Worksheet)
	},
}

// scrapeBoth runs the two adapters concurrently. Either side failing
// degrades to an empty slice: partial data still produces a usable sheet,
// and the healthy side's records all come through as singletons.
func scrapeBoth(ctx context.Context, cfg Config, runID string) ([]consolidate.Event, []consolidate.Event) {
	var shotgunEvents, diceEvents []consolidate.Event

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		client := shotgun.NewClient(cfg.Shotgun, runID)
		if err := client.Login(ctx, cfg.Shotgun); err != nil {
			slog.Error("shotgun login failed, continuing without it", "err", err)
			return nil
		}
		events, err := client.FetchEvents(ctx)
		if err != nil {
			slog.Error("shotgun scrape failed, continuing without it", "err", err)
			return nil
		}
		shotgunEvents = events
		return nil
	})
	group.Go(func() error {
		events, err := dice.NewClient(cfg.Dice, runID).FetchEvents(ctx)
		if err != nil {
			slog.Error("dice fetch failed, continuing without it", "err", err)
			return nil
		}
		diceEvents = events
		return nil
	})
	// the goroutines swallow their own errors
	_ = group.Wait()

	return shotgunEvents, diceEvents
}

type previewEvent struct {
	Name    string `json:"name"`
	Artist  string `json:"artist,omitempty"`
	Venue   string `json:"venue,omitempty"`
	Date    string `json:"date,omitempty"`
	Tickets *int   `json:"tickets"`
}

// writePreviewArtifact drops a small json snapshot next to the run for
// debugging scraper regressions, capped at 20 records per section.
func writePreviewArtifact(shotgunEvents, diceEvents []consolidate.Event, rows []consolidate.Row) {
	preview := map[string]any{
		"shotgun":      previewEvents(shotgunEvents),
		"dice":         previewEvents(diceEvents),
		"consolidated": previewRows(rows),
	}
	data, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile("providers_preview.json", data, 0o644); err != nil {
		slog.Warn("failed to write preview artifact", "err", err)
	}
}

func previewEvents(events []consolidate.Event) []previewEvent {
	out := []previewEvent{}
	for _, e := range events {
		if len(out) == 20 {
			break
		}
		out = append(out, previewEvent{
			Name:    e.Name,
			Artist:  e.Artist,
			Venue:   e.Venue,
			Date:    chrono.DayKey(e.StartTime),
			Tickets: e.TicketsSold,
		})
	}
	return out
}

func previewRows(rows []consolidate.Row) []map[string]any {
	out := []map[string]any{}
	for _, r := range rows {
		if len(out) == 20 {
			break
		}
		out = append(out, map[string]any{
			"name":            r.Name,
			"date":            r.Date(),
			"shotgun_tickets": r.ShotgunTickets,
			"dice_tickets":    r.DiceTickets,
		})
	}
	return out
}
