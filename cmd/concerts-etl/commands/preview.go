package commands

import (
	"os"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	"github.com/jedib0t/go-pretty/v6/table"
)

func countCell(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

func renderTable(rows []consolidate.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"date", "event", "artist", "venue", "shotgun", "dice"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Date(),
			r.Name,
			r.Artist,
			r.Venue,
			countCell(r.ShotgunTickets),
			countCell(r.DiceTickets),
		})
	}
	t.Render()
}

func renderEvents(events []consolidate.Event) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"id", "name", "artist", "venue", "date", "tickets", "status"})
	for _, e := range events {
		t.AppendRow(table.Row{
			e.ProviderID,
			e.Name,
			e.Artist,
			e.Venue,
			chrono.DayKey(e.StartTime),
			countCell(e.TicketsSold),
			string(e.Status),
		})
	}
	t.Render()
}
