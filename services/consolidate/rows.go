package consolidate

import (
	"sort"
	"strings"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
)

// Row is one line of the review table: one physical concert, with the
// ticket counts and provider ids from whichever sides reported it. An
// empty provider id means that side never saw the event.
type Row struct {
	Name   string
	Artist string
	Venue  string
	City   string

	StartTime time.Time
	Timezone  string
	Status    Status

	ShotgunTickets *int
	DiceTickets    *int
	ShotgunID      string
	DiceID         string

	ScrapedAt time.Time
	RunID     string

	// additive provider columns, appended to the export after the fixed
	// header in sorted key order
	Extra map[string]string
}

// Date is the day-granularity display value, "" when the start time is
// unknown.
func (r Row) Date() string {
	return chrono.DayKey(r.StartTime)
}

// mergeRow flattens a matched pair (or a singleton when one side is nil)
// into one row. Display fields prefer the shotgun side and fall back to
// dice, field by field, so a side that lacks a date inherits it from the
// other.
func mergeRow(sg, dc *Event) Row {
	var row Row
	if sg != nil {
		row.ShotgunTickets = sg.TicketsSold
		row.ShotgunID = sg.ProviderID
		row.ScrapedAt = sg.ScrapedAt
		row.RunID = sg.RunID
	}
	if dc != nil {
		row.DiceTickets = dc.TicketsSold
		row.DiceID = dc.ProviderID
		if row.ScrapedAt.IsZero() {
			row.ScrapedAt = dc.ScrapedAt
			row.RunID = dc.RunID
		}
	}

	row.Name = firstString(sg, dc, func(e *Event) string { return e.Name })
	row.Artist = firstString(sg, dc, func(e *Event) string { return e.ResolveArtist() })
	row.Venue = firstString(sg, dc, func(e *Event) string { return e.ResolveVenue() })
	row.City = firstString(sg, dc, func(e *Event) string { return e.City })
	row.Timezone = firstString(sg, dc, func(e *Event) string { return e.Timezone })
	row.Status = Status(firstString(sg, dc, func(e *Event) string { return string(e.Status) }))
	row.StartTime = firstTime(sg, dc)

	return row
}

func firstString(sg, dc *Event, get func(*Event) string) string {
	if sg != nil {
		if v := strings.TrimSpace(get(sg)); v != "" {
			return v
		}
	}
	if dc != nil {
		if v := strings.TrimSpace(get(dc)); v != "" {
			return v
		}
	}
	return ""
}

func firstTime(sg, dc *Event) time.Time {
	if sg != nil && !sg.StartTime.IsZero() {
		return sg.StartTime
	}
	if dc != nil {
		return dc.StartTime
	}
	return time.Time{}
}

// SortRows orders the table for review: date ascending with unknown dates
// first, then lowercase name. Stable, so equal keys keep construction
// order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].Date(), rows[j].Date()
		if di != dj {
			return di < dj
		}
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
}
