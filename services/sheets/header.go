package sheets

import (
	"sort"
	"strconv"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"
)

// fixed columns come first in this exact order; anything a provider
// attached on top is appended after, sorted, so the sheet layout stays
// deterministic between runs.
var baseHeaders = []string{
	"event_name",
	"event_datetime_local",
	"artist",
	"venue",
	"shotgun_tickets_sold",
	"dice_tickets_sold",
	"shotgun_event_id",
	"dice_event_id",
}

func BuildHeaders(rows []consolidate.Row) []string {
	seen := map[string]struct{}{}
	for _, h := range baseHeaders {
		seen[h] = struct{}{}
	}
	var extras []string
	for _, r := range rows {
		for k := range r.Extra {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)
	return append(append([]string{}, baseHeaders...), extras...)
}

func cellValue(r consolidate.Row, header string) string {
	switch header {
	case "event_name":
		return r.Name
	case "event_datetime_local":
		if r.StartTime.IsZero() {
			return ""
		}
		return r.StartTime.Format(time.RFC3339)
	case "artist":
		return r.Artist
	case "venue":
		return r.Venue
	case "shotgun_tickets_sold":
		return formatCount(r.ShotgunTickets)
	case "dice_tickets_sold":
		return formatCount(r.DiceTickets)
	case "shotgun_event_id":
		return r.ShotgunID
	case "dice_event_id":
		return r.DiceID
	default:
		return r.Extra[header]
	}
}

func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func RowValues(r consolidate.Row, headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = cellValue(r, h)
	}
	return out
}
