package consolidate

import (
	"regexp"
	"strings"
	"time"
)

const (
	ProviderShotgun = "shotgun"
	ProviderDice    = "dice"
)

type Status string

const (
	StatusOnSale    Status = "on_sale"
	StatusSoldOut   Status = "sold_out"
	StatusCanceled  Status = "canceled"
	StatusPostponed Status = "postponed"
)

// Event is one scraped concert as a provider reported it. Adapters drop
// records without a name before they get here; everything else may be
// missing. A zero StartTime means the source had no parseable time, which
// excludes the record from date matching but never from the output.
type Event struct {
	Provider   string
	ProviderID string

	Name    string
	Artist  string
	Venue   string
	City    string
	Country string

	StartTime time.Time
	Timezone  string
	Status    Status

	TicketsSold    *int
	GrossTotal     *float64
	Currency       string
	SellThroughPct *float64

	ScrapedAt time.Time
	RunID     string
}

// "Artist @ Venue" / "Artist - Venue" bill shapes, either dash variant.
var billRegex = regexp.MustCompile(`^\s*(.+?)\s*(?:@|-|–|—)\s*(.+?)\s*$`)

// ResolveArtist is the one fallback chain for the artist field: the
// explicit field when present, else the left half of a bill-shaped name,
// else the whole name.
func (e Event) ResolveArtist() string {
	if a := strings.TrimSpace(e.Artist); a != "" {
		return a
	}
	if m := billRegex.FindStringSubmatch(e.Name); m != nil {
		return m[1]
	}
	return strings.TrimSpace(e.Name)
}

// ResolveVenue falls back from the explicit venue to the right half of a
// bill-shaped name, then to the city.
func (e Event) ResolveVenue() string {
	if v := strings.TrimSpace(e.Venue); v != "" {
		return v
	}
	if m := billRegex.FindStringSubmatch(e.Name); m != nil {
		return m[2]
	}
	return strings.TrimSpace(e.City)
}
