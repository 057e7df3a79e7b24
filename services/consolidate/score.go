package consolidate

import (
	"strings"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/lib/textutil"

	"github.com/antzucaro/matchr"
)

// fixed scoring rubric. an exact artist key outweighs containment, which
// outweighs raw token overlap; date agreement and venue agreement are
// additive on top. the maximum reachable score is 1.0.
const (
	weightArtistExact     = 0.55
	weightArtistContained = 0.40
	weightArtistOverlap   = 0.25
	weightVenue           = 0.15
	weightSameDay         = 0.20
	weightNearDay         = 0.10
	weightNameSim         = 0.10
)

// profile caches the normalized view of an Event so the matching loops do
// not re-tokenize on every comparison.
type profile struct {
	name       string
	artistKey  string
	venueKey   string
	artistToks map[string]struct{}
	venueToks  map[string]struct{}
	day        string
	start      time.Time
}

func newProfile(ev Event) profile {
	artist := ev.ResolveArtist()
	venue := ev.ResolveVenue()
	return profile{
		name:       textutil.Normalize(ev.Name),
		artistKey:  dropStopTokens(textutil.Normalize(artist)),
		venueKey:   textutil.Normalize(venue),
		artistToks: textutil.Tokenize(artist),
		venueToks:  textutil.Tokenize(venue, ev.City),
		day:        chrono.DayKey(ev.StartTime),
		start:      ev.StartTime,
	}
}

var nameStopwords = map[string]struct{}{
	"live": {}, "concert": {}, "tour": {}, "the": {},
}

func dropStopTokens(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, stop := nameStopwords[f]; stop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// score rates how likely two records denote the same concert. Symmetric in
// its token components. Returns 0 for pairs that are incompatible outright:
// dates on clearly different days, or two dateless records whose artist and
// venue keys are not both exact.
func score(a, b profile, tolerance time.Duration) float64 {
	artistExact := a.artistKey != "" && a.artistKey == b.artistKey
	venueExact := a.venueKey != "" && a.venueKey == b.venueKey

	var day float64
	switch {
	case a.day != "" && b.day != "":
		if a.day == b.day {
			day = weightSameDay
		} else if adjacentDay(a.day, b.day) || chrono.SameSlot(a.start, b.start, tolerance) {
			day = weightNearDay
		} else {
			return 0
		}
	case a.day == "" && b.day == "":
		// with no dates anywhere only an exact artist+venue key is
		// trustworthy enough to merge
		if !artistExact || !venueExact {
			return 0
		}
	}

	var artist float64
	switch {
	case artistExact:
		artist = weightArtistExact
	case a.artistKey != "" && b.artistKey != "" &&
		(strings.Contains(a.artistKey, b.artistKey) || strings.Contains(b.artistKey, a.artistKey)):
		artist = weightArtistContained
	default:
		artist = textutil.Overlap(a.artistToks, b.artistToks) * weightArtistOverlap
	}

	var venue float64
	if venueExact {
		venue = weightVenue
	} else {
		venue = textutil.Overlap(a.venueToks, b.venueToks) * weightVenue
	}

	name := matchr.JaroWinkler(a.name, b.name, false) * weightNameSim

	return artist + venue + day + name
}

func adjacentDay(a, b string) bool {
	ta, erra := time.ParseInLocation("2006-01-02", a, chrono.Location)
	tb, errb := time.ParseInLocation("2006-01-02", b, chrono.Location)
	if erra != nil || errb != nil {
		return false
	}
	d := ta.Sub(tb)
	if d < 0 {
		d = -d
	}
	// 25h instead of 24 so a DST boundary between the two days still
	// counts as adjacent
	return d <= 25*time.Hour
}
