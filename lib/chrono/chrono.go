package chrono

import (
	"strings"
	"time"
)

// Location is the timezone every naive timestamp from the dashboards is
// interpreted in. Both providers report French venues with local wall-clock
// times.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
}

func Now() time.Time {
	return time.Now().In(Location)
}

// DayKey reduces a timestamp to its local calendar day. The zero time maps
// to "" which never compares equal to a real day.
func DayKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location).Format("2006-01-02")
}

// SameSlot reports whether both timestamps are known and within the given
// tolerance of each other.
func SameSlot(a, b time.Time, tolerance time.Duration) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// RoundSlot truncates a timestamp down to a 5 minute slot so that the two
// providers' slightly different start times still produce one key.
func RoundSlot(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location).Truncate(5 * time.Minute)
}

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// frenchMonths lists the full names and the abbreviations the dashboards
// actually render. The abbreviations are irregular ("janv.", "juil.",
// "sept.") and juin/juillet share a three letter prefix, so they are spelled
// out rather than derived.
var frenchMonths = []struct {
	name, abbr, en string
}{
	{"janvier", "janv.", "January"},
	{"février", "févr.", "February"},
	{"mars", "mars", "March"},
	{"avril", "avr.", "April"},
	{"mai", "mai", "May"},
	{"juin", "juin", "June"},
	{"juillet", "juil.", "July"},
	{"août", "août", "August"},
	{"septembre", "sept.", "September"},
	{"octobre", "oct.", "October"},
	{"novembre", "nov.", "November"},
	{"décembre", "déc.", "December"},
}

var frenchDays = []string{
	"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
}

// ParseLocal parses a timestamp the way the dashboards render them: ISO
// first, then the common numeric layouts, then the French long form the
// Shotgun cards use ("ven. 10 oct. 2025 20:00" or "vendredi 10 octobre
// 2025"). Returns the zero time when nothing matches; an unknown date only
// excludes a record from date matching, it never fails a scrape.
func ParseLocal(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t
		}
	}
	return parseFrench(s)
}

func parseFrench(s string) time.Time {
	lower := strings.ToLower(s)
	for _, day := range frenchDays {
		lower = strings.TrimPrefix(lower, day+" ")
		lower = strings.TrimPrefix(lower, day[:3]+". ")
	}
	for _, m := range frenchMonths {
		if strings.Contains(lower, m.name) {
			lower = strings.Replace(lower, m.name, m.en, 1)
			break
		}
		if strings.Contains(lower, m.abbr) {
			lower = strings.Replace(lower, m.abbr, m.en, 1)
			break
		}
	}
	lower = strings.ReplaceAll(lower, " à ", " ")
	for _, layout := range []string{
		"2 January 2006 15:04",
		"2 January 2006 15h04",
		"2 January 2006",
	} {
		if t, err := time.ParseInLocation(layout, lower, Location); err == nil {
			return t
		}
	}
	return time.Time{}
}
