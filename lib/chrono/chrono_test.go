package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	require.Equal(t, "", DayKey(time.Time{}))

	ts := time.Date(2025, 10, 10, 20, 30, 0, 0, Location)
	require.Equal(t, "2025-10-10", DayKey(ts))

	// a UTC timestamp late in the evening crosses into the next local day
	utc := time.Date(2025, 10, 10, 23, 30, 0, 0, time.UTC)
	require.Equal(t, "2025-10-11", DayKey(utc))
}

func TestSameSlot(t *testing.T) {
	base := time.Date(2025, 10, 10, 20, 0, 0, 0, Location)

	require.True(t, SameSlot(base, base.Add(20*time.Minute), 30*time.Minute))
	require.True(t, SameSlot(base.Add(20*time.Minute), base, 30*time.Minute))
	require.False(t, SameSlot(base, base.Add(45*time.Minute), 30*time.Minute))
	require.False(t, SameSlot(base, time.Time{}, 30*time.Minute))
	require.False(t, SameSlot(time.Time{}, time.Time{}, 30*time.Minute))
}

func TestRoundSlot(t *testing.T) {
	ts := time.Date(2025, 10, 10, 20, 7, 42, 0, Location)
	require.Equal(t, time.Date(2025, 10, 10, 20, 5, 0, 0, Location), RoundSlot(ts))
	require.True(t, RoundSlot(time.Time{}).IsZero())
}

func TestParseLocal(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
	}{
		{"2025-10-10T20:00:00+02:00", time.Date(2025, 10, 10, 20, 0, 0, 0, Location)},
		{"2025-10-10T20:00:00", time.Date(2025, 10, 10, 20, 0, 0, 0, Location)},
		{"2025-10-10", time.Date(2025, 10, 10, 0, 0, 0, 0, Location)},
		{"10/10/2025 20:00", time.Date(2025, 10, 10, 20, 0, 0, 0, Location)},
		{"ven. 10 oct. 2025 20:00", time.Date(2025, 10, 10, 20, 0, 0, 0, Location)},
		{"vendredi 10 octobre 2025", time.Date(2025, 10, 10, 0, 0, 0, 0, Location)},
		// the irregular abbreviations the cards render
		{"sam. 5 juil. 2025 20:00", time.Date(2025, 7, 5, 20, 0, 0, 0, Location)},
		{"mer. 10 sept. 2025 20:00", time.Date(2025, 9, 10, 20, 0, 0, 0, Location)},
		{"jeu. 15 janv. 2026 20:00", time.Date(2026, 1, 15, 20, 0, 0, 0, Location)},
		{"lun. 2 févr. 2026 19:30", time.Date(2026, 2, 2, 19, 30, 0, 0, Location)},
		{"dim. 1 juin 2025 18:00", time.Date(2025, 6, 1, 18, 0, 0, 0, Location)},
		{"mardi 8 juillet 2025 21:00", time.Date(2025, 7, 8, 21, 0, 0, 0, Location)},
		{"15 août 2025", time.Date(2025, 8, 15, 0, 0, 0, 0, Location)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}
	for _, test := range testCases {
		got := ParseLocal(test.input)
		require.True(t, test.expected.Equal(got), "input %q: got %v", test.input, got)
	}
}
