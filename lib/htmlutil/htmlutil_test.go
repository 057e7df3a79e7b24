package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Daft Punk", CleanText("  Daft\n\n  Punk "))
	require.Equal(t, "a b", CleanText("a\x00b"))
}

func TestParseCount(t *testing.T) {
	testCases := []struct {
		input    string
		expected *int
	}{
		{"512", intp(512)},
		{"1 234 vendus", intp(1234)},
		{"1 234", intp(1234)},
		{"sold out", nil},
		{"", nil},
	}
	for _, test := range testCases {
		got := ParseCount(test.input)
		if test.expected == nil {
			require.Nil(t, got, "input %q", test.input)
			continue
		}
		require.NotNil(t, got, "input %q", test.input)
		require.Equal(t, *test.expected, *got)
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"24 680,50 €", 24680.50},
		{"1.234,56", 1234.56},
		{"88%", 88},
	}
	for _, test := range testCases {
		got := ParseAmount(test.input)
		require.NotNil(t, got, "input %q", test.input)
		require.InDelta(t, test.expected, *got, 0.001)
	}
	require.Nil(t, ParseAmount("n/a"))
}

func intp(n int) *int { return &n }
