package shotgun

import (
	"strings"
	"testing"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const dashboardFixture = `
<html><body>
<div data-testid="event-card" data-event-id="evt_123">
	<a href="/events/daft-punk-olympia"><span data-testid="event-name">Daft Punk @ L'Olympia</span></a>
	<span data-testid="event-date">ven. 10 oct. 2025 20:00</span>
	<span data-testid="event-city">Paris</span>
	<span data-testid="tickets-sold">1 234 vendus</span>
	<span data-testid="gross-total">24 680,50 €</span>
	<span data-testid="sell-through">88%</span>
	<span data-testid="event-status">Complet</span>
</div>
<div data-testid="event-card">
	<a href="/events/justice-trianon"><span data-testid="event-name">Justice</span></a>
	<span data-testid="event-venue">Le Trianon</span>
	<span data-testid="event-date">someday soon</span>
</div>
<div data-testid="event-card">
	<!-- nameless card, dropped -->
	<span data-testid="event-date">2025-12-01</span>
</div>
</body></html>`

func TestParseCards(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dashboardFixture))
	require.NoError(t, err)

	scrapedAt := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	events := parseCards(doc, scrapedAt, "run-1")

	require.Len(t, events, 2)

	first := events[0]
	require.Equal(t, "evt_123", first.ProviderID)
	require.Equal(t, "Daft Punk @ L'Olympia", first.Name)
	require.Equal(t, "Paris", first.City)
	require.Equal(t, consolidate.StatusSoldOut, first.Status)
	require.True(t, first.StartTime.Equal(time.Date(2025, 10, 10, 20, 0, 0, 0, chrono.Location)))
	require.NotNil(t, first.TicketsSold)
	require.Equal(t, 1234, *first.TicketsSold)
	require.NotNil(t, first.GrossTotal)
	require.InDelta(t, 24680.50, *first.GrossTotal, 0.001)
	require.Equal(t, "EUR", first.Currency)
	require.Equal(t, "run-1", first.RunID)

	second := events[1]
	require.Equal(t, "justice-trianon", second.ProviderID)
	require.Equal(t, "Le Trianon", second.Venue)
	// unparseable date leaves the record dateless, never drops it
	require.True(t, second.StartTime.IsZero())
	require.Nil(t, second.TicketsSold)
	require.Equal(t, consolidate.StatusOnSale, second.Status)
}
