package shotgun

import (
	"strings"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/lib/htmlutil"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	"github.com/PuerkitoBio/goquery"
)

// selector-bound parsing for the organizer dashboard. everything in this
// file rots with the next site redesign, keep it isolated and dumb.

func cardText(card *goquery.Selection, selector string) string {
	sel := card.Find(selector).First()
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.CleanText(htmlutil.GetText(sel.Nodes[0]))
}

func parseStatus(s string) consolidate.Status {
	switch strings.ToLower(htmlutil.CleanText(s)) {
	case "sold out", "complet":
		return consolidate.StatusSoldOut
	case "canceled", "cancelled", "annulé":
		return consolidate.StatusCanceled
	case "postponed", "reporté":
		return consolidate.StatusPostponed
	default:
		return consolidate.StatusOnSale
	}
}

// parseCards extracts one record per event card. A card without a name is
// dropped here; any other missing field stays empty and is dealt with
// downstream.
func parseCards(doc *goquery.Document, scrapedAt time.Time, runID string) []consolidate.Event {
	var events []consolidate.Event

	doc.Find(`[data-testid="event-card"]`).Each(func(_ int, card *goquery.Selection) {
		name := cardText(card, `[data-testid="event-name"]`)
		if name == "" {
			return
		}

		id, _ := card.Attr("data-event-id")
		if id == "" {
			// fall back to the event page link slug
			if href, ok := card.Find("a").First().Attr("href"); ok {
				parts := strings.Split(strings.Trim(href, "/"), "/")
				id = parts[len(parts)-1]
			}
		}

		ev := consolidate.Event{
			Provider:    consolidate.ProviderShotgun,
			ProviderID:  id,
			Name:        name,
			Artist:      cardText(card, `[data-testid="event-artist"]`),
			Venue:       cardText(card, `[data-testid="event-venue"]`),
			City:        cardText(card, `[data-testid="event-city"]`),
			StartTime:   chrono.ParseLocal(cardText(card, `[data-testid="event-date"]`)),
			Timezone:    chrono.Location.String(),
			Status:      parseStatus(cardText(card, `[data-testid="event-status"]`)),
			TicketsSold: htmlutil.ParseCount(cardText(card, `[data-testid="tickets-sold"]`)),
			GrossTotal:  htmlutil.ParseAmount(cardText(card, `[data-testid="gross-total"]`)),
			ScrapedAt:   scrapedAt,
			RunID:       runID,
		}
		if strings.Contains(cardText(card, `[data-testid="gross-total"]`), "€") {
			ev.Currency = "EUR"
		}
		if pct := htmlutil.ParseAmount(cardText(card, `[data-testid="sell-through"]`)); pct != nil {
			ev.SellThroughPct = pct
		}

		events = append(events, ev)
	})

	return events
}
