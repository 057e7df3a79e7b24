package dice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"
)

const eventsQuery = `
query Events($after: String, $from: Datetime) {
  viewer {
    events(first: 100, after: $after, where: { startDatetime: { gte: $from } }) {
      totalCount
      pageInfo { endCursor hasNextPage }
      edges {
        node {
          id
          name
          startDatetime
          currency
          artists { name }
          venues { name city country timezoneName }
          tickets(first: 1) { totalCount }
        }
      }
    }
  }
}`

type eventNode struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	StartDatetime string `json:"startDatetime"`
	Currency      string `json:"currency"`
	Artists       []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Venues []struct {
		Name         string `json:"name"`
		City         string `json:"city"`
		Country      string `json:"country"`
		TimezoneName string `json:"timezoneName"`
	} `json:"venues"`
	Tickets struct {
		TotalCount *int `json:"totalCount"`
	} `json:"tickets"`
}

type eventsPage struct {
	Viewer struct {
		Events struct {
			TotalCount int `json:"totalCount"`
			PageInfo   struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
			Edges []struct {
				Node eventNode `json:"node"`
			} `json:"edges"`
		} `json:"events"`
	} `json:"viewer"`
}

// FetchEvents pages through the partner API from 90 days back. Each page
// is retried with exponential backoff; a page that still fails aborts the
// fetch and the caller degrades to an empty side.
func (c *Client) FetchEvents(ctx context.Context) ([]consolidate.Event, error) {
	ctx, span := tracer.Start(ctx, "FetchEvents")
	defer span.End()

	from := chrono.Now().AddDate(0, 0, -90).Truncate(24 * time.Hour)

	var out []consolidate.Event
	var after *string
	page := 0
	for {
		page++
		var result eventsPage
		err := c.queryWithBackoff(ctx, "Events", eventsQuery, map[string]any{
			"after": after,
			"from":  from.Format(time.RFC3339),
		}, &result)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		for _, edge := range result.Viewer.Events.Edges {
			out = append(out, buildEvent(edge.Node, c.runID))
		}

		slog.DebugContext(ctx, "dice api page", "page", page, "total", len(out))
		if !result.Viewer.Events.PageInfo.HasNextPage {
			break
		}
		cursor := result.Viewer.Events.PageInfo.EndCursor
		after = &cursor
	}

	return out, nil
}

func buildEvent(node eventNode, runID string) consolidate.Event {
	ev := consolidate.Event{
		Provider:    consolidate.ProviderDice,
		ProviderID:  node.Id,
		Name:        strings.TrimSpace(node.Name),
		StartTime:   chrono.ParseLocal(node.StartDatetime),
		Currency:    strings.TrimSpace(node.Currency),
		Status:      consolidate.StatusOnSale,
		TicketsSold: node.Tickets.TotalCount,
		ScrapedAt:   chrono.Now().UTC(),
		RunID:       runID,
	}
	if len(node.Artists) > 0 {
		ev.Artist = strings.TrimSpace(node.Artists[0].Name)
	}
	if len(node.Venues) > 0 {
		v := node.Venues[0]
		ev.Venue = strings.TrimSpace(v.Name)
		ev.City = strings.TrimSpace(v.City)
		ev.Country = strings.TrimSpace(v.Country)
		ev.Timezone = strings.TrimSpace(v.TimezoneName)
		if ev.Venue == "" {
			ev.Venue = ev.City
		}
	}
	if ev.Timezone == "" {
		ev.Timezone = chrono.Location.String()
	}
	return ev
}
