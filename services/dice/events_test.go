package dice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	"github.com/stretchr/testify/require"
)

const pageOne = `{"data": {"viewer": {"events": {
	"totalCount": 2,
	"pageInfo": {"endCursor": "cur1", "hasNextPage": true},
	"edges": [{"node": {
		"id": "ev1",
		"name": "Daft Punk",
		"startDatetime": "2025-10-10T20:00:00+02:00",
		"currency": "EUR",
		"artists": [{"name": "Daft Punk"}],
		"venues": [{"name": "L'Olympia", "city": "Paris", "country": "France", "timezoneName": "Europe/Paris"}],
		"tickets": {"totalCount": 480}
	}}]
}}}}`

const pageTwo = `{"data": {"viewer": {"events": {
	"totalCount": 2,
	"pageInfo": {"endCursor": "", "hasNextPage": false},
	"edges": [{"node": {
		"id": "ev2",
		"name": "Mystery Night",
		"startDatetime": "",
		"venues": [{"name": "", "city": "Lyon"}],
		"tickets": {"totalCount": null}
	}}]
}}}}`

func TestFetchEventsPaginates(t *testing.T) {
	var requests []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)

		w.Header().Set("Content-Type", "application/json")
		if len(requests) == 1 {
			w.Write([]byte(pageOne))
			return
		}
		w.Write([]byte(pageTwo))
	}))
	defer server.Close()

	client := NewClient(Config{ApiToken: "token-123", Endpoint: server.URL}, "run-1")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	events, err := client.FetchEvents(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	require.Len(t, events, 2)

	// second request carries the cursor from the first page
	vars := requests[1]["variables"].(map[string]any)
	require.Equal(t, "cur1", vars["after"])

	first := events[0]
	require.Equal(t, "ev1", first.ProviderID)
	require.Equal(t, consolidate.ProviderDice, first.Provider)
	require.Equal(t, "Daft Punk", first.Artist)
	require.Equal(t, "L'Olympia", first.Venue)
	require.Equal(t, 480, *first.TicketsSold)
	require.True(t, first.StartTime.Equal(time.Date(2025, 10, 10, 20, 0, 0, 0, chrono.Location)))

	second := events[1]
	require.Equal(t, "ev2", second.ProviderID)
	require.True(t, second.StartTime.IsZero())
	require.Nil(t, second.TicketsSold)
	// venue falls back to the city when the api leaves it blank
	require.Equal(t, "Lyon", second.Venue)
	require.Equal(t, chrono.Location.String(), second.Timezone)
}

func TestFetchEventsGraphqlError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": null, "errors": [{"message": "unauthorized"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{ApiToken: "bad", Endpoint: server.URL}, "run-1")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := client.FetchEvents(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}
