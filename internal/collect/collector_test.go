package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func intPtr(n int) *int { return &n }

// fplStub serves the three API endpoints the collector touches.
func fplStub(t *testing.T, bootstrap Bootstrap, fixtures []Fixture, summaries map[string]ElementSummary) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap-static/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(bootstrap)
	})
	mux.HandleFunc("/fixtures/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fixtures)
	})
	mux.HandleFunc("/element-summary/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/element-summary/"), "/")
		summary, ok := summaries[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(summary)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testClient(baseURL string) *Client {
	c := NewClient()
	c.BaseURL = baseURL
	c.Limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestCollectCurrent(t *testing.T) {
	bootstrap := Bootstrap{
		GameSeason: "2025/26",
		Events: []Event{
			{ID: 6, Finished: true},
			{ID: 7, IsCurrent: true},
		},
		Elements: []Element{
			{
				ID: 1, WebName: "Salah", Team: 1, ElementType: 3,
				NowCost: 131, SelectedByPercent: "45.2", Form: "6.8",
				Status: "a", GoalsScored: 8, Assists: 5,
				ExpectedGoals: "6.1", ExpectedAssists: "3.2",
				ExpectedGoalInvolvements: "9.3", ExpectedGoalsConceded: "7.0",
			},
		},
		Teams: []Team{
			{ID: 1, Name: "Liverpool", ShortName: "LIV"},
			{ID: 2, Name: "Everton", ShortName: "EVE"},
		},
		ElementTypes: []ElementType{
			{ID: 3, SingularNameShort: "MID"},
		},
	}
	fixtures := []Fixture{
		{ID: 70, Event: intPtr(7), Finished: true, TeamH: 1, TeamA: 2},
		{ID: 81, Event: intPtr(8), Finished: false, TeamH: 2, TeamA: 1},
	}
	summaries := map[string]ElementSummary{
		"1": {History: []HistoryEntry{
			{
				Round: 7, Minutes: 90, GoalsScored: 1, Assists: 1,
				TotalPoints: 12, Bps: 44, Bonus: 3, Starts: 1,
				WasHome: true, TeamHScore: intPtr(2), TeamAScore: intPtr(1),
				OpponentTeam: 2,
				Influence:    "54.2",
				Creativity:   "30.1",
				Threat:       "60.0",
				ICTIndex:     "14.4",
			},
		}},
	}

	srv := fplStub(t, bootstrap, fixtures, summaries)
	collector := NewCollector(testClient(srv.URL), nil)

	snapshot, err := collector.CollectCurrent(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025_26", snapshot.Season)
	assert.Equal(t, 7, snapshot.GW)
	require.Len(t, snapshot.Records, 1)

	r := snapshot.Records[0]
	assert.Equal(t, "Salah", r.Name)
	assert.Equal(t, "MID", r.Position)
	assert.Equal(t, "Liverpool", r.Team)
	assert.Equal(t, 7, r.GW)
	assert.InDelta(t, 13.1, r.Cost.Or(0), 1e-9)
	assert.Equal(t, 90.0, r.Minutes)
	assert.Equal(t, 12.0, r.Points)
	assert.Equal(t, "Everton", r.Opponent)
	assert.Equal(t, "Everton", r.NextOpponent)
	assert.True(t, r.WasHome)
	assert.True(t, r.Played())
	assert.Equal(t, 9.3, r.XGI.Or(0))
}

func TestCollectCurrent_DoubleGameweekFlattens(t *testing.T) {
	bootstrap := Bootstrap{
		GameSeason: "2025/26",
		Events:     []Event{{ID: 7, IsCurrent: true}},
		Elements:   []Element{{ID: 1, WebName: "Salah", Team: 1, ElementType: 3, NowCost: 131}},
		Teams: []Team{
			{ID: 1, Name: "Liverpool"}, {ID: 2, Name: "Everton"}, {ID: 3, Name: "Fulham"},
		},
		ElementTypes: []ElementType{{ID: 3, SingularNameShort: "MID"}},
	}
	summaries := map[string]ElementSummary{
		"1": {History: []HistoryEntry{
			{Round: 7, Minutes: 90, TotalPoints: 8, OpponentTeam: 2, Influence: "20.0"},
			{Round: 7, Minutes: 45, TotalPoints: 3, OpponentTeam: 3, Influence: "10.5"},
			{Round: 6, Minutes: 90, TotalPoints: 99, OpponentTeam: 2},
		}},
	}

	srv := fplStub(t, bootstrap, nil, summaries)
	collector := NewCollector(testClient(srv.URL), nil)

	snapshot, err := collector.CollectCurrent(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Records, 1)

	r := snapshot.Records[0]
	assert.Equal(t, 135.0, r.Minutes)
	assert.Equal(t, 11.0, r.Points)
	assert.Equal(t, "Everton, Fulham", r.Opponent)
	assert.InDelta(t, 30.5, r.Influence.Or(0), 1e-9)
}

func TestCollectCurrent_NoCurrentGameweek(t *testing.T) {
	bootstrap := Bootstrap{
		GameSeason: "2025/26",
		Events:     []Event{{ID: 38, Finished: true}},
	}
	srv := fplStub(t, bootstrap, nil, nil)
	collector := NewCollector(testClient(srv.URL), nil)

	_, err := collector.CollectCurrent(context.Background())
	assert.ErrorIs(t, err, errNoCurrentGW)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Bootstrap{GameSeason: "2025/26"})
	}))
	t.Cleanup(srv.Close)

	c := testClient(srv.URL)
	c.Retry.InitialBackoff = 1
	b, err := c.BootstrapStatic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025/26", b.GameSeason)
	assert.Equal(t, 2, calls)
}
