// Package collect turns the remote FPL API into one gameweek table per run.
// Everything downstream treats its output as an immutable snapshot; no
// ordering guarantees leak out of the concurrent fetch.
package collect

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

// DefaultWorkers bounds the concurrent per-player history fetches.
const DefaultWorkers = 10

// Collector assembles gameweek tables from the API.
type Collector struct {
	Client  *Client
	Workers int
	Log     *zap.Logger
}

// NewCollector wires a collector with default fan-out.
func NewCollector(client *Client, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{Client: client, Workers: DefaultWorkers, Log: log}
}

// Snapshot is one collected gameweek.
type Snapshot struct {
	Season  string
	GW      int
	Records []dataset.PeriodRecord
}

// CollectCurrent fetches the current gameweek's statistics for every player.
func (c *Collector) CollectCurrent(ctx context.Context) (Snapshot, error) {
	runID := uuid.NewString()
	log := c.Log.With(zap.String("run_id", runID))

	bootstrap, err := c.Client.BootstrapStatic(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	gw := currentGW(bootstrap.Events)
	if gw == 0 {
		return Snapshot{}, errNoCurrentGW
	}
	log.Info("collecting gameweek",
		zap.Int("gw", gw),
		zap.String("season", bootstrap.GameSeason),
		zap.Int("players", len(bootstrap.Elements)))

	fixtures, err := c.Client.Fixtures(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	histories, err := c.fetchHistories(ctx, bootstrap.Elements, log)
	if err != nil {
		return Snapshot{}, err
	}

	teamNames := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamNames[t.ID] = t.Name
	}
	positions := make(map[int]string, len(bootstrap.ElementTypes))
	for _, et := range bootstrap.ElementTypes {
		positions[et.ID] = et.SingularNameShort
	}

	records := make([]dataset.PeriodRecord, 0, len(bootstrap.Elements))
	for _, el := range bootstrap.Elements {
		history := histories[el.ID]
		var gwRows []HistoryEntry
		for _, h := range history.History {
			if h.Round == gw {
				gwRows = append(gwRows, h)
			}
		}
		records = append(records, buildRecord(el, gw, gwRows, fixtures, teamNames, positions))
	}

	season := bootstrap.GameSeason
	if season == "" {
		season = "Unknown_Season"
	}
	season = strings.ReplaceAll(season, "/", "_")

	log.Info("gameweek collected", zap.Int("rows", len(records)))
	return Snapshot{Season: season, GW: gw, Records: records}, nil
}

// fetchHistories pulls every player's history with bounded concurrency.
func (c *Collector) fetchHistories(ctx context.Context, elements []Element, log *zap.Logger) (map[int]ElementSummary, error) {
	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	histories := make(map[int]ElementSummary, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, el := range elements {
		g.Go(func() error {
			summary, err := c.Client.ElementSummaryByID(gctx, el.ID)
			if err != nil {
				log.Warn("player history fetch failed", zap.Int("element", el.ID), zap.Error(err))
				return err
			}
			mu.Lock()
			histories[el.ID] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return histories, nil
}

// buildRecord flattens a player's rows for the gameweek (usually one match,
// two in a double gameweek) into a single period record.
func buildRecord(el Element, gw int, rows []HistoryEntry, fixtures []Fixture, teamNames, positions map[int]string) dataset.PeriodRecord {
	r := dataset.PeriodRecord{
		Name:          el.WebName,
		Position:      positions[el.ElementType],
		Team:          teamNames[el.Team],
		GW:            gw,
		Cost:          stats.Of(float64(el.NowCost) / 10),
		Selected:      stats.Parse(el.SelectedByPercent),
		Form:          stats.Parse(el.Form),
		Status:        el.Status,
		SeasonGoals:   float64(el.GoalsScored),
		SeasonAssists: float64(el.Assists),
		XA:            stats.Parse(el.ExpectedAssists),
		XG:            stats.Parse(el.ExpectedGoals),
		XGI:           stats.Parse(el.ExpectedGoalInvolvements),
		XGC:           stats.Parse(el.ExpectedGoalsConceded),
	}

	var opponents []string
	for i, h := range rows {
		r.Minutes += float64(h.Minutes)
		r.Goals += float64(h.GoalsScored)
		r.Assists += float64(h.Assists)
		r.Saves += float64(h.Saves)
		r.GoalsConceded += float64(h.GoalsConceded)
		r.CleanSheets += float64(h.CleanSheets)
		r.OwnGoals += float64(h.OwnGoals)
		r.PensMissed += float64(h.PenaltiesMissed)
		r.PensSaved += float64(h.PenaltiesSaved)
		r.YellowCards += float64(h.YellowCards)
		r.RedCards += float64(h.RedCards)
		r.Starts += float64(h.Starts)
		r.Points += float64(h.TotalPoints)
		r.BPS += float64(h.Bps)
		r.Bonus += float64(h.Bonus)
		r.TransfersIn += float64(h.TransfersIn)
		r.TransfersOut += float64(h.TransfersOut)
		r.WasHome = r.WasHome || h.WasHome
		if i == 0 {
			if h.TeamHScore != nil {
				r.TeamHScore = stats.Of(float64(*h.TeamHScore))
			}
			if h.TeamAScore != nil {
				r.TeamAScore = stats.Of(float64(*h.TeamAScore))
			}
		}
		r.Influence = addParsed(r.Influence, h.Influence)
		r.Creativity = addParsed(r.Creativity, h.Creativity)
		r.Threat = addParsed(r.Threat, h.Threat)
		r.ICTIndex = addParsed(r.ICTIndex, h.ICTIndex)
		opponents = append(opponents, teamNames[h.OpponentTeam])
	}
	r.Opponent = strings.Join(opponents, ", ")
	r.NextOpponent = nextOpponent(el.Team, fixtures, teamNames)
	return r
}

func addParsed(acc stats.Value, s string) stats.Value {
	v, ok := stats.Parse(s).Float()
	if !ok {
		return acc
	}
	return stats.Of(acc.Or(0) + v)
}

// nextOpponent resolves the first unfinished scheduled fixture for a team.
func nextOpponent(teamID int, fixtures []Fixture, teamNames map[int]string) string {
	for _, f := range fixtures {
		if f.Event == nil || f.Finished {
			continue
		}
		switch teamID {
		case f.TeamH:
			return teamNames[f.TeamA]
		case f.TeamA:
			return teamNames[f.TeamH]
		}
	}
	return ""
}

func currentGW(events []Event) int {
	for _, ev := range events {
		if ev.IsCurrent {
			return ev.ID
		}
	}
	return 0
}
