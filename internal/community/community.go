// Package community groups players into communities from a single gameweek
// table: a similarity graph over standardized performance features (or
// price/form proximity), then Louvain modularity maximization. This is an
// independent analysis; nothing in the ranking pipeline depends on it.
package community

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	graphcommunity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/stats"
)

// Options tune the graph construction.
type Options struct {
	// SimilarityThreshold is the minimum cosine similarity for an edge in
	// the performance network.
	SimilarityThreshold float64
	// CostThreshold and FormThreshold bound the price/form proximity
	// network: players within both get connected.
	CostThreshold float64
	FormThreshold float64
	// Resolution is the Louvain resolution parameter.
	Resolution float64
}

// DefaultOptions matches the thresholds the analysis was tuned with.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.6,
		CostThreshold:       1.0,
		FormThreshold:       1.5,
		Resolution:          1.0,
	}
}

// Community is one detected player group with its headline profile.
type Community struct {
	ID        int
	Size      int
	Players   []string
	Positions map[string]int
	AvgCost   stats.Value
	AvgPoints float64
}

// DetectPerformance builds the performance-similarity network and returns
// its communities, largest first.
func DetectPerformance(records []dataset.PeriodRecord, opts Options) []Community {
	features := performanceFeatures(records)
	standardize(features)

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range records {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			sim := cosine(features[i], features[j])
			if sim > opts.SimilarityThreshold {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), sim))
			}
		}
	}
	return detect(g, records, opts.Resolution)
}

// DetectPriceForm connects players of similar cost and form; same-position
// pairs get a stronger tie.
func DetectPriceForm(records []dataset.PeriodRecord, opts Options) []Community {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range records {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < len(records); i++ {
		for j := i + 1; j < len(records); j++ {
			costDiff := math.Abs(records[i].Cost.Or(0) - records[j].Cost.Or(0))
			formDiff := math.Abs(records[i].Form.Or(0) - records[j].Form.Or(0))
			if costDiff > opts.CostThreshold || formDiff > opts.FormThreshold {
				continue
			}
			weight := 1.0
			if records[i].Position == records[j].Position {
				weight = 1.5
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), weight))
		}
	}
	return detect(g, records, opts.Resolution)
}

func detect(g graph.Undirected, records []dataset.PeriodRecord, resolution float64) []Community {
	if resolution <= 0 {
		resolution = 1.0
	}
	reduced := graphcommunity.Modularize(g, resolution, nil)

	var out []Community
	for _, nodes := range reduced.Communities() {
		c := Community{
			Size:      len(nodes),
			Positions: map[string]int{},
		}
		var costs []stats.Value
		points := 0.0
		ids := make([]int, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, int(n.ID()))
		}
		sort.Ints(ids)
		for _, id := range ids {
			r := records[id]
			c.Players = append(c.Players, r.Name)
			c.Positions[r.Position]++
			costs = append(costs, r.Cost)
			points += r.Points
		}
		c.AvgCost = stats.MeanDefined(costs)
		c.AvgPoints = points / float64(len(ids))
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}
		return out[i].Players[0] < out[j].Players[0]
	})
	for i := range out {
		out[i].ID = i
	}
	return out
}

// performanceFeatures extracts the metric vector per player. Undefined
// cells contribute zero, matching how the features were standardized when
// the thresholds were tuned.
func performanceFeatures(records []dataset.PeriodRecord) [][]float64 {
	features := make([][]float64, len(records))
	for i, r := range records {
		features[i] = []float64{
			r.Goals,
			r.Assists,
			r.XG.Or(0),
			r.XA.Or(0),
			r.ICTIndex.Or(0),
			r.BPS,
			r.Points,
			r.Form.Or(0),
			r.Minutes,
		}
	}
	return features
}

// standardize z-scores each feature column in place. Constant columns
// become zero.
func standardize(features [][]float64) {
	if len(features) == 0 {
		return
	}
	cols := len(features[0])
	column := make([]float64, len(features))
	for c := 0; c < cols; c++ {
		for i := range features {
			column[i] = features[i][c]
		}
		mean, std := stat.MeanStdDev(column, nil)
		for i := range features {
			if std == 0 || math.IsNaN(std) {
				features[i][c] = 0
				continue
			}
			features[i][c] = (features[i][c] - mean) / std
		}
	}
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
