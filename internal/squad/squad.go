// Package squad assembles a budget-constrained roster from the ranked player
// pool. The selector is a greedy heuristic with bounded local repair, not a
// knapsack solver: it keeps the highest-scored picks and only trades cost
// away when forced, so cheaper-but-better global allocations can stay
// unexplored. Identical inputs always produce identical output.
package squad

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/playermodel"
)

// DefaultBudget is the standard squad budget in currency units.
const DefaultBudget = 100.0

// DefaultMaxSwapAttempts bounds the repair loop. It is a manually tuned
// escape hatch, not a convergence guarantee.
const DefaultMaxSwapAttempts = 200

// missingCostSentinel stands in for an unknown cost so such players are
// never preferentially retained during repair.
const missingCostSentinel = 999.0

// Quota is the required head count for one position class.
type Quota struct {
	Position string
	Count    int
}

// DefaultQuotas returns the standard 15-player squad shape.
func DefaultQuotas() []Quota {
	return []Quota{
		{Position: dataset.PosGoalkeeper, Count: 2},
		{Position: dataset.PosDefender, Count: 5},
		{Position: dataset.PosMidfielder, Count: 5},
		{Position: dataset.PosForward, Count: 3},
	}
}

// Rules configure one selection run.
type Rules struct {
	Budget          float64
	Quotas          []Quota
	MaxSwapAttempts int
}

// DefaultRules returns the standard budget and quotas.
func DefaultRules() Rules {
	return Rules{
		Budget:          DefaultBudget,
		Quotas:          DefaultQuotas(),
		MaxSwapAttempts: DefaultMaxSwapAttempts,
	}
}

// Size is the roster size the rules require.
func (r Rules) Size() int {
	n := 0
	for _, q := range r.Quotas {
		n += q.Count
	}
	return n
}

// Cause classifies why a selection is infeasible.
type Cause int

const (
	// CauseNone: the selection is feasible.
	CauseNone Cause = iota
	// CauseShortPosition: a position pool has fewer candidates than its quota.
	CauseShortPosition
	// CauseOverBudget: no combination under budget was found within the
	// attempt bound.
	CauseOverBudget
)

// Result is the selection outcome. Infeasibility is a normal return value,
// never an error: callers are expected to react to it (for example by
// raising the budget).
type Result struct {
	Players   []playermodel.Row
	TotalCost float64
	Attempts  int
	Feasible  bool
	Cause     Cause
	Reason    string
}

// Select picks a squad from the pool. The pool must already be sorted by
// tuned score descending, the order playermodel.Build produces; position
// pools are read in that order.
func Select(pool []playermodel.Row, rules Rules) Result {
	pools := map[string][]playermodel.Row{}
	for _, row := range pool {
		pools[row.Position] = append(pools[row.Position], row)
	}

	// Greedy fill. A short position is noted but only reported at the final
	// check, after repair has run its course.
	var selected []playermodel.Row
	var shortfalls []string
	for _, q := range rules.Quotas {
		candidates := pools[q.Position]
		take := q.Count
		if take > len(candidates) {
			shortfalls = append(shortfalls, fmt.Sprintf("position %s has only %d candidates, need %d", q.Position, len(candidates), q.Count))
			take = len(candidates)
		}
		selected = append(selected, candidates[:take]...)
	}

	attempts := 0
	for totalCost(selected) > rules.Budget && attempts < rules.MaxSwapAttempts {
		// Weakest value per cost first: most expensive, and among equals the
		// lowest score.
		sort.SliceStable(selected, func(i, j int) bool {
			ci, cj := memberCost(selected[i]), memberCost(selected[j])
			if ci != cj {
				return ci > cj
			}
			return selected[i].TunedScore < selected[j].TunedScore
		})

		replaced := false
		for idx := range selected {
			cand, ok := cheaperReplacement(pools[selected[idx].Position], selected, memberCost(selected[idx]))
			if ok {
				selected[idx] = cand
				replaced = true
				break
			}
		}
		if !replaced {
			// A full pass with no swap: no further improvement is possible.
			break
		}
		attempts++
	}

	result := Result{
		Players:   orderSquad(selected, rules.Quotas),
		TotalCost: totalCost(selected),
		Attempts:  attempts,
	}

	switch {
	case len(shortfalls) > 0:
		result.Cause = CauseShortPosition
		result.Reason = strings.Join(shortfalls, "; ")
	case result.TotalCost > rules.Budget:
		result.Cause = CauseOverBudget
		result.Reason = fmt.Sprintf("no combination found under budget %.1f after %d attempts", rules.Budget, attempts)
	default:
		result.Feasible = true
	}
	return result
}

// cheaperReplacement finds the first candidate in pool order that is not
// already selected and is strictly cheaper than cost.
func cheaperReplacement(pool []playermodel.Row, selected []playermodel.Row, cost float64) (playermodel.Row, bool) {
	for _, cand := range pool {
		if inSquad(selected, cand.Name) {
			continue
		}
		if memberCost(cand) < cost {
			return cand, true
		}
	}
	return playermodel.Row{}, false
}

func inSquad(selected []playermodel.Row, name string) bool {
	for _, row := range selected {
		if row.Name == name {
			return true
		}
	}
	return false
}

func memberCost(row playermodel.Row) float64 {
	return row.Cost.Or(missingCostSentinel)
}

func totalCost(selected []playermodel.Row) float64 {
	total := 0.0
	for _, row := range selected {
		total += memberCost(row)
	}
	return total
}

// orderSquad presents the squad position by position, best score first
// within each, regardless of the churn the repair loop caused.
func orderSquad(selected []playermodel.Row, quotas []Quota) []playermodel.Row {
	out := make([]playermodel.Row, 0, len(selected))
	for _, q := range quotas {
		var members []playermodel.Row
		for _, row := range selected {
			if row.Position == q.Position {
				members = append(members, row)
			}
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].TunedScore > members[j].TunedScore
		})
		out = append(out, members...)
	}
	return out
}
