package application

import (
	"container/heap"

	"github.com/ruvnet/arcadia-goap/domain/action"
	"github.com/ruvnet/arcadia-goap/domain/goal"
	"github.com/ruvnet/arcadia-goap/domain/plan"
	"github.com/ruvnet/arcadia-goap/domain/world"
)

// Heuristic estimates the remaining cost from a state to the goal
// conditions.
type Heuristic func(s world.State, conditions world.Facts) float64

// HeuristicUnsatisfied counts the goal conditions the state does not match.
// Admissible as long as every action resolves at most one unmatched
// condition per unit of cost; domains with cheap multi-effect actions
// should use HeuristicZero instead.
func HeuristicUnsatisfied(s world.State, conditions world.Facts) float64 {
	return float64(s.DistanceTo(conditions))
}

// HeuristicZero estimates nothing, degrading the search to uniform cost.
// Slower but correct for any cost model.
func HeuristicZero(world.State, world.Facts) float64 {
	return 0
}

const noParent = int32(-1)

// searchNode is one arena entry. Parent links are arena indices, so the
// whole search tree is freed at once when the search returns.
type searchNode struct {
	state     world.State
	parent    int32
	actionIdx int32
	g         float64
}

// openItem references an arena node from the open list. seq is the push
// order and serves as the final tie-break.
type openItem struct {
	node int32
	f    float64
	h    float64
	seq  int
}

// openList is a min-heap ordered by f, then h, then push order. The
// ordering is total, which keeps pop order independent of map iteration
// and timing.
type openList []openItem

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}

func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x any) { *o = append(*o, x.(openItem)) }

func (o *openList) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

// search runs A* from start toward g over the given actions. Candidates
// are tried in slice order on every expansion; together with the heap's
// total ordering this makes the result identical on every call for fixed
// inputs. An iteration is one pop from the open set.
func search(start world.State, g goal.Goal, actions []action.Action, maxIterations int, h Heuristic) (*plan.Plan, plan.Diagnostics) {
	diag := plan.Diagnostics{GoalID: g.ID}

	nodes := make([]searchNode, 1, 64)
	nodes[0] = searchNode{state: start, parent: noParent, actionIdx: noParent}

	rootH := h(start, g.Conditions)
	open := openList{{node: 0, f: rootH, h: rootH, seq: 0}}
	seq := 1
	closed := make(map[string]struct{})

	diag.NodesGenerated = 1
	diag.OpenPeak = 1

	for open.Len() > 0 && diag.Iterations < maxIterations {
		diag.Iterations++
		item := heap.Pop(&open).(openItem)
		node := nodes[item.node]

		if g.Satisfied(node.state) {
			diag.Outcome = plan.OutcomePlanFound
			return reconstruct(nodes, item.node, actions, g.ID), diag
		}

		key := node.state.Key()
		if _, expanded := closed[key]; expanded {
			continue
		}
		closed[key] = struct{}{}
		diag.NodesExpanded++

		for ai, act := range actions {
			if !act.Applicable(node.state) {
				continue
			}
			next := act.Apply(node.state)
			if _, expanded := closed[next.Key()]; expanded {
				continue
			}

			child := searchNode{
				state:     next,
				parent:    item.node,
				actionIdx: int32(ai),
				g:         node.g + act.Cost,
			}
			nodes = append(nodes, child)

			nextH := h(next, g.Conditions)
			heap.Push(&open, openItem{
				node: int32(len(nodes) - 1),
				f:    child.g + nextH,
				h:    nextH,
				seq:  seq,
			})
			seq++
			diag.NodesGenerated++
			if open.Len() > diag.OpenPeak {
				diag.OpenPeak = open.Len()
			}
		}
	}

	if open.Len() == 0 {
		diag.Outcome = plan.OutcomeNoPlan
	} else {
		diag.Outcome = plan.OutcomeBudgetExceeded
	}
	return nil, diag
}

// reconstruct walks parent links from the satisfying node back to the root
// and reverses the collected steps into execution order.
func reconstruct(nodes []searchNode, idx int32, actions []action.Action, goalID string) *plan.Plan {
	var steps []plan.Step
	for i := idx; nodes[i].parent != noParent; i = nodes[i].parent {
		act := actions[nodes[i].actionIdx]
		steps = append(steps, plan.Step{ActionID: act.ID, Cost: act.Cost})
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}

	return &plan.Plan{
		GoalID:    goalID,
		Steps:     steps,
		TotalCost: nodes[idx].g,
	}
}
