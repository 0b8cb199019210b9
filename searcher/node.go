package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"isolation/game"
)

const noParent = -1

// node is a search tree node. Rewards are kept from the perspective of the
// player who made the move into the node, so a parent maximizes over them.
type node struct {
	parent   int
	action   game.Action // Move from the parent that produced this node
	state    game.State
	terminal bool
	untried  []game.Action
	children []int
	rewards  float64
	visits   int
}

// tree owns every node of one decision. Nodes refer to their parent by index.
type tree struct {
	nodes []node
}

func newTree(root game.State) *tree {
	t := &tree{}
	t.add(noParent, 0, root)
	return t
}

func (t *tree) add(parent int, action game.Action, state game.State) int {
	t.nodes = append(t.nodes, node{
		parent:   parent,
		action:   action,
		state:    state,
		terminal: state.Terminal(),
		untried:  state.Actions(),
		visits:   1,
	})
	return len(t.nodes) - 1
}

func (t *tree) expandable(i int) bool {
	return len(t.nodes[i].untried) > 0
}

// expand adds a child for the next untried action in native order.
func (t *tree) expand(i int) int {
	n := &t.nodes[i]
	action := n.untried[0]
	n.untried = n.untried[1:]
	state := n.state.Result(action)

	child := t.add(i, action, state)
	// t.nodes may have been reallocated by add
	t.nodes[i].children = append(t.nodes[i].children, child)
	return child
}

// bestChild picks the child with the highest UCT score, breaking ties
// uniformly at random. Returns -1 for a node without children.
func (t *tree) bestChild(i int, factor float64, rng *rand.Rand) int {
	n := &t.nodes[i]
	if len(n.children) == 0 {
		return -1
	}
	policy := newUCT(factor, float64(n.visits))

	bestScore := math.Inf(-1)
	best := make([]int, 0, len(n.children))
	for _, c := range n.children {
		child := &t.nodes[c]
		score := policy.evaluate(child.rewards, float64(child.visits))
		if score > bestScore {
			bestScore = score
			best = append(best[:0], c)
		} else if score == bestScore {
			best = append(best, c)
		}
	}
	return best[rng.Intn(len(best))]
}

// backup walks from node i up to the root, flipping the reward's sign at
// every ply since consecutive ancestors belong to alternating movers.
func (t *tree) backup(i int, reward float64) {
	for i != noParent {
		n := &t.nodes[i]
		n.visits++
		n.rewards += reward
		reward = -reward
		i = n.parent
	}
}
