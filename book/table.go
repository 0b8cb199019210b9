package book

import (
	"isolation/game"
)

// Counter accumulates reward per action and remembers the order in which
// actions were first recorded.
type Counter struct {
	order  []game.Action
	totals map[game.Action]float64
}

func NewCounter() *Counter {
	return &Counter{totals: make(map[game.Action]float64)}
}

func (c *Counter) Add(action game.Action, reward float64) {
	if _, ok := c.totals[action]; !ok {
		c.order = append(c.order, action)
	}
	c.totals[action] += reward
}

func (c *Counter) Get(action game.Action) float64 {
	return c.totals[action]
}

// Actions lists the recorded actions in first-seen order.
func (c *Counter) Actions() []game.Action {
	return append([]game.Action(nil), c.order...)
}

// Best returns the action with the highest total. Ties go to the action that
// was recorded first.
func (c *Counter) Best() (game.Action, bool) {
	if len(c.order) == 0 {
		return 0, false
	}
	best := c.order[0]
	for _, action := range c.order[1:] {
		if c.totals[action] > c.totals[best] {
			best = action
		}
	}
	return best, true
}

// Table maps one representative state per symmetry class to its counter.
type Table map[game.Isolation]*Counter

// Record adds reward to (state, action). If the state itself is not a key
// but one of its reflections is, the reward goes to that reflection with the
// reflected action. The first member of a class to be recorded stays its
// representative.
func (t Table) Record(state game.Isolation, action game.Action, reward float64) {
	if c, ok := t[state]; ok {
		c.Add(action, reward)
		return
	}
	for _, image := range game.Symmetries(state) {
		c, ok := t[image.State]
		if !ok {
			continue
		}
		mapped, err := game.SymmetricAction(action, image.Kind)
		if err != nil {
			panic(err)
		}
		c.Add(mapped, reward)
		return
	}
	c := NewCounter()
	c.Add(action, reward)
	t[state] = c
}

// Reduce keeps the best action of every recorded state.
func Reduce(t Table) map[game.Isolation]game.Action {
	moves := make(map[game.Isolation]game.Action, len(t))
	for state, c := range t {
		if action, ok := c.Best(); ok {
			moves[state] = action
		}
	}
	return moves
}
