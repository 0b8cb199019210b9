package book

import (
	"isolation/game"
)

// Book maps opening positions to a preferred action. Positions are stored
// once per symmetry class; Lookup resolves the reflections.
type Book struct {
	Depth int
	moves map[game.Isolation]game.Action
}

func New(moves map[game.Isolation]game.Action, depth int) *Book {
	if moves == nil {
		moves = make(map[game.Isolation]game.Action)
	}
	return &Book{Depth: depth, moves: moves}
}

func (b *Book) Len() int {
	return len(b.moves)
}

// Lookup returns the book action for state. States at or past Depth plies
// are never in the book.
func (b *Book) Lookup(state game.Isolation) (game.Action, bool) {
	if b == nil || state.PlyCount() >= b.Depth {
		return 0, false
	}
	if action, ok := b.moves[state]; ok {
		return action, legal(state, action)
	}
	for _, image := range game.Symmetries(state) {
		stored, ok := b.moves[image.State]
		if !ok {
			continue
		}
		action, err := game.SymmetricAction(stored, image.Kind)
		if err != nil {
			return 0, false
		}
		return action, legal(state, action)
	}
	return 0, false
}

func legal(state game.Isolation, action game.Action) bool {
	for _, a := range state.Actions() {
		if a == action {
			return true
		}
	}
	return false
}
