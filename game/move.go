package game

import "fmt"

// Action is either one of the eight knight steps relative to the mover's
// location, or the placement of an unplaced mover on an absolute cell.
type Action int16

// Knight steps named by compass offset: N is +row, E is +col.
// NNE is two rows north, one column east.
const (
	NNE Action = iota
	ENE
	ESE
	SSE
	SSW
	WSW
	WNW
	NNW
	numDirections
)

// Directions lists the knight steps in their native enumeration order.
var Directions = [numDirections]Action{NNE, ENE, ESE, SSE, SSW, WSW, WNW, NNW}

type step struct{ rows, cols int }

var steps = [numDirections]step{
	NNE: {2, 1},
	ENE: {1, 2},
	ESE: {-1, 2},
	SSE: {-2, 1},
	SSW: {-2, -1},
	WSW: {-1, -2},
	WNW: {1, -2},
	NNW: {2, -1},
}

var directionNames = [numDirections]string{"NNE", "ENE", "ESE", "SSE", "SSW", "WSW", "WNW", "NNW"}

// Place returns the opening action that puts the mover on pos.
func Place(pos Position) Action {
	return Action(int(numDirections) + int(pos))
}

func (a Action) IsPlacement() bool {
	return a >= numDirections
}

// Target returns the cell the action lands on when played from loc.
func (a Action) Target(loc Position) Position {
	if a.IsPlacement() {
		return Position(int(a) - int(numDirections))
	}
	s := steps[a]
	return loc + Position(s.rows*RowStride+s.cols)
}

func (a Action) String() string {
	if a < 0 {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	if a.IsPlacement() {
		row, col := Coords(a.Target(NoPosition))
		return fmt.Sprintf("place(%d,%d)", row, col)
	}
	return directionNames[a]
}
