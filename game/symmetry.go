package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Symmetry is one of the three non-identity reflections of the board.
type Symmetry int

const (
	MirrorLR Symmetry = iota
	MirrorUD
	MirrorBoth
)

// Kinds lists the symmetries in the order they are tried when canonicalizing.
var Kinds = [...]Symmetry{MirrorLR, MirrorUD, MirrorBoth}

var ErrInvalidSymmetry = errors.New("invalid symmetry kind")

func (k Symmetry) String() string {
	switch k {
	case MirrorLR:
		return "mirror-lr"
	case MirrorUD:
		return "mirror-ud"
	case MirrorBoth:
		return "mirror-both"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(k))
	}
}

func (k Symmetry) valid() bool {
	return k >= MirrorLR && k <= MirrorBoth
}

// Each table maps a knight step to its mirror image. Every table is its own
// inverse.
var mirroredDirections = [...][numDirections]Action{
	MirrorLR: {
		NNE: NNW, ENE: WNW, ESE: WSW, SSE: SSW,
		SSW: SSE, WSW: ESE, WNW: ENE, NNW: NNE,
	},
	MirrorUD: {
		NNE: SSE, ENE: ESE, ESE: ENE, SSE: NNE,
		SSW: NNW, WSW: WNW, WNW: WSW, NNW: SSW,
	},
	MirrorBoth: {
		NNE: SSW, ENE: WSW, ESE: WNW, SSE: NNW,
		SSW: NNE, WSW: ENE, WNW: ESE, NNW: SSE,
	},
}

// Symmetric is a reflected state together with the reflection that produced it.
type Symmetric struct {
	State Isolation
	Kind  Symmetry
}

// SymmetricPosition reflects a cell. NoPosition maps to itself.
func SymmetricPosition(pos Position, kind Symmetry) (Position, error) {
	if !kind.valid() {
		return NoPosition, errors.Wrapf(ErrInvalidSymmetry, "kind %d", int(kind))
	}
	if pos == NoPosition {
		return NoPosition, nil
	}
	row, col := Coords(pos)
	switch kind {
	case MirrorLR:
		col = Width + 1 - col
	case MirrorUD:
		row = Height - 1 - row
	case MirrorBoth:
		col = Width + 1 - col
		row = Height - 1 - row
	}
	return At(row, col), nil
}

// SymmetricAction maps an action to its image under the reflection.
func SymmetricAction(a Action, kind Symmetry) (Action, error) {
	if !kind.valid() {
		return a, errors.Wrapf(ErrInvalidSymmetry, "kind %d", int(kind))
	}
	if a < 0 {
		return a, errors.Errorf("invalid action %d", int(a))
	}
	if a.IsPlacement() {
		pos, err := SymmetricPosition(a.Target(NoPosition), kind)
		if err != nil {
			return a, err
		}
		return Place(pos), nil
	}
	return mirroredDirections[kind][a], nil
}

// Reflect returns the image of the state under a single reflection.
func Reflect(s Isolation, kind Symmetry) (Isolation, error) {
	if !kind.valid() {
		return s, errors.Wrapf(ErrInvalidSymmetry, "kind %d", int(kind))
	}
	var board Bitboard
	for _, cell := range s.board.Cells() {
		image, _ := SymmetricPosition(cell, kind)
		board = board.set(image)
	}
	reflected := Isolation{board: board, ply: s.ply}
	for p, loc := range s.locs {
		reflected.locs[p], _ = SymmetricPosition(loc, kind)
	}
	return reflected, nil
}

// Symmetries returns the three reflected images of the state in Kinds order.
func Symmetries(s Isolation) []Symmetric {
	images := make([]Symmetric, 0, len(Kinds))
	for _, kind := range Kinds {
		image, _ := Reflect(s, kind)
		images = append(images, Symmetric{State: image, Kind: kind})
	}
	return images
}
