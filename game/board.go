package game

import "math/bits"

// Board geometry. Every row carries one sentinel column on each side so that
// knight jumps which leave the board land on a closed slot instead of wrapping
// onto a playable cell of a neighbouring row.
const (
	Width     = 11
	Height    = 9
	RowStride = Width + 2
	Size      = RowStride * Height
)

// Position is an index into the flattened board, row*RowStride + col.
type Position int

// NoPosition marks a player that has not been placed yet.
const NoPosition Position = -1

// Bitboard holds one bit per board slot. A set bit is an open cell.
type Bitboard [2]uint64

var blankBoard = func() Bitboard {
	var b Bitboard
	for row := 0; row < Height; row++ {
		for col := 1; col <= Width; col++ {
			b = b.set(At(row, col))
		}
	}
	return b
}()

// At returns the position of the cell at row, col. Playable columns are 1..Width.
func At(row, col int) Position {
	return Position(row*RowStride + col)
}

// Coords splits a position into its row and column.
func Coords(pos Position) (row, col int) {
	return int(pos) / RowStride, int(pos) % RowStride
}

// OnBoard reports whether pos is a playable cell.
func OnBoard(pos Position) bool {
	if pos < 0 || pos >= Size {
		return false
	}
	_, col := Coords(pos)
	return col >= 1 && col <= Width
}

// EdgeDistance is the number of cells between pos and the nearest edge,
// 0 for a cell on the edge and -1 for NoPosition.
func EdgeDistance(pos Position) int {
	if !OnBoard(pos) {
		return -1
	}
	row, col := Coords(pos)
	return min(col-1, Width-col, row, Height-1-row)
}

func (b Bitboard) open(pos Position) bool {
	if pos < 0 || pos >= Size {
		return false
	}
	return b[pos/64]&(1<<(uint(pos)%64)) != 0
}

func (b Bitboard) set(pos Position) Bitboard {
	b[pos/64] |= 1 << (uint(pos) % 64)
	return b
}

func (b Bitboard) clear(pos Position) Bitboard {
	b[pos/64] &^= 1 << (uint(pos) % 64)
	return b
}

// Count returns the number of open cells.
func (b Bitboard) Count() int {
	return bits.OnesCount64(b[0]) + bits.OnesCount64(b[1])
}

// Cells lists the open cells in ascending order.
func (b Bitboard) Cells() []Position {
	cells := make([]Position, 0, b.Count())
	for word := range b {
		w := b[word]
		for w != 0 {
			i := bits.TrailingZeros64(w)
			cells = append(cells, Position(word*64+i))
			w &= w - 1
		}
	}
	return cells
}
