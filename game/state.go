package game

import (
	"encoding/binary"
	"math"

	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"
)

// Isolation is the state of a knight's isolation game. It is a comparable
// value: Play never mutates the receiver, and two equal states compare equal
// with == so they can key maps directly.
type Isolation struct {
	board Bitboard
	locs  [2]Position
	ply   int
}

var _ State = Isolation{}

// New returns the empty board with both players unplaced.
func New() Isolation {
	return Isolation{
		board: blankBoard,
		locs:  [2]Position{NoPosition, NoPosition},
	}
}

// FromParts rebuilds a state from its raw parts, rejecting combinations that
// no sequence of moves could produce.
func FromParts(board Bitboard, locs [2]Position, ply int) (Isolation, error) {
	if ply < 0 {
		return Isolation{}, errors.Errorf("negative ply count %d", ply)
	}
	if board[0]&^blankBoard[0] != 0 || board[1]&^blankBoard[1] != 0 {
		return Isolation{}, errors.New("board has open bits outside the playable area")
	}
	for p, loc := range locs {
		if loc == NoPosition {
			continue
		}
		if !OnBoard(loc) {
			return Isolation{}, errors.Errorf("player %d location %d is off the board", p, loc)
		}
		if board.open(loc) {
			return Isolation{}, errors.Errorf("player %d location %d is not marked occupied", p, loc)
		}
	}
	if locs[0] != NoPosition && locs[0] == locs[1] {
		return Isolation{}, errors.Errorf("players share location %d", locs[0])
	}
	return Isolation{board: board, locs: locs, ply: ply}, nil
}

func (s Isolation) Board() Bitboard {
	return s.board
}

func (s Isolation) Locs() [2]Position {
	return s.locs
}

func (s Isolation) Player() Player {
	return Player(s.ply % 2)
}

func (s Isolation) PlyCount() int {
	return s.ply
}

func (s Isolation) Loc(p Player) Position {
	return s.locs[p]
}

// Actions lists the mover's legal actions. While unplaced, the mover may
// take any open cell.
func (s Isolation) Actions() []Action {
	loc := s.locs[s.Player()]
	if loc == NoPosition {
		cells := s.board.Cells()
		actions := make([]Action, len(cells))
		for i, cell := range cells {
			actions[i] = Place(cell)
		}
		return actions
	}
	actions := make([]Action, 0, len(Directions))
	for _, a := range Directions {
		if s.board.open(a.Target(loc)) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Liberties lists the open cells reachable from loc, or every open cell for
// NoPosition.
func (s Isolation) Liberties(loc Position) []Position {
	if loc == NoPosition {
		return s.board.Cells()
	}
	libs := make([]Position, 0, len(Directions))
	for _, a := range Directions {
		if target := a.Target(loc); s.board.open(target) {
			libs = append(libs, target)
		}
	}
	return libs
}

func (s Isolation) hasLiberties(p Player) bool {
	loc := s.locs[p]
	if loc == NoPosition {
		return s.board.Count() > 0
	}
	for _, a := range Directions {
		if s.board.open(a.Target(loc)) {
			return true
		}
	}
	return false
}

// Play applies an action for the mover. The action must be legal.
func (s Isolation) Play(a Action) Isolation {
	player := s.Player()
	target := a.Target(s.locs[player])
	if !s.board.open(target) {
		panic(errors.Errorf("illegal action %v for player %d at ply %d", a, player, s.ply))
	}
	next := s
	next.board = s.board.clear(target)
	next.locs[player] = target
	next.ply++
	return next
}

func (s Isolation) Result(a Action) State {
	return s.Play(a)
}

func (s Isolation) Terminal() bool {
	return !s.hasLiberties(s.Player())
}

// Utility is +Inf if the player has won, -Inf if it has lost and 0 while the
// game is still running.
func (s Isolation) Utility(p Player) float64 {
	if !s.Terminal() {
		return 0
	}
	if p == s.Player() {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

func (s Isolation) Hash() StateHash {
	var buf [8*2 + 2*2 + 4]byte
	binary.LittleEndian.PutUint64(buf[0:], s.board[0])
	binary.LittleEndian.PutUint64(buf[8:], s.board[1])
	binary.LittleEndian.PutUint16(buf[16:], uint16(int16(s.locs[0])))
	binary.LittleEndian.PutUint16(buf[18:], uint16(int16(s.locs[1])))
	binary.LittleEndian.PutUint32(buf[20:], uint32(s.ply))
	return StateHash(xxhash.Checksum64(buf[:]))
}
