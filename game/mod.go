package game

// Player identifies one of the two players by turn parity.
type Player int

const (
	First  Player = 0
	Second Player = 1
)

func (p Player) Opponent() Player {
	return 1 - p
}

type StateHash uint64

// State should be immutable - Result always returns a new value and never
// mutates the receiver.
type State interface {
	Player() Player
	Actions() []Action
	Result(Action) State
	Terminal() bool
	Utility(player Player) float64
	Liberties(loc Position) []Position
	Loc(player Player) Position
	PlyCount() int
	Hash() StateHash
}

// Evaluate scores a non-terminal state from the given player's perspective.
// Higher is better for that player.
type Evaluate func(State, Player) float64

// HasLiberties reports whether the player could move if it were their turn.
func HasLiberties(s State, p Player) bool {
	return len(s.Liberties(s.Loc(p))) > 0
}
