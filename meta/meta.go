package meta

import "time"

// ALPHABETA_DEPTH is the fixed search depth the opening book builder plays with.
const ALPHABETA_DEPTH = 3

// ALPHABETA_MAX_DEPTH caps iterative deepening during play.
const ALPHABETA_MAX_DEPTH = 12

// EVALUATION names the alphabeta agents' heuristic: "mobility" or "liberties".
const EVALUATION = "mobility"

// ITERATIONS defines the number of episodes for MCTS.
const ITERATIONS = 100

// EXPLORATION is the UCT exploration factor.
const EXPLORATION = 1.0

// BOOK_ROUNDS defines how many self-play lines build the opening book.
const BOOK_ROUNDS = 200

// BOOK_DEPTH is the number of opening plies the book covers.
const BOOK_DEPTH = 4

// GAMES defines the number of games per match up.
const GAMES = 20

// MOVE_BUDGET is the time each agent gets per move.
const MOVE_BUDGET = 100 * time.Millisecond
