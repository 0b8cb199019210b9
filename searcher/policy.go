package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0      // Numerator factor inside the exploration root
const Exploration = 1.0   // Default scale of the exploration term
const DefaultIterations = 100

const WIN = 1.0   // Rollout reward for a winning outcome
const LOSS = -WIN // Rollout reward for a losing outcome (negate from opponent perspective)

type uct struct {
	numerator float64
	factor    float64
}

func newUCT(factor float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: CSquared * math.Log(N), factor: factor}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(2*ln(N)/n)
	return q/n + u.factor*math.Sqrt(u.numerator/n)
}
