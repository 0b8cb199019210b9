package game

// EvaluateMobility weighs the player's liberties against the opponent's.
// Away from the walls (two or more cells from every edge) own mobility counts
// double; near a wall both sides count the same.
func EvaluateMobility(s State, p Player) float64 {
	own := len(s.Liberties(s.Loc(p)))
	opp := len(s.Liberties(s.Loc(p.Opponent())))
	return weighMobility(own, opp, EdgeDistance(s.Loc(p)))
}

// EvaluateLiberties is the plain liberty difference from the player's perspective.
func EvaluateLiberties(s State, p Player) float64 {
	own := len(s.Liberties(s.Loc(p)))
	opp := len(s.Liberties(s.Loc(p.Opponent())))
	return float64(own - opp)
}

func weighMobility(own, opp, distance int) float64 {
	if distance >= 2 {
		return float64(2*own - opp)
	}
	return float64(own - opp)
}
