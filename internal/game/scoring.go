package game

// PlayerScore is one player's final score breakdown.
type PlayerScore struct {
	BasePoints   int `json:"basePoints"`
	LineBonus    int `json:"lineBonus"`
	PolygonBonus int `json:"polygonBonus"`
	LargestBonus int `json:"largestBonus"`
	FinalScore   int `json:"finalScore"`
}

// Scores is the full end-of-game scoring summary.
type Scores struct {
	PlayerOne          PlayerScore `json:"playerOne"`
	PlayerTwo          PlayerScore `json:"playerTwo"`
	TotalFeatures      int         `json:"totalFeatures"`
	TotalLines         int         `json:"totalLines"`
	TotalPolygons      int         `json:"totalPolygons"`
	LargestPolygonSize int         `json:"largestPolygonSize"`
	// LargestPolygonOwner is Empty when neither player has a polygon.
	LargestPolygonOwner Owner `json:"largestPolygonPlayer"`
}

// Winner returns the higher-scoring player, or Empty on a tie.
func (s Scores) Winner() Owner {
	switch {
	case s.PlayerOne.FinalScore > s.PlayerTwo.FinalScore:
		return PlayerOne
	case s.PlayerTwo.FinalScore > s.PlayerOne.FinalScore:
		return PlayerTwo
	default:
		return Empty
	}
}

// CalculateGameScore scores the final board: one point per occupied cell,
// two per line, two per polygon member, and a three-point bonus for the
// single largest polygon. The largest-polygon bonus only changes hands on
// a strictly larger polygon, so an equal-sized polygon found later (player
// one's features are scanned first) does not steal it.
func CalculateGameScore(b Board) Scores {
	var scores Scores
	perPlayer := [2]*PlayerScore{&scores.PlayerOne, &scores.PlayerTwo}

	for _, p := range []Owner{PlayerOne, PlayerTwo} {
		score := perPlayer[handIndex(p)]
		score.BasePoints = b.Count(p)
		for _, f := range DetectFeatures(b, p) {
			switch f.Type {
			case FeatureLine:
				scores.TotalLines++
				score.LineBonus += 2
			case FeaturePolygon:
				scores.TotalPolygons++
				score.PolygonBonus += len(f.Squares) * 2
				if len(f.Squares) > scores.LargestPolygonSize {
					scores.LargestPolygonSize = len(f.Squares)
					scores.LargestPolygonOwner = p
				}
			}
		}
	}
	scores.TotalFeatures = scores.TotalLines + scores.TotalPolygons

	if scores.LargestPolygonOwner != Empty {
		perPlayer[handIndex(scores.LargestPolygonOwner)].LargestBonus = 3
	}
	for _, score := range perPlayer {
		score.FinalScore = score.BasePoints + score.LineBonus + score.PolygonBonus + score.LargestBonus
	}
	return scores
}
