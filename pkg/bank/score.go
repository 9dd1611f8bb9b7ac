package bank

import "math"

// maturityPoints maps a level to its score contribution. Unknown or empty
// values count as zero, matching the tolerant read side of the pipeline.
var maturityPoints = map[string]int{
	LevelNone:         0,
	LevelBasic:        1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
}

// maxPoints is five categories at "advanced".
const maxPoints = 15

// Score maps maturity levels to the 0-100 digital score:
// round(sum/15*100), half away from zero.
func Score(levels []string) int {
	total := 0
	for _, l := range levels {
		total += maturityPoints[l]
	}
	return int(math.Round(float64(total) / maxPoints * 100))
}

// ScoreRecord computes the digital score from a record's five maturity
// fields, ignoring whatever digital_score is currently stored.
func ScoreRecord(r Record) int {
	return Score(r.Levels())
}
