package scoring

import "github.com/versebattle/cypher/pkg/cypher/scheme"

// RhymeScore computes the 0-100 rhyme density sub-score:
//
//	end rhymes:  min(50, matchedAdjacentPairs / (lines-1) * 50)
//	internal:    min(30, internalCount * 5)
//	multi bonus: min(20, multiSyllablePairs * 10)
//
// A verse below 2 lines has no adjacent pairs and an end score of 0.
func RhymeScore(res *scheme.Result) float64 {
	var endScore float64
	if res.AdjacentPairs > 0 {
		endScore = float64(res.EndMatches) / float64(res.AdjacentPairs) * 50
		if endScore > 50 {
			endScore = 50
		}
	}

	internalScore := float64(res.InternalCount) * 5
	if internalScore > 30 {
		internalScore = 30
	}

	multiBonus := float64(res.MultiPairs) * 10
	if multiBonus > 20 {
		multiBonus = 20
	}

	return endScore + internalScore + multiBonus
}
