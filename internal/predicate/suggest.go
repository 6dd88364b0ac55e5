package predicate

import (
	edlib "github.com/hbollon/go-edlib"
)

// builtinNames is the closed set of functions the language exposes.
var builtinNames = []string{"past", "future", "today"}

// suggestionThreshold is the minimum Jaro-Winkler similarity before a
// did-you-mean hint is offered; below it the hint would be noise.
const suggestionThreshold = 0.75

// suggestBuiltin returns the builtin closest to an unknown function name, or
// "" when nothing is close enough to be a plausible typo.
func suggestBuiltin(name string) string {
	best := ""
	var bestScore float32

	for _, candidate := range builtinNames {
		score, err := edlib.StringsSimilarity(name, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore >= suggestionThreshold {
		return best
	}
	return ""
}
