package ai

import (
	"math/rand"

	"crab.casa/tactics-engine/match"
)

// Score is the dot product of a candidate's features against its action
// type's learned weight vector (spec §4.5). Extra weight positions beyond
// the feature vector length are ignored; a missing action type scores 0.
func Score(policy *match.AIPolicy, c Candidate) float64 {
	weights, ok := policy.Actions[c.Action]
	if !ok {
		return 0
	}
	n := len(c.Features)
	if len(weights.Weights) < n {
		n = len(weights.Weights)
	}
	var total float64
	for i := 0; i < n; i++ {
		total += weights.Weights[i] * c.Features[i]
	}
	return total
}

// Select runs argmax-then-epsilon-greedy over scored candidates (spec
// §4.5). rng is injectable so the exploration coin is reproducible in
// tests; production callers pass a source seeded from system randomness.
func Select(policy *match.AIPolicy, candidates []Candidate, rng *rand.Rand) (Candidate, int) {
	best := 0
	bestScore := Score(policy, candidates[0])
	for i := 1; i < len(candidates); i++ {
		s := Score(policy, candidates[i])
		if s > bestScore {
			bestScore = s
			best = i
		}
	}

	if len(candidates) == 1 {
		return candidates[0], 0
	}
	if rng.Float64() < policy.Epsilon {
		// Uniform pick among the remaining candidates, excluding the argmax
		// (spec §4.5 "replace the choice with a uniform random pick among
		// the remaining candidates").
		idx := rng.Intn(len(candidates) - 1)
		if idx >= best {
			idx++
		}
		return candidates[idx], idx
	}
	return candidates[best], best
}
