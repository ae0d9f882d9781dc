package variants

import "math/rand"

// Choose picks a variant id epsilon-greedily: with probability epsilon an
// arbitrary candidate (exploration), otherwise the candidate with the best
// conversion so far. Untried sets fall back to the first candidate. The
// rand source is injected so batch runs can be made reproducible.
func Choose(candidates []string, stats []Stats, epsilon float64, rng *rand.Rand) string {
	if len(candidates) == 0 {
		return ""
	}
	if epsilon > 0 && rng != nil && rng.Float64() < epsilon {
		return candidates[rng.Intn(len(candidates))]
	}

	byID := make(map[string]Stats, len(stats))
	for _, s := range stats {
		byID[s.VariantID] = s
	}

	best := ""
	bestScore := -1.0
	for _, id := range candidates {
		score := byID[id].Conversion()
		if score > bestScore {
			bestScore = score
			best = id
		}
	}
	if best == "" {
		return candidates[0]
	}
	return best
}
