package rng

import (
	"fmt"
	"sync"
)

// pmfKey identifies a cached distribution.
type pmfKey struct {
	count int
	sides int
}

var (
	pmfMu    sync.Mutex
	pmfCache = make(map[pmfKey]map[int]float64)
)

// pmf returns the probability mass function for count dice of sides sides,
// built by convolving one die at a time. Results are cached.
func pmf(count, sides int) map[int]float64 {
	key := pmfKey{count: count, sides: sides}
	pmfMu.Lock()
	defer pmfMu.Unlock()
	if dist, ok := pmfCache[key]; ok {
		return dist
	}
	dist := map[int]float64{0: 1.0}
	face := 1.0 / float64(sides)
	for i := 0; i < count; i++ {
		next := make(map[int]float64, len(dist)*sides)
		for total, p := range dist {
			for f := 1; f <= sides; f++ {
				next[total+f] += p * face
			}
		}
		dist = next
	}
	pmfCache[key] = dist
	return dist
}

// ThresholdForProbability returns the smallest roll target whose
// at-least-target probability still meets the requested probability.
// A probability of zero or less yields an unreachable target one above the
// maximum roll; one or more yields the minimum roll, which always succeeds.
func ThresholdForProbability(notation string, probability float64) (int, error) {
	count, sides, _, err := parseNotation(notation)
	if err != nil {
		return 0, err
	}
	maxRoll := count * sides
	if probability <= 0 {
		return maxRoll + 1, nil
	}
	if probability >= 1 {
		return count, nil
	}
	dist := pmf(count, sides)
	cumulative := 0.0
	for target := maxRoll; target >= count; target-- {
		cumulative += dist[target]
		if cumulative >= probability {
			return target, nil
		}
	}
	return count, nil
}

// CheckResult records a probability check: the roll made, the target it had
// to reach, and whether it did.
type CheckResult struct {
	Success     bool    `json:"success"`
	Roll        int     `json:"roll"`
	Target      int     `json:"target"`
	Probability float64 `json:"probability"`
	Seed        string  `json:"seed"`
}

// CheckSuccess converts a probability into a roll target for the given
// notation, rolls on the stream derived from seed, and reports whether the
// roll met the target.
func CheckSuccess(seed, notation string, probability float64) (CheckResult, error) {
	if probability < 0 || probability > 1 {
		return CheckResult{}, fmt.Errorf("%w: %v", ErrInvalidProbability, probability)
	}
	target, err := ThresholdForProbability(notation, probability)
	if err != nil {
		return CheckResult{}, err
	}
	roll, err := RollDice(seed, notation)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		Success:     roll.Total >= target,
		Roll:        roll.Total,
		Target:      target,
		Probability: probability,
		Seed:        seed,
	}, nil
}
