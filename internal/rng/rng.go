// Package rng provides the deterministic random substrate for campaign
// resolution. Every random draw is keyed by an explicit seed string, so any
// roll can be replayed or audited after the fact.
//
// # Determinism
//
// A seed string is hashed with SHA-256 and the first eight bytes, read
// big-endian, seed a dedicated stream. The same seed string always yields the
// same rolls, and distinct contexts never share a stream.
//
// # Seed layout
//
// Seeds follow "campaignID:day:part:context". Two draws in the same day part
// stay independent as long as their context differs, which is why every call
// site burns its own context label.
//
// # Errors
//
// Validation failures return sentinel errors wrapped with detail: malformed
// notation wraps ErrInvalidNotation, an empty option set wraps
// ErrEmptyOptions, and so on. Callers can errors.Is against the sentinels.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSeed reports a negative campaign ID or day in a seed request.
	ErrInvalidSeed = errors.New("invalid seed component")
	// ErrInvalidNotation reports dice notation that does not parse as NdM.
	ErrInvalidNotation = errors.New("invalid dice notation")
	// ErrEmptyOptions reports a choice over zero options.
	ErrEmptyOptions = errors.New("options must not be empty")
	// ErrInvalidRange reports an integer range with min greater than max.
	ErrInvalidRange = errors.New("min must not exceed max")
	// ErrInvalidProbability reports a probability outside [0, 1].
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")
)

// Seed builds the canonical seed string for a draw. Part names the slice of
// the day ("morning", "midday", "evening", "night") and context names the
// draw site.
func Seed(campaignID int64, day int, part, context string) (string, error) {
	if campaignID < 0 {
		return "", fmt.Errorf("%w: campaign id must be non-negative, got %d", ErrInvalidSeed, campaignID)
	}
	if day < 0 {
		return "", fmt.Errorf("%w: day must be non-negative, got %d", ErrInvalidSeed, day)
	}
	return fmt.Sprintf("%d:%d:%s:%s", campaignID, day, part, context), nil
}

// stream derives the random stream for a seed string.
func stream(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	n := binary.BigEndian.Uint64(sum[:8])
	return rand.New(rand.NewSource(int64(n)))
}

var notationRe = regexp.MustCompile(`^(\d+)d(\d+)$`)

// parseNotation lowercases and validates NdM notation, returning count and
// sides. At least one die, at least two sides.
func parseNotation(notation string) (count, sides int, normalized string, err error) {
	normalized = strings.ToLower(strings.TrimSpace(notation))
	m := notationRe.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	count, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	sides, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	if count < 1 {
		return 0, 0, "", fmt.Errorf("%w: need at least one die in %q", ErrInvalidNotation, notation)
	}
	if sides < 2 {
		return 0, 0, "", fmt.Errorf("%w: need at least two sides in %q", ErrInvalidNotation, notation)
	}
	return count, sides, normalized, nil
}

// RollResult records one dice roll with the seed that produced it.
type RollResult struct {
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Total    int    `json:"total"`
	Seed     string `json:"seed"`
}

// RollDice rolls NdM dice on the stream derived from seed.
func RollDice(seed, notation string) (RollResult, error) {
	count, sides, normalized, err := parseNotation(notation)
	if err != nil {
		return RollResult{}, err
	}
	r := stream(seed)
	rolls := make([]int, count)
	total := 0
	for i := range rolls {
		rolls[i] = r.Intn(sides) + 1
		total += rolls[i]
	}
	return RollResult{Notation: normalized, Rolls: rolls, Total: total, Seed: seed}, nil
}

// ChoiceResult records a selection from a fixed option set.
type ChoiceResult[T any] struct {
	Choice T      `json:"choice"`
	Index  int    `json:"index"`
	Seed   string `json:"seed"`
}

// Choice picks one option uniformly on the stream derived from seed.
func Choice[T any](seed string, options []T) (ChoiceResult[T], error) {
	if len(options) == 0 {
		return ChoiceResult[T]{}, ErrEmptyOptions
	}
	idx := stream(seed).Intn(len(options))
	return ChoiceResult[T]{Choice: options[idx], Index: idx, Seed: seed}, nil
}

// IntResult records a bounded integer draw.
type IntResult struct {
	Value int    `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Seed  string `json:"seed"`
}

// IntBetween draws an integer in [min, max] inclusive on the stream derived
// from seed.
func IntBetween(seed string, min, max int) (IntResult, error) {
	if min > max {
		return IntResult{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	v := min + stream(seed).Intn(max-min+1)
	return IntResult{Value: v, Min: min, Max: max, Seed: seed}, nil
}
