package bracket

import (
	"errors"
	"fmt"
)

var ErrInvalidSeed = errors.New("seed must be between 1 and 16")

// pods are the four-seed groups of one region, in bracket order. Pods 0-1
// form the top half and pods 2-3 the bottom half.
var pods = [4][4]int{
	{1, 16, 8, 9},
	{5, 12, 4, 13},
	{6, 11, 3, 14},
	{7, 10, 2, 15},
}

var podOfSeed = func() map[int]int {
	m := make(map[int]int, 16)
	for p, seeds := range pods {
		for _, s := range seeds {
			m[s] = p
		}
	}
	return m
}()

// Topology describes where a seed pair can meet.
type Topology struct {
	SeedA       int     `json:"seed_a"`
	SeedB       int     `json:"seed_b"`
	IntraRegion *Round  `json:"intra_region_round,omitempty"`
	Possible    []Round `json:"possible_rounds"`
	Earliest    Round   `json:"earliest_round"`
	Query       *Round  `json:"query_round,omitempty"`
	// Allowed is true when no round was queried.
	Allowed bool `json:"allowed"`
}

func validateSeeds(a, b int) error {
	if a < 1 || a > 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeed, a)
	}
	if b < 1 || b > 16 {
		return fmt.Errorf("%w: got %d", ErrInvalidSeed, b)
	}
	return nil
}

// IntraRegionRound returns the single round in which two distinct seeds of
// the same region would meet. ok is false for equal seeds.
func IntraRegionRound(a, b int) (r Round, ok bool, err error) {
	if err := validateSeeds(a, b); err != nil {
		return "", false, err
	}
	if a == b {
		return "", false, nil
	}

	pa, pb := podOfSeed[a], podOfSeed[b]
	switch {
	case pa == pb && a+b == 17:
		return RoundOf64, true, nil
	case pa == pb:
		return RoundOf32, true, nil
	case pa/2 == pb/2:
		return Sweet16, true, nil
	default:
		return Elite8, true, nil
	}
}

// PossibleRounds returns, in play order, every round in which the two seeds
// could meet across all valid draws.
func PossibleRounds(a, b int) ([]Round, error) {
	intra, ok, err := IntraRegionRound(a, b)
	if err != nil {
		return nil, err
	}
	rounds := make([]Round, 0, 3)
	if ok {
		rounds = append(rounds, intra)
	}
	return append(rounds, FinalFour, Championship), nil
}

// IsRoundPossible reports whether r is among PossibleRounds(a, b).
func IsRoundPossible(a, b int, r Round) (bool, error) {
	rounds, err := PossibleRounds(a, b)
	if err != nil {
		return false, err
	}
	for _, p := range rounds {
		if p == r {
			return true, nil
		}
	}
	return false, nil
}

// Resolve builds the full descriptor for a seed pair, optionally checking a
// queried round.
func Resolve(a, b int, query *Round) (Topology, error) {
	if query != nil && !query.Valid() {
		return Topology{}, fmt.Errorf("%w: %q", ErrUnknownRound, string(*query))
	}
	rounds, err := PossibleRounds(a, b)
	if err != nil {
		return Topology{}, err
	}

	t := Topology{
		SeedA:    a,
		SeedB:    b,
		Possible: rounds,
		Earliest: rounds[0],
		Allowed:  true,
	}
	if intra, ok, _ := IntraRegionRound(a, b); ok {
		t.IntraRegion = &intra
	}
	if query != nil {
		q := *query
		t.Query = &q
		t.Allowed = false
		for _, r := range rounds {
			if r == q {
				t.Allowed = true
				break
			}
		}
	}
	return t, nil
}
