package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// idSource issues unique random identifiers of the form <prefix><n digits>.
type idSource struct {
	prefix string
	floor  int
	span   int
	used   map[int]struct{}
	rng    *rand.Rand
}

func newIDSource(rng *rand.Rand, prefix string, digits int) *idSource {
	floor := 1
	for i := 1; i < digits; i++ {
		floor *= 10
	}
	return &idSource{
		prefix: prefix,
		floor:  floor,
		span:   9 * floor,
		used:   make(map[int]struct{}),
		rng:    rng,
	}
}

func (s *idSource) Next() (string, error) {
	if len(s.used) >= s.span {
		return "", fmt.Errorf("%w: %s ids", ErrIDSpaceExhausted, s.prefix)
	}
	for {
		n := s.floor + s.rng.IntN(s.span)
		if _, taken := s.used[n]; taken {
			continue
		}
		s.used[n] = struct{}{}
		return s.prefix + strconv.Itoa(n), nil
	}
}
