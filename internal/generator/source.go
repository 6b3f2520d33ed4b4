package generator

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Source is the run's randomness. Everything random in a run is derived from
// Seed, so the same seed and settings reproduce the same dataset.
type Source struct {
	Seed  uint64
	RunID string
	Rand  *rand.Rand
	Faker *gofakeit.Faker
}

// NewSource seeds a run. A zero seed picks a random one, which is kept in
// Source.Seed so the run can be reproduced.
func NewSource(seed uint64) (*Source, error) {
	for seed == 0 {
		seed = rand.Uint64()
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	chacha := rand.NewChaCha8(key)

	runID, err := uuid.NewRandomFromReader(chacha)
	if err != nil {
		return nil, fmt.Errorf("failed to derive run id: %w", err)
	}

	return &Source{
		Seed:  seed,
		RunID: runID.String(),
		Rand:  rand.New(chacha),
		Faker: gofakeit.New(seed),
	}, nil
}
