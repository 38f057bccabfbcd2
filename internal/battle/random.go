package battle

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue folds a root seed string and a subsystem label into
// a stable 64-bit seed so replays reproduce every random draw.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG builds a rand.Rand seeded from the root seed and label.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

func randomIndex(rng *rand.Rand, n int) int {
	if n <= 0 {
		return -1
	}
	if rng == nil {
		return 0
	}
	return rng.Intn(n)
}
