package tiles

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// randWarmup is how many outputs a freshly seeded generator discards.
// Skipping ahead mitigates weak seed states, per
// http://www.iro.umontreal.ca/~lecuyer/myftp/papers/lfsr04.pdf
const randWarmup = 750000

// newSeededRand returns a PCG generator seeded from OS entropy.
func newSeededRand() *rand.Rand {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		Log.WithError(err).Warn("falling back to fixed random seed")
	}
	rng := rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
	for range randWarmup {
		rng.Uint64()
	}
	return rng
}
