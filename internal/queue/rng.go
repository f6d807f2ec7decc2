package queue

import (
	"math/rand/v2"
)

// rng is the lazy-seeded pseudo-random source shuffling operations
// draw from. It is lazy so that constructing a Core never touches the
// system entropy source unless random mode is actually exercised.
type rng struct {
	src *rand.Rand
}

func (r *rng) ensure() *rand.Rand {
	if r.src == nil {
		r.src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r.src
}

// intn returns a uniform value in [0, n).
func (r *rng) intn(n int) int {
	return r.ensure().IntN(n)
}

// shuffle permutes s in place using a Fisher-Yates shuffle.
func (r *rng) shuffle(s []uint32) {
	r.ensure().Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
