package gacha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is the injected randomness for every roll in this package.
// Handlers use the crypto-backed default; tests inject seeded or scripted
// sources for reproducible outcomes.
type RandomSource interface {
	Float64() float64 // uniform in [0, 1)
	IntN(n int) int   // uniform in [0, n)
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Float64() * float64(n))
}

// DefaultRNG returns the crypto-backed source used in production.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible PCG-backed source for tests and
// simulations.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
