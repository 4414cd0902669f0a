package games

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mathrand "math/rand"
)

// Rand is the randomness source used by the game engine. Production code
// uses the crypto-backed source; tests inject a seeded one.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

type cryptoRand struct{}

// NewCryptoRand returns a Rand backed by crypto/rand.
func NewCryptoRand() Rand {
	return cryptoRand{}
}

func (cryptoRand) IntN(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("games: IntN called with n=%d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the OS entropy source is broken;
		// there is no safe way to continue dealing outcomes.
		panic(fmt.Sprintf("games: crypto rand failed: %v", err))
	}
	return int(v.Int64())
}

func (cryptoRand) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("games: crypto rand failed: %v", err))
	}
	// 53 bits of mantissa, same construction as math/rand.Float64.
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

type seededRand struct {
	src *mathrand.Rand
}

// NewSeededRand returns a deterministic Rand for tests.
func NewSeededRand(seed int64) Rand {
	return &seededRand{src: mathrand.New(mathrand.NewSource(seed))}
}

func (r *seededRand) IntN(n int) int     { return r.src.Intn(n) }
func (r *seededRand) Float64() float64   { return r.src.Float64() }
