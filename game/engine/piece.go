package engine

import (
	"math/rand"
	"time"
)

// RandomSource is the randomness provider used for piece generation.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a math/rand source seeded with seed, or with the
// current time when seed is zero.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// PieceGenerator draws new pieces from an injected random source
type PieceGenerator struct {
	src RandomSource
}

// NewPieceGenerator creates a generator backed by src
func NewPieceGenerator(src RandomSource) *PieceGenerator {
	return &PieceGenerator{src: src}
}

// Generate returns a piece at the origin whose mask cells are each
// occupied with probability 1/3. Empty masks are valid.
func (g *PieceGenerator) Generate() Piece {
	var p Piece
	for y := 0; y < PieceSize; y++ {
		for x := 0; x < PieceSize; x++ {
			p.Mask[y][x] = g.src.Intn(3) == 0
		}
	}
	return p
}
