package otp

import (
	"crypto/rand"
	"fmt"
)

// Generator produces fixed-length numeric codes. Implementations are
// swappable; the channel carries low-security codes, so uniformity matters
// more than unpredictability guarantees.
type Generator interface {
	Generate() (string, error)
}

type randomGenerator struct {
	length int
}

// NewRandomGenerator returns a Generator drawing digits from crypto/rand.
func NewRandomGenerator(length int) Generator {
	if length <= 0 {
		length = 5
	}
	return randomGenerator{length: length}
}

func (g randomGenerator) Generate() (string, error) {
	max := 1
	for i := 0; i < g.length; i++ {
		max *= 10
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	val := 0
	for _, b := range buf {
		val = (val<<8 + int(b)) % max
	}
	return fmt.Sprintf("%0*d", g.length, val), nil
}

// FixedGenerator always returns the same code. Used in tests and for local
// environments without an SMS channel.
type FixedGenerator string

func (g FixedGenerator) Generate() (string, error) {
	return string(g), nil
}
