// Package random provides seed generation for the simulator's PRNGs.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed reads a 64-bit seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// SeedOr returns seed when non-zero and a fresh crypto seed otherwise.
func SeedOr(seed uint64) (uint64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}
