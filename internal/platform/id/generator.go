package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque public IDs like "player_a3f09c...".
type Generator interface {
	NewID(prefix string) (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID(prefix string) (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	suffix := hex.EncodeToString(buf)
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return suffix, nil
	}
	return prefix + "_" + suffix, nil
}
