package conversation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for conversations and messages.
// Every call must return a value never returned before by the same generator.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random v4 UUIDs. It is the default generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// CounterGenerator produces prefix-1, prefix-2, ... and is used where stable
// ids matter (tests, demo recordings).
type CounterGenerator struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewCounterGenerator returns a CounterGenerator with the given prefix.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

func (g *CounterGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.Prefix, g.n)
}
