package objectid

import (
	"fmt"
	"sync"
	"time"
)

// MaxBatch bounds GenerateBatch.
const MaxBatch = 1000

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Generator creates ObjectIDs from a shared State and a clock. It is safe
// for concurrent use.
type Generator struct {
	state  *State
	clock  Clock
	policy TimestampPolicy
}

// Option configures a Generator.
type Option func(*Generator)

// WithState makes the Generator draw salt and counter from s.
func WithState(s *State) Option {
	return func(g *Generator) {
		g.state = s
	}
}

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

// WithTimestampPolicy sets how out of range timestamps are handled.
func WithTimestampPolicy(p TimestampPolicy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// NewGenerator creates a Generator. Without WithState it owns a fresh State
// seeded from crypto/rand.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		clock:  time.Now,
		policy: TimestampStrict,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.state == nil {
		g.state = NewState()
	}
	return g
}

// State returns the State backing g.
func (g *Generator) State() *State {
	return g.state
}

// Policy returns the timestamp policy of g.
func (g *Generator) Policy() TimestampPolicy {
	return g.policy
}

// Generate returns a new ObjectID tagged with typ. A rejected call does not
// advance the counter.
func (g *Generator) Generate(typ int) (ObjectID, error) {
	if err := validateType(typ); err != nil {
		return Nil, err
	}
	g.state.EnsureInitialized()

	ts, err := g.policy.apply(g.clock().UnixMilli())
	if err != nil {
		return Nil, err
	}
	return pack(uint8(typ), ts, g.state.Salt(), g.state.NextCounter()), nil
}

// MustGenerate is like Generate but panics on error.
func (g *Generator) MustGenerate(typ int) ObjectID {
	id, err := g.Generate(typ)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateBatch returns n ObjectIDs sharing one clock reading. Their counters
// are consecutive unless other callers interleave.
func (g *Generator) GenerateBatch(typ, n int) ([]ObjectID, error) {
	if n < 1 || n > MaxBatch {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidBatchSize, n, MaxBatch)
	}
	if err := validateType(typ); err != nil {
		return nil, err
	}
	g.state.EnsureInitialized()

	ts, err := g.policy.apply(g.clock().UnixMilli())
	if err != nil {
		return nil, err
	}

	salt := g.state.Salt()
	ids := make([]ObjectID, n)
	for i := range ids {
		ids[i] = pack(uint8(typ), ts, salt, g.state.NextCounter())
	}
	return ids, nil
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Default returns the process-wide Generator, creating it on first use.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator()
	})
	return defaultGen
}

// Generate returns a new ObjectID from the process-wide Generator.
func Generate(typ int) (ObjectID, error) {
	return Default().Generate(typ)
}

// MustGenerate is like Generate but panics on error.
func MustGenerate(typ int) ObjectID {
	return Default().MustGenerate(typ)
}
