package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// State is the salt and counter shared by every identifier a Generator
// produces. It is seeded lazily, exactly once, on first use.
//
// A State must not be copied after first use.
type State struct {
	once    sync.Once
	entropy io.Reader
	salt    uint32
	counter atomic.Uint32
	seedErr error
}

// StateOption configures a State.
type StateOption func(*State)

// WithEntropy sets the reader the salt and counter seed are drawn from.
// It defaults to crypto/rand.Reader.
func WithEntropy(r io.Reader) StateOption {
	return func(s *State) {
		s.entropy = r
	}
}

// WithSeed initializes the State immediately with a fixed salt and counter.
// Only the low 24 bits of counter are kept.
func WithSeed(salt, counter uint32) StateOption {
	return func(s *State) {
		s.once.Do(func() {
			s.salt = salt
			s.counter.Store(counter & MaxCounter)
		})
	}
}

// NewState creates an unseeded State.
func NewState(opts ...StateOption) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureInitialized seeds the salt and counter if that has not happened yet.
// Concurrent callers all observe the same seed.
func (s *State) EnsureInitialized() {
	s.once.Do(s.seed)
}

// NextCounter returns the current counter value and advances it by one,
// modulo 2^24.
func (s *State) NextCounter() uint32 {
	s.EnsureInitialized()
	// 2^32 is a multiple of 2^24, so masking the 32-bit sequence wraps at 2^24.
	return (s.counter.Add(1) - 1) & MaxCounter
}

// Salt returns the salt, seeding the State first if needed.
func (s *State) Salt() uint32 {
	s.EnsureInitialized()
	return s.salt
}

// SeedErr reports the entropy failure that forced a fallback seed, if any.
func (s *State) SeedErr() error {
	s.EnsureInitialized()
	return s.seedErr
}

func (s *State) seed() {
	r := s.entropy
	if r == nil {
		r = rand.Reader
	}

	var buf [7]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		s.seedErr = fmt.Errorf("objectid: read entropy: %w", err)
		fallbackSeed(buf[:])
	}

	s.salt = binary.BigEndian.Uint32(buf[0:4])
	s.counter.Store(uint32(buf[4])<<16 | uint32(buf[5])<<8 | uint32(buf[6]))
}

// fallbackSeed fills b from the clock and pid when no entropy is available.
func fallbackSeed(b []byte) {
	x := uint64(time.Now().UnixNano()) ^ uint64(os.Getpid())<<32
	for i := range b {
		// splitmix64
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		b[i] = byte(z)
	}
}
