package objectid

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestStateSeedFromEntropy(t *testing.T) {
	// salt 0xdeadbeef, counter seed 0x010203
	s := NewState(WithEntropy(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03})))

	assert.Equal(t, uint32(0xdeadbeef), s.Salt())
	assert.Equal(t, uint32(0x010203), s.NextCounter())
	assert.Equal(t, uint32(0x010204), s.NextCounter())
	assert.NoError(t, s.SeedErr())
}

func TestStateFallbackSeedOnEntropyFailure(t *testing.T) {
	s := NewState(WithEntropy(failingReader{}))

	salt := s.Salt()
	require.Error(t, s.SeedErr())
	assert.Equal(t, salt, s.Salt())
	assert.LessOrEqual(t, s.NextCounter(), uint32(MaxCounter))
}

func TestStateWithSeedSkipsEntropy(t *testing.T) {
	s := NewState(WithEntropy(failingReader{}), WithSeed(42, 7))

	assert.Equal(t, uint32(42), s.Salt())
	assert.Equal(t, uint32(7), s.NextCounter())
	assert.NoError(t, s.SeedErr())
}

func TestStateWithSeedMasksCounter(t *testing.T) {
	s := NewState(WithSeed(1, 0xABFFFFFF))
	assert.Equal(t, uint32(0xFFFFFF), s.NextCounter())
	assert.Equal(t, uint32(0), s.NextCounter())
}

func TestStateCounterWrapsFromSeed(t *testing.T) {
	s := NewState(WithSeed(1, 0xFFFFFE))

	assert.Equal(t, uint32(0xFFFFFE), s.NextCounter())
	assert.Equal(t, uint32(0xFFFFFF), s.NextCounter())
	assert.Equal(t, uint32(0x000000), s.NextCounter())
	assert.Equal(t, uint32(0x000001), s.NextCounter())
}

func TestStateCounterFullCycle(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the whole 24-bit counter space")
	}
	const seed = 0x123456
	s := NewState(WithSeed(1, seed))

	first := s.NextCounter()
	require.Equal(t, uint32(seed), first)
	for i := 1; i < MaxCounter+1; i++ {
		s.NextCounter()
	}
	assert.Equal(t, first, s.NextCounter())
}

func TestStateConcurrentInitialization(t *testing.T) {
	s := NewState()

	const callers = 64
	salts := make([]uint32, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			salts[i] = s.Salt()
		}(i)
	}
	close(start)
	wg.Wait()

	for _, salt := range salts {
		assert.Equal(t, salts[0], salt)
	}
}

func TestStateConcurrentCounterHasNoLostUpdates(t *testing.T) {
	s := NewState(WithSeed(9, 0))

	const (
		workers   = 16
		perWorker = 2000
	)
	seen := make([][]uint32, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]uint32, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				out = append(out, s.NextCounter())
			}
			seen[w] = out
		}(w)
	}
	wg.Wait()

	unique := make(map[uint32]struct{}, workers*perWorker)
	for _, vals := range seen {
		for _, v := range vals {
			unique[v] = struct{}{}
		}
	}
	assert.Len(t, unique, workers*perWorker)
	assert.Equal(t, uint32(workers*perWorker), s.NextCounter())
}
