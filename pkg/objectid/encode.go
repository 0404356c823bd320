package objectid

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// Size is the length of an ObjectID in bytes.
	Size = 14

	// MaxTimestamp is the largest representable millisecond timestamp.
	MaxTimestamp = 1<<48 - 1
	// MaxType is the largest type tag.
	MaxType = 255
	// MaxCounter is the largest counter value before it wraps to zero.
	MaxCounter = 1<<24 - 1

	typeOffset    = 6
	saltOffset    = 7
	counterOffset = 11
)

// TimestampPolicy decides what happens to timestamps that do not fit in
// 48 bits.
type TimestampPolicy int

const (
	// TimestampStrict rejects negative timestamps and timestamps above
	// MaxTimestamp with ErrInvalidTimestamp.
	TimestampStrict TimestampPolicy = iota
	// TimestampTruncate keeps the low 48 bits. It matches identifiers
	// produced by older generators that never validated the clock.
	TimestampTruncate
)

func (p TimestampPolicy) String() string {
	switch p {
	case TimestampStrict:
		return "strict"
	case TimestampTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("TimestampPolicy(%d)", int(p))
	}
}

// ParseTimestampPolicy maps "strict" (or "") and "truncate" to a policy.
func ParseTimestampPolicy(s string) (TimestampPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return TimestampStrict, nil
	case "truncate":
		return TimestampTruncate, nil
	default:
		return TimestampStrict, fmt.Errorf("objectid: unknown timestamp policy %q", s)
	}
}

func (p TimestampPolicy) apply(ms int64) (uint64, error) {
	switch p {
	case TimestampTruncate:
		return uint64(ms) & MaxTimestamp, nil
	case TimestampStrict:
		if ms < 0 || ms > MaxTimestamp {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidTimestamp, ms)
		}
		return uint64(ms), nil
	default:
		return 0, fmt.Errorf("objectid: unknown timestamp policy %d", int(p))
	}
}

// Encode packs the four fields into an ObjectID. It has no side effects.
func Encode(typ int, timestampMs int64, salt uint32, counter uint32, policy TimestampPolicy) (ObjectID, error) {
	if err := validateType(typ); err != nil {
		return Nil, err
	}
	ts, err := policy.apply(timestampMs)
	if err != nil {
		return Nil, err
	}
	if counter > MaxCounter {
		return Nil, fmt.Errorf("%w: got %#x", ErrInvalidCounter, counter)
	}
	return pack(uint8(typ), ts, salt, counter), nil
}

// pack assumes ts fits in 48 bits and counter in 24 bits.
func pack(typ uint8, ts uint64, salt, counter uint32) ObjectID {
	var id ObjectID
	id[0] = byte(ts >> 40)
	id[1] = byte(ts >> 32)
	id[2] = byte(ts >> 24)
	id[3] = byte(ts >> 16)
	id[4] = byte(ts >> 8)
	id[5] = byte(ts)
	id[typeOffset] = typ
	binary.BigEndian.PutUint32(id[saltOffset:counterOffset], salt)
	id[counterOffset] = byte(counter >> 16)
	id[counterOffset+1] = byte(counter >> 8)
	id[counterOffset+2] = byte(counter)
	return id
}
