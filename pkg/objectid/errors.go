package objectid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType is returned when a type tag does not fit in one byte.
	ErrInvalidType = errors.New("objectid: type must be between 0 and 255")
	// ErrInvalidTimestamp is returned by the strict policy for timestamps
	// outside the 48-bit millisecond range.
	ErrInvalidTimestamp = errors.New("objectid: timestamp outside 48-bit millisecond range")
	// ErrInvalidCounter is returned when a counter does not fit in 24 bits.
	ErrInvalidCounter = errors.New("objectid: counter must fit in 24 bits")
	// ErrInvalidLength is returned when raw bytes are not exactly Size long.
	ErrInvalidLength = errors.New("objectid: invalid byte length")
	// ErrUnknownFormat is returned for render formats other than Hex and Base64.
	ErrUnknownFormat = errors.New("objectid: unknown format")
	// ErrInvalidBatchSize is returned when a batch size is outside [1, MaxBatch].
	ErrInvalidBatchSize = errors.New("objectid: invalid batch size")
	// ErrDecode is the sentinel wrapped by every *DecodeError.
	ErrDecode = errors.New("objectid: decode failed")
)

// DecodeError describes a textual ObjectID that could not be decoded.
type DecodeError struct {
	Input    string
	Encoding string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("objectid: cannot decode %q as %s: %s", e.Input, e.Encoding, e.Reason)
}

// Unwrap lets errors.Is(err, ErrDecode) match.
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

func validateType(typ int) error {
	if typ < 0 || typ > MaxType {
		return fmt.Errorf("%w: got %d", ErrInvalidType, typ)
	}
	return nil
}
