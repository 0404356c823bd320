package objectid

import (
	"bytes"
	"database/sql/driver"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// ObjectID is an immutable 14-byte identifier. See the package documentation
// for the layout.
type ObjectID [Size]byte

// Nil is the zero ObjectID.
var Nil ObjectID

// FromBytes copies exactly Size bytes into an ObjectID.
func FromBytes(b []byte) (ObjectID, error) {
	if len(b) != Size {
		return Nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(b), Size)
	}
	var id ObjectID
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of the raw bytes.
func (id ObjectID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// TimestampMs returns the 48-bit millisecond timestamp.
func (id ObjectID) TimestampMs() int64 {
	return int64(id[0])<<40 | int64(id[1])<<32 | int64(id[2])<<24 |
		int64(id[3])<<16 | int64(id[4])<<8 | int64(id[5])
}

// Timestamp returns the timestamp as a time.Time.
func (id ObjectID) Timestamp() time.Time {
	return time.UnixMilli(id.TimestampMs())
}

// Type returns the type tag.
func (id ObjectID) Type() uint8 {
	return id[typeOffset]
}

// Salt returns the salt of the State that produced id.
func (id ObjectID) Salt() uint32 {
	return binary.BigEndian.Uint32(id[saltOffset:counterOffset])
}

// Counter returns the 24-bit counter.
func (id ObjectID) Counter() uint32 {
	return uint32(id[counterOffset])<<16 | uint32(id[counterOffset+1])<<8 | uint32(id[counterOffset+2])
}

// IsZero reports whether id equals Nil.
func (id ObjectID) IsZero() bool {
	return id == Nil
}

// Compare returns -1, 0 or 1 by byte-wise comparison.
func (id ObjectID) Compare(other ObjectID) int {
	return bytes.Compare(id[:], other[:])
}

// String returns the Hex rendering.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// Base64 returns the Base64 rendering.
func (id ObjectID) Base64() string {
	return base64.StdEncoding.EncodeToString(id[:])
}

// Render returns id in the requested format.
func (id ObjectID) Render(f Format) (string, error) {
	return Render(id[:], f)
}

// MarshalText implements encoding.TextMarshaler using the Hex rendering.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both renderings are
// accepted.
func (id *ObjectID) UnmarshalText(text []byte) error {
	parsed, err := ParseAny(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer. ObjectIDs are stored as raw bytes.
func (id ObjectID) Value() (driver.Value, error) {
	return id.Bytes(), nil
}

// Scan implements sql.Scanner for raw bytes and either text rendering.
func (id *ObjectID) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*id = Nil
		return nil
	case []byte:
		if len(v) == Size {
			copy(id[:], v)
			return nil
		}
		return id.UnmarshalText(v)
	case string:
		return id.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("objectid: cannot scan %T", src)
	}
}
