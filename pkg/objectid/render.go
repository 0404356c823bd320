package objectid

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Format selects the text rendering of an ObjectID.
type Format int

const (
	// Hex renders 28 lowercase hexadecimal characters.
	Hex Format = iota
	// Base64 renders 20 characters of padded standard base64.
	Base64
)

const (
	// HexLen is the length of the Hex rendering.
	HexLen = Size * 2
	// Base64Len is the length of the Base64 rendering.
	Base64Len = (Size + 2) / 3 * 4
)

func (f Format) String() string {
	switch f {
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "hex" (or "") and "base64" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	default:
		return Hex, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Render encodes exactly Size raw bytes as text.
func Render(b []byte, f Format) (string, error) {
	if len(b) != Size {
		return "", fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(b), Size)
	}
	switch f {
	case Hex:
		return hex.EncodeToString(b), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Parse decodes s as produced by Render with the same format.
func Parse(s string, f Format) (ObjectID, error) {
	switch f {
	case Hex:
		return ParseHex(s)
	case Base64:
		return ParseBase64(s)
	default:
		return Nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// ParseHex decodes a 28 character hex string. Upper case digits are accepted.
func ParseHex(s string) (ObjectID, error) {
	if len(s)%2 != 0 {
		return Nil, &DecodeError{Input: s, Encoding: "hex", Reason: "odd length"}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Nil, &DecodeError{Input: s, Encoding: "hex", Reason: err.Error()}
	}
	return decoded(s, "hex", b)
}

// ParseBase64 decodes a padded standard base64 string. Only the canonical
// form is accepted: unused trailing bits must be zero.
func ParseBase64(s string) (ObjectID, error) {
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return Nil, &DecodeError{Input: s, Encoding: "base64", Reason: err.Error()}
	}
	return decoded(s, "base64", b)
}

// ParseAny picks the encoding from the length of s.
func ParseAny(s string) (ObjectID, error) {
	switch len(s) {
	case HexLen:
		return ParseHex(s)
	case Base64Len:
		return ParseBase64(s)
	default:
		return Nil, &DecodeError{
			Input:    s,
			Encoding: "hex or base64",
			Reason:   fmt.Sprintf("length %d matches neither %d nor %d", len(s), HexLen, Base64Len),
		}
	}
}

func decoded(s, encoding string, b []byte) (ObjectID, error) {
	if len(b) != Size {
		return Nil, &DecodeError{
			Input:    s,
			Encoding: encoding,
			Reason:   fmt.Sprintf("decoded %d bytes, want %d", len(b), Size),
		}
	}
	var id ObjectID
	copy(id[:], b)
	return id, nil
}
