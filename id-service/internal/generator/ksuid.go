package generator

import (
	"encoding/hex"
	"fmt"

	"github.com/segmentio/ksuid"
)

// KSUIDGenerator generates KSUIDs (27 base62 characters, second precision).
type KSUIDGenerator struct{}

// NewKSUIDGenerator creates a new KSUIDGenerator.
func NewKSUIDGenerator() *KSUIDGenerator {
	return &KSUIDGenerator{}
}

// Generate returns a KSUID for the current second.
func (g *KSUIDGenerator) Generate() (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate KSUID: %w", err)
	}
	return id.String(), nil
}

func (g *KSUIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *KSUIDGenerator) Validate(id string) (bool, string) {
	return validateByParse(g.Parse, id)
}

// Parse reports the embedded timestamp, truncated to the second, and the
// 16-byte random payload. KSUIDs carry no type tag, salt or counter.
func (g *KSUIDGenerator) Parse(id string) (*ParseResult, error) {
	parsed, err := ksuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid KSUID format: %w", err)
	}
	return &ParseResult{
		Kind:          KindKSUID,
		TimestampMs:   parsed.Time().UnixMilli(),
		RandomPayload: hex.EncodeToString(parsed.Payload()),
	}, nil
}
