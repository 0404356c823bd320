package generator

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (g *UUIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *UUIDGenerator) Validate(id string) (bool, string) {
	return validateByParse(g.Parse, id)
}

// Parse only accepts version 4 UUIDs, the only version this kind produces.
func (g *UUIDGenerator) Parse(id string) (*ParseResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID format: %w", err)
	}
	if parsed.Version() != 4 {
		return nil, fmt.Errorf("expected UUID v4, got v%d", parsed.Version())
	}
	return &ParseResult{
		Kind:        KindUUID,
		UUIDVersion: int32(parsed.Version()),
		UUIDVariant: variantName(parsed.Variant()),
	}, nil
}

func variantName(v uuid.Variant) string {
	switch v {
	case uuid.RFC4122:
		return "RFC4122"
	case uuid.Reserved:
		return "Reserved"
	case uuid.Microsoft:
		return "Microsoft"
	case uuid.Future:
		return "Future"
	default:
		return "Unknown"
	}
}
