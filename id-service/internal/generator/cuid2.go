package generator

import (
	"fmt"

	"github.com/nrednav/cuid2"
)

const DefaultCUID2Length = 24

// CUID2Generator generates CUID2 identifiers of a fixed length.
type CUID2Generator struct {
	length   int
	generate func() string
}

// NewCUID2Generator creates a new CUID2Generator.
// length must be between 2 and 32.
func NewCUID2Generator(length int) (*CUID2Generator, error) {
	if length < 2 || length > 32 {
		return nil, fmt.Errorf("cuid2 length must be between 2 and 32, got %d", length)
	}
	gen, err := cuid2.Init(cuid2.WithLength(length))
	if err != nil {
		return nil, fmt.Errorf("failed to init CUID2 generator: %w", err)
	}
	return &CUID2Generator{length: length, generate: gen}, nil
}

// Generate never returns an error.
func (g *CUID2Generator) Generate() (string, error) {
	return g.generate(), nil
}

func (g *CUID2Generator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *CUID2Generator) Validate(id string) (bool, string) {
	return validateByParse(g.Parse, id)
}

// Parse checks the configured length and the CUID2 character rules.
func (g *CUID2Generator) Parse(id string) (*ParseResult, error) {
	if len(id) != g.length {
		return nil, fmt.Errorf("expected length %d, got %d", g.length, len(id))
	}
	if !cuid2.IsCuid(id) {
		return nil, fmt.Errorf("invalid CUID2 format")
	}
	return &ParseResult{
		Kind:     KindCUID2,
		IDLength: int32(len(id)),
	}, nil
}
