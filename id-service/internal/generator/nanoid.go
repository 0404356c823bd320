package generator

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoIDGenerator generates NanoIDs of a fixed size over a fixed alphabet.
type NanoIDGenerator struct {
	size     int
	alphabet string
}

// NewNanoIDGenerator creates a new NanoIDGenerator.
// size must be between 1 and 256. alphabet must have at least 2 characters.
func NewNanoIDGenerator(size int, alphabet string) (*NanoIDGenerator, error) {
	if size < 1 || size > 256 {
		return nil, fmt.Errorf("nanoid size must be between 1 and 256, got %d", size)
	}
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("nanoid alphabet must have at least 2 characters, got %d", len(alphabet))
	}
	return &NanoIDGenerator{size: size, alphabet: alphabet}, nil
}

func (g *NanoIDGenerator) Generate() (string, error) {
	id, err := gonanoid.Generate(g.alphabet, g.size)
	if err != nil {
		return "", fmt.Errorf("failed to generate NanoID: %w", err)
	}
	return id, nil
}

func (g *NanoIDGenerator) GenerateBatch(count int) ([]string, error) {
	return generateN(count, g.Generate)
}

func (g *NanoIDGenerator) Validate(id string) (bool, string) {
	return validateByParse(g.Parse, id)
}

// Parse only checks shape: NanoIDs have no embedded fields beyond their
// length and alphabet.
func (g *NanoIDGenerator) Parse(id string) (*ParseResult, error) {
	if len(id) != g.size {
		return nil, fmt.Errorf("expected length %d, got %d", g.size, len(id))
	}
	if i := strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(g.alphabet, r) }); i >= 0 {
		return nil, fmt.Errorf("character %q at %d not in alphabet", id[i], i)
	}
	return &ParseResult{
		Kind:     KindNanoID,
		IDLength: int32(len(id)),
		Alphabet: g.alphabet,
	}, nil
}
