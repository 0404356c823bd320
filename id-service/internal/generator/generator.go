package generator

import (
	"fmt"
	"sort"
)

// Kind names an identifier scheme served by the id-service.
type Kind string

const (
	KindObjectID Kind = "objectid"
	KindUUID     Kind = "uuid"
	KindULID     Kind = "ulid"
	KindKSUID    Kind = "ksuid"
	KindNanoID   Kind = "nanoid"
	KindCUID2    Kind = "cuid2"
)

// Generator defines the interface for ID generation, validation, and parsing.
type Generator interface {
	Generate() (string, error)
	GenerateBatch(count int) ([]string, error)
	Validate(id string) (bool, string) // (valid, reason)
	Parse(id string) (*ParseResult, error)
}

// Options narrows a single generation call. A nil Type and empty Format
// mean the generator's defaults.
type Options struct {
	Type   *int
	Format string
}

// IsZero reports whether no option is set.
func (o Options) IsZero() bool {
	return o.Type == nil && o.Format == ""
}

// TypedGenerator is implemented by kinds whose identifiers carry a type tag
// and have more than one text rendering.
type TypedGenerator interface {
	Generator
	GenerateWith(opts Options) (string, error)
	GenerateBatchWith(opts Options, count int) ([]string, error)
}

// ParseResult holds the parsed fields from an ID. ObjectID-only fields are
// pointers so that other kinds omit them instead of reporting zeros.
type ParseResult struct {
	Kind          Kind    `json:"kind"`
	TimestampMs   int64   `json:"timestamp_ms,omitempty"`   // ObjectID/ULID/KSUID: absolute unix ms
	UUIDVersion   int32   `json:"uuid_version,omitempty"`   // UUID only
	UUIDVariant   string  `json:"uuid_variant,omitempty"`   // UUID only
	RandomPayload string  `json:"random_payload,omitempty"` // ULID/KSUID: hex-encoded random bytes
	IDLength      int32   `json:"id_length,omitempty"`      // NanoID/CUID2: ID string length
	Alphabet      string  `json:"alphabet,omitempty"`       // NanoID: character set used
	Type          *int32  `json:"type,omitempty"`           // ObjectID only
	Salt          *uint32 `json:"salt,omitempty"`           // ObjectID only
	Counter       *uint32 `json:"counter,omitempty"`        // ObjectID only
	Hex           string  `json:"hex,omitempty"`            // ObjectID only
	Base64        string  `json:"base64,omitempty"`         // ObjectID only
}

// Registry maps kinds to generators.
type Registry struct {
	gens map[Kind]Generator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{gens: make(map[Kind]Generator)}
}

// Register adds g under k. Registering a kind twice is a programming error.
func (r *Registry) Register(k Kind, g Generator) {
	if _, dup := r.gens[k]; dup {
		panic(fmt.Sprintf("generator: kind %q registered twice", k))
	}
	r.gens[k] = g
}

// Get returns the generator for k.
func (r *Registry) Get(k Kind) (Generator, bool) {
	g, ok := r.gens[k]
	return g, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.gens))
	for k := range r.gens {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// generateN calls next count times, stopping at the first error.
func generateN(count int, next func() (string, error)) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := next()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// validateByParse derives Validate from Parse.
func validateByParse(parse func(string) (*ParseResult, error), id string) (bool, string) {
	if _, err := parse(id); err != nil {
		return false, err.Error()
	}
	return true, ""
}
