package generator

import (
	"fmt"

	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

// ObjectIDGenerator serves 14-byte ObjectIDs from a shared objectid.Generator.
type ObjectIDGenerator struct {
	gen    *objectid.Generator
	typ    int
	format objectid.Format
}

// NewObjectIDGenerator creates an ObjectIDGenerator whose plain Generate
// calls use defaultType and format.
func NewObjectIDGenerator(gen *objectid.Generator, defaultType int, format objectid.Format) (*ObjectIDGenerator, error) {
	if defaultType < 0 || defaultType > objectid.MaxType {
		return nil, fmt.Errorf("%w: default type %d", objectid.ErrInvalidType, defaultType)
	}
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	return &ObjectIDGenerator{
		gen:    gen,
		typ:    defaultType,
		format: format,
	}, nil
}

func (g *ObjectIDGenerator) Generate() (string, error) {
	return g.render(g.gen.Generate(g.typ))
}

func (g *ObjectIDGenerator) GenerateBatch(count int) ([]string, error) {
	return g.GenerateBatchWith(Options{}, count)
}

// GenerateWith generates one ObjectID with per-call type and format.
func (g *ObjectIDGenerator) GenerateWith(opts Options) (string, error) {
	typ, format, err := g.resolve(opts)
	if err != nil {
		return "", err
	}
	id, err := g.gen.Generate(typ)
	if err != nil {
		return "", err
	}
	return id.Render(format)
}

// GenerateBatchWith generates count ObjectIDs sharing one clock reading.
func (g *ObjectIDGenerator) GenerateBatchWith(opts Options, count int) ([]string, error) {
	typ, format, err := g.resolve(opts)
	if err != nil {
		return nil, err
	}
	ids, err := g.gen.GenerateBatch(typ, count)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		if out[i], err = id.Render(format); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *ObjectIDGenerator) Validate(id string) (bool, string) {
	return validateByParse(g.Parse, id)
}

// Parse accepts both the hex and the base64 rendering.
func (g *ObjectIDGenerator) Parse(id string) (*ParseResult, error) {
	parsed, err := objectid.ParseAny(id)
	if err != nil {
		return nil, err
	}
	typ := int32(parsed.Type())
	salt, counter := parsed.Salt(), parsed.Counter()
	return &ParseResult{
		Kind:        KindObjectID,
		TimestampMs: parsed.TimestampMs(),
		Type:        &typ,
		Salt:        &salt,
		Counter:     &counter,
		Hex:         parsed.String(),
		Base64:      parsed.Base64(),
	}, nil
}

func (g *ObjectIDGenerator) render(id objectid.ObjectID, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return id.Render(g.format)
}

// resolve fills unset options from the defaults. Everything is checked
// before the counter is touched.
func (g *ObjectIDGenerator) resolve(opts Options) (int, objectid.Format, error) {
	typ := g.typ
	if opts.Type != nil {
		typ = *opts.Type
	}
	format := g.format
	if opts.Format != "" {
		f, err := objectid.ParseFormat(opts.Format)
		if err != nil {
			return 0, 0, err
		}
		format = f
	}
	return typ, format, nil
}

func checkFormat(f objectid.Format) error {
	if f != objectid.Hex && f != objectid.Base64 {
		return fmt.Errorf("%w: %s", objectid.ErrUnknownFormat, f)
	}
	return nil
}
