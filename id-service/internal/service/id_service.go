package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/weiawesome/wes-io-live/id-service/internal/generator"
	"github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

var (
	ErrUnknownKind       = errors.New("unknown id kind")
	ErrInvalidCount      = errors.New("invalid batch count")
	ErrUnsupportedOption = errors.New("id kind does not support type or format")
	ErrInvalidID         = errors.New("invalid id")
)

// Failure reasons reported to the Recorder.
const (
	ReasonInvalidArgument = "invalid_argument"
	ReasonClock           = "clock"
	ReasonInternal        = "internal"
)

// idServiceImpl implements IDService interface.
type idServiceImpl struct {
	registry *generator.Registry
	maxBatch int
	recorder Recorder
}

// NewIDService creates a new id service. maxBatch bounds GenerateBatch.
func NewIDService(registry *generator.Registry, maxBatch int, recorder Recorder) IDService {
	return &idServiceImpl{
		registry: registry,
		maxBatch: maxBatch,
		recorder: recorder,
	}
}

// IsInvalidArgument reports whether err was caused by the caller's input.
func IsInvalidArgument(err error) bool {
	for _, target := range []error{
		ErrUnknownKind,
		ErrInvalidCount,
		ErrUnsupportedOption,
		ErrInvalidID,
		objectid.ErrInvalidType,
		objectid.ErrUnknownFormat,
		objectid.ErrInvalidBatchSize,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func reason(err error) string {
	switch {
	case IsInvalidArgument(err):
		return ReasonInvalidArgument
	case errors.Is(err, objectid.ErrInvalidTimestamp):
		return ReasonClock
	default:
		return ReasonInternal
	}
}

func (s *idServiceImpl) lookup(kind string) (generator.Kind, generator.Generator, error) {
	k := generator.Kind(kind)
	if k == "" {
		k = generator.KindObjectID
	}
	gen, ok := s.registry.Get(k)
	if !ok {
		return k, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return k, gen, nil
}

func (s *idServiceImpl) Generate(ctx context.Context, kind string, opts generator.Options) (string, error) {
	k, gen, err := s.lookup(kind)
	if err != nil {
		return "", err
	}

	var id string
	if opts.IsZero() {
		id, err = gen.Generate()
	} else if typed, ok := gen.(generator.TypedGenerator); ok {
		id, err = typed.GenerateWith(opts)
	} else {
		err = fmt.Errorf("%w: %s", ErrUnsupportedOption, k)
	}
	if err != nil {
		return "", s.fail(ctx, k, err)
	}

	s.recorder.Generated(string(k), 1)
	return id, nil
}

func (s *idServiceImpl) GenerateBatch(ctx context.Context, kind string, count int, opts generator.Options) ([]string, error) {
	k, gen, err := s.lookup(kind)
	if err != nil {
		return nil, err
	}
	if count < 1 || count > s.maxBatch {
		return nil, s.fail(ctx, k, fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidCount, s.maxBatch, count))
	}

	var ids []string
	if opts.IsZero() {
		ids, err = gen.GenerateBatch(count)
	} else if typed, ok := gen.(generator.TypedGenerator); ok {
		ids, err = typed.GenerateBatchWith(opts, count)
	} else {
		err = fmt.Errorf("%w: %s", ErrUnsupportedOption, k)
	}
	if err != nil {
		return nil, s.fail(ctx, k, err)
	}

	s.recorder.Generated(string(k), len(ids))
	l := log.Ctx(ctx)
	l.Debug().Str(log.FieldIDKind, string(k)).Int(log.FieldCount, len(ids)).Msg("batch generated")
	return ids, nil
}

func (s *idServiceImpl) Validate(ctx context.Context, kind, id string) (bool, string, error) {
	_, gen, err := s.lookup(kind)
	if err != nil {
		return false, "", err
	}
	valid, why := gen.Validate(id)
	return valid, why, nil
}

func (s *idServiceImpl) Parse(ctx context.Context, kind, id string) (*generator.ParseResult, error) {
	_, gen, err := s.lookup(kind)
	if err != nil {
		return nil, err
	}
	res, err := gen.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return res, nil
}

func (s *idServiceImpl) Kinds() []string {
	kinds := s.registry.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func (s *idServiceImpl) fail(ctx context.Context, k generator.Kind, err error) error {
	r := reason(err)
	s.recorder.Failed(string(k), r)
	if r != ReasonInvalidArgument {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldIDKind, string(k)).Str("reason", r).Msg("id generation failed")
	}
	return err
}
