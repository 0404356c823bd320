package service

import (
	"context"

	"github.com/weiawesome/wes-io-live/id-service/internal/generator"
)

// IDService defines the interface for identifier generation.
// An empty kind selects generator.KindObjectID.
type IDService interface {
	Generate(ctx context.Context, kind string, opts generator.Options) (string, error)
	GenerateBatch(ctx context.Context, kind string, count int, opts generator.Options) ([]string, error)
	Validate(ctx context.Context, kind, id string) (valid bool, reason string, err error)
	Parse(ctx context.Context, kind, id string) (*generator.ParseResult, error)
	Kinds() []string
}

// Recorder receives generation outcomes.
type Recorder interface {
	Generated(kind string, n int)
	Failed(kind, reason string)
}
