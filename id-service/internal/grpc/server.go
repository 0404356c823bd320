package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/weiawesome/wes-io-live/id-service/internal/generator"
	"github.com/weiawesome/wes-io-live/id-service/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	pb "github.com/weiawesome/wes-io-live/proto/id"
)

type idServer struct {
	pb.UnimplementedIDServiceServer
	svc service.IDService
}

func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrUnknownKind):
		return status.Error(codes.NotFound, err.Error())
	case service.IsInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func (s *idServer) GenerateID(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := pb.GenerateRequestFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := s.svc.Generate(ctx, r.Kind, generator.Options{Type: r.Type, Format: r.Format})
	if err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldID: structpb.NewStringValue(id),
	}}, nil
}

func (s *idServer) GenerateBatchIDs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := pb.GenerateRequestFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ids, err := s.svc.GenerateBatch(ctx, r.Kind, r.Count, generator.Options{Type: r.Type, Format: r.Format})
	if err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldIDs: pb.StringsValue(ids),
	}}, nil
}

func (s *idServer) ValidateID(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := pb.IDRequestFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	valid, reason, err := s.svc.Validate(ctx, r.Kind, r.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldValid:  structpb.NewBoolValue(valid),
		pb.FieldReason: structpb.NewStringValue(reason),
	}}, nil
}

// ParseID reports malformed ids in the response body rather than as an
// error status.
func (s *idServer) ParseID(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := pb.IDRequestFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.svc.Parse(ctx, r.Kind, r.ID)
	if errors.Is(err, service.ErrInvalidID) {
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			pb.FieldValid:  structpb.NewBoolValue(false),
			pb.FieldReason: structpb.NewStringValue(err.Error()),
		}}, nil
	}
	if err != nil {
		return nil, toStatus(err)
	}

	out, err := structpb.NewStruct(parseFields(result))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// parseFields flattens result, leaving out fields the kind does not carry.
func parseFields(result *generator.ParseResult) map[string]interface{} {
	fields := map[string]interface{}{
		pb.FieldValid: true,
		pb.FieldKind:  string(result.Kind),
	}
	if result.TimestampMs != 0 || result.Type != nil {
		fields["timestamp_ms"] = result.TimestampMs
	}
	if result.UUIDVersion != 0 {
		fields["uuid_version"] = result.UUIDVersion
	}
	if result.IDLength != 0 {
		fields["id_length"] = result.IDLength
	}
	for key, v := range map[string]string{
		"uuid_variant":   result.UUIDVariant,
		"random_payload": result.RandomPayload,
		"alphabet":       result.Alphabet,
		"hex":            result.Hex,
		"base64":         result.Base64,
	} {
		if v != "" {
			fields[key] = v
		}
	}
	if result.Type != nil {
		fields[pb.FieldType] = *result.Type
	}
	if result.Salt != nil {
		fields["salt"] = *result.Salt
	}
	if result.Counter != nil {
		fields["counter"] = *result.Counter
	}
	return fields
}

// NewServer builds the gRPC server with the id service and the standard
// health service registered.
func NewServer(svc service.IDService, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
	)
	pb.RegisterIDServiceServer(s, &idServer{svc: svc})

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return s
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(addr string, svc service.IDService, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(svc, logger)
	go func() {
		logger.Info().Str("addr", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}
