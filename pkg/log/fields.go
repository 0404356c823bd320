package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Service
	FieldService = "service"

	// gRPC
	FieldGRPCMethod = "grpc_method"
	FieldGRPCCode   = "grpc_code"

	// ID generation
	FieldIDKind   = "id_kind"
	FieldIDType   = "id_type"
	FieldIDFormat = "id_format"
	FieldCount    = "count"
	FieldPolicy   = "timestamp_policy"
)

// RequestIDType is the ObjectID type tag used for generated request ids.
const RequestIDType = 0xFE
