package id

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// Struct keys used by IDService messages.
const (
	FieldKind   = "kind"
	FieldType   = "type"
	FieldFormat = "format"
	FieldCount  = "count"
	FieldID     = "id"
	FieldIDs    = "ids"
	FieldValid  = "valid"
	FieldReason = "reason"
)

// GenerateRequest is the typed view of GenerateID and GenerateBatchIDs
// requests. Count is ignored by GenerateID.
type GenerateRequest struct {
	Kind   string
	Type   *int
	Format string
	Count  int
}

// ToStruct encodes r, omitting unset fields.
func (r GenerateRequest) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{}
	if r.Kind != "" {
		fields[FieldKind] = structpb.NewStringValue(r.Kind)
	}
	if r.Type != nil {
		fields[FieldType] = structpb.NewNumberValue(float64(*r.Type))
	}
	if r.Format != "" {
		fields[FieldFormat] = structpb.NewStringValue(r.Format)
	}
	if r.Count != 0 {
		fields[FieldCount] = structpb.NewNumberValue(float64(r.Count))
	}
	return &structpb.Struct{Fields: fields}
}

// GenerateRequestFromStruct decodes a GenerateID or GenerateBatchIDs request.
func GenerateRequestFromStruct(s *structpb.Struct) (GenerateRequest, error) {
	var r GenerateRequest
	var err error
	if r.Kind, err = stringField(s, FieldKind); err != nil {
		return r, err
	}
	if r.Format, err = stringField(s, FieldFormat); err != nil {
		return r, err
	}
	if r.Type, err = intField(s, FieldType); err != nil {
		return r, err
	}
	count, err := intField(s, FieldCount)
	if err != nil {
		return r, err
	}
	if count != nil {
		r.Count = *count
	}
	return r, nil
}

// IDRequest is the typed view of ValidateID and ParseID requests.
type IDRequest struct {
	Kind string
	ID   string
}

// ToStruct encodes r.
func (r IDRequest) ToStruct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldID: structpb.NewStringValue(r.ID),
	}
	if r.Kind != "" {
		fields[FieldKind] = structpb.NewStringValue(r.Kind)
	}
	return &structpb.Struct{Fields: fields}
}

// IDRequestFromStruct decodes a ValidateID or ParseID request.
func IDRequestFromStruct(s *structpb.Struct) (IDRequest, error) {
	var r IDRequest
	var err error
	if r.Kind, err = stringField(s, FieldKind); err != nil {
		return r, err
	}
	if r.ID, err = stringField(s, FieldID); err != nil {
		return r, err
	}
	if r.ID == "" {
		return r, fmt.Errorf("field %q is required", FieldID)
	}
	return r, nil
}

// StringsValue wraps ids as a list value.
func StringsValue(ids []string) *structpb.Value {
	values := make([]*structpb.Value, len(ids))
	for i, id := range ids {
		values[i] = structpb.NewStringValue(id)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// Strings reads a list of strings stored under key.
func Strings(s *structpb.Struct, key string) ([]string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("field %q must be a list", key)
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		str, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("field %q must hold strings", key)
		}
		out = append(out, str.StringValue)
	}
	return out, nil
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return str.StringValue, nil
}

func intField(s *structpb.Struct, key string) (*int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return nil, fmt.Errorf("field %q must be a number", key)
	}
	f := num.NumberValue
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, fmt.Errorf("field %q must be an integer, got %v", key, f)
	}
	n := int(f)
	return &n, nil
}
