package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestGenerateRequestStruct(t *testing.T) {
	typ := 5
	in := GenerateRequest{Kind: "objectid", Type: &typ, Format: "base64", Count: 3}

	out, err := GenerateRequestFromStruct(in.ToStruct())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestGenerateRequestOmitsUnset(t *testing.T) {
	s := GenerateRequest{}.ToStruct()
	assert.Empty(t, s.GetFields())

	out, err := GenerateRequestFromStruct(s)
	require.NoError(t, err)
	assert.Nil(t, out.Type)
	assert.Zero(t, out.Count)
}

func TestGenerateRequestRejectsBadFields(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"fractional type": {FieldType: 1.5},
		"string type":     {FieldType: "1"},
		"numeric kind":    {FieldKind: 3},
		"huge count":      {FieldCount: 1e12},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := structpb.NewStruct(fields)
			require.NoError(t, err)
			_, err = GenerateRequestFromStruct(s)
			assert.Error(t, err)
		})
	}
}

func TestIDRequestStruct(t *testing.T) {
	in := IDRequest{Kind: "ulid", ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"}
	out, err := IDRequestFromStruct(in.ToStruct())
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = IDRequestFromStruct(&structpb.Struct{})
	assert.Error(t, err)
}

func TestStringsValue(t *testing.T) {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldIDs: StringsValue([]string{"a", "b"}),
	}}
	ids, err := Strings(s, FieldIDs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	s.Fields[FieldIDs] = structpb.NewStringValue("a")
	_, err = Strings(s, FieldIDs)
	assert.Error(t, err)
}
