package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/weiawesome/wes-io-live/pkg/objectid"
	pb "github.com/weiawesome/wes-io-live/proto/id"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestGenerateLocal(t *testing.T) {
	out, err := run(t, "generate", "--type", "5", "--count", "3")
	require.NoError(t, err)

	ids := lines(out)
	require.Len(t, ids, 3)
	var prev objectid.ObjectID
	for i, s := range ids {
		assert.Regexp(t, `^[0-9a-f]{28}$`, s)
		id, err := objectid.ParseHex(s)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), id.Type())
		if i > 0 {
			assert.Equal(t, prev.Salt(), id.Salt())
			assert.Equal(t, (prev.Counter()+1)&objectid.MaxCounter, id.Counter())
		}
		prev = id
	}
}

func TestGenerateBase64(t *testing.T) {
	out, err := run(t, "generate", "--format", "base64")
	require.NoError(t, err)

	ids := lines(out)
	require.Len(t, ids, 1)
	assert.Len(t, ids[0], objectid.Base64Len)
	_, err = objectid.ParseBase64(ids[0])
	assert.NoError(t, err)
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	_, err := run(t, "generate", "--type", "256")
	assert.ErrorIs(t, err, objectid.ErrInvalidType)

	_, err = run(t, "generate", "--format", "base32")
	assert.ErrorIs(t, err, objectid.ErrUnknownFormat)

	_, err = run(t, "generate", "--count", "0")
	assert.ErrorIs(t, err, objectid.ErrInvalidBatchSize)
}

func TestParse(t *testing.T) {
	id, err := objectid.Encode(5, 1700000000000, 0xCAFEBABE, 0x0A0B0C, objectid.TimestampStrict)
	require.NoError(t, err)

	for _, args := range [][]string{
		{"parse", id.String()},
		{"parse", id.Base64()},
		{"parse", strings.ToUpper(id.String()), "--format", "hex"},
	} {
		out, err := run(t, args...)
		require.NoError(t, err)

		var f Fields
		require.NoError(t, json.Unmarshal([]byte(out), &f))
		assert.Equal(t, FieldsOf(id), f)
		assert.Equal(t, "2023-11-14T22:13:20Z", f.Time)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := run(t, "parse", "abc")
	assert.ErrorIs(t, err, objectid.ErrDecode)

	id := objectid.MustGenerate(1)
	_, err = run(t, "parse", id.String(), "--format", "base64")
	assert.ErrorIs(t, err, objectid.ErrDecode)

	_, err = run(t, "parse")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	id := objectid.MustGenerate(9)

	out, err := run(t, "convert", id.String())
	require.NoError(t, err)
	assert.Equal(t, id.Base64(), strings.TrimSpace(out))

	out, err = run(t, "convert", id.Base64(), "--to", "hex")
	require.NoError(t, err)
	assert.Equal(t, id.String(), strings.TrimSpace(out))

	_, err = run(t, "convert", id.String(), "--to", "base32")
	assert.ErrorIs(t, err, objectid.ErrUnknownFormat)
}

type idStub struct {
	pb.UnimplementedIDServiceServer
	got *structpb.Struct
}

func (s *idStub) GenerateBatchIDs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	s.got = req
	r, err := pb.GenerateRequestFromStruct(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, r.Count)
	for i := range ids {
		ids[i] = objectid.MustGenerate(*r.Type).String()
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldIDs: pb.StringsValue(ids),
	}}, nil
}

func startStub(t *testing.T, stub *idStub) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	gs := grpc.NewServer()
	pb.RegisterIDServiceServer(gs, stub)
	go func() { _ = gs.Serve(l) }()
	t.Cleanup(gs.Stop)
	return l.Addr().String()
}

func TestGenerateRemote(t *testing.T) {
	stub := &idStub{}
	addr := startStub(t, stub)

	out, err := run(t, "generate", "--server", addr, "--type", "7", "--count", "2")
	require.NoError(t, err)

	ids := lines(out)
	require.Len(t, ids, 2)
	for _, s := range ids {
		id, err := objectid.ParseHex(s)
		require.NoError(t, err)
		assert.Equal(t, uint8(7), id.Type())
	}

	r, err := pb.GenerateRequestFromStruct(stub.got)
	require.NoError(t, err)
	assert.Equal(t, "objectid", r.Kind)
	assert.Equal(t, 2, r.Count)
}

func TestGenerateRemoteFromEnv(t *testing.T) {
	addr := startStub(t, &idStub{})
	t.Setenv(EnvServer, addr)

	out, err := run(t, "generate")
	require.NoError(t, err)
	assert.Len(t, lines(out), 1)

	_, err = run(t, "generate", "--truncate")
	assert.Error(t, err)
}
