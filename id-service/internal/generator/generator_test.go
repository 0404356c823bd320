package generator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

func intPtr(v int) *int { return &v }

func newTestObjectIDGenerator(t *testing.T, format objectid.Format) *ObjectIDGenerator {
	t.Helper()
	gen := objectid.NewGenerator(
		objectid.WithState(objectid.NewState(objectid.WithSeed(0xA1B2C3D4, 10))),
		objectid.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
	)
	g, err := NewObjectIDGenerator(gen, 3, format)
	require.NoError(t, err)
	return g
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(KindUUID, NewUUIDGenerator())
	r.Register(KindKSUID, NewKSUIDGenerator())

	g, ok := r.Get(KindUUID)
	assert.True(t, ok)
	assert.NotNil(t, g)

	_, ok = r.Get(KindULID)
	assert.False(t, ok)

	assert.Equal(t, []Kind{KindKSUID, KindUUID}, r.Kinds())
	assert.Panics(t, func() { r.Register(KindUUID, NewUUIDGenerator()) })
}

func TestObjectIDGeneratorDefaults(t *testing.T) {
	g := newTestObjectIDGenerator(t, objectid.Hex)

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, id, objectid.HexLen)

	res, err := g.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, KindObjectID, res.Kind)
	assert.Equal(t, int64(1700000000000), res.TimestampMs)
	assert.Equal(t, int32(3), *res.Type)
	assert.Equal(t, uint32(0xA1B2C3D4), *res.Salt)
	assert.Equal(t, uint32(10), *res.Counter)
	assert.Equal(t, id, res.Hex)
}

func TestObjectIDGeneratorOptions(t *testing.T) {
	g := newTestObjectIDGenerator(t, objectid.Hex)

	id, err := g.GenerateWith(Options{Type: intPtr(200), Format: "base64"})
	require.NoError(t, err)
	assert.Len(t, id, objectid.Base64Len)

	res, err := g.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, int32(200), *res.Type)
	assert.Equal(t, id, res.Base64)
}

func TestObjectIDGeneratorRejectsBadOptionsBeforeCounting(t *testing.T) {
	g := newTestObjectIDGenerator(t, objectid.Hex)

	_, err := g.GenerateWith(Options{Type: intPtr(256)})
	assert.ErrorIs(t, err, objectid.ErrInvalidType)
	_, err = g.GenerateWith(Options{Format: "base32"})
	assert.ErrorIs(t, err, objectid.ErrUnknownFormat)

	id, err := g.Generate()
	require.NoError(t, err)
	res, err := g.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), *res.Counter)
}

func TestObjectIDGeneratorBatch(t *testing.T) {
	g := newTestObjectIDGenerator(t, objectid.Base64)

	ids, err := g.GenerateBatch(3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for i, id := range ids {
		res, err := g.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uint32(10+i), *res.Counter)
	}

	_, err = g.GenerateBatchWith(Options{}, 0)
	assert.ErrorIs(t, err, objectid.ErrInvalidBatchSize)
}

func TestNewObjectIDGeneratorValidation(t *testing.T) {
	_, err := NewObjectIDGenerator(objectid.NewGenerator(), 300, objectid.Hex)
	assert.ErrorIs(t, err, objectid.ErrInvalidType)

	_, err = NewObjectIDGenerator(objectid.NewGenerator(), 0, objectid.Format(7))
	assert.ErrorIs(t, err, objectid.ErrUnknownFormat)
}

func TestObjectIDValidate(t *testing.T) {
	g := newTestObjectIDGenerator(t, objectid.Hex)

	ok, reason := g.Validate("not-an-id")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	id, err := g.Generate()
	require.NoError(t, err)
	ok, reason = g.Validate(id)
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestExternalGeneratorsRoundTrip(t *testing.T) {
	nano, err := NewNanoIDGenerator(DefaultNanoIDSize, DefaultNanoIDAlphabet)
	require.NoError(t, err)
	cuid, err := NewCUID2Generator(DefaultCUID2Length)
	require.NoError(t, err)

	gens := map[Kind]Generator{
		KindUUID:   NewUUIDGenerator(),
		KindULID:   NewULIDGenerator(),
		KindKSUID:  NewKSUIDGenerator(),
		KindNanoID: nano,
		KindCUID2:  cuid,
	}
	for kind, g := range gens {
		t.Run(string(kind), func(t *testing.T) {
			ids, err := g.GenerateBatch(5)
			require.NoError(t, err)
			require.Len(t, ids, 5)

			seen := make(map[string]struct{})
			for _, id := range ids {
				seen[id] = struct{}{}
				ok, reason := g.Validate(id)
				assert.True(t, ok, reason)

				res, err := g.Parse(id)
				require.NoError(t, err)
				assert.Equal(t, kind, res.Kind)
			}
			assert.Len(t, seen, 5)

			ok, _ := g.Validate("?")
			assert.False(t, ok)
		})
	}
}

func TestULIDGeneratorMonotonic(t *testing.T) {
	g := NewULIDGenerator()
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }

	ids, err := g.GenerateBatch(50)
	require.NoError(t, err)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}

	res, err := g.Parse(ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), res.TimestampMs)
}

func TestUUIDParseFields(t *testing.T) {
	g := NewUUIDGenerator()
	res, err := g.Parse("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.Equal(t, int32(4), res.UUIDVersion)
	assert.Equal(t, "RFC4122", res.UUIDVariant)

	_, err = g.Parse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Error(t, err)
}

func TestNanoIDRejectsForeignCharacters(t *testing.T) {
	g, err := NewNanoIDGenerator(4, "ab")
	require.NoError(t, err)

	ok, reason := g.Validate("abca")
	assert.False(t, ok)
	assert.Contains(t, reason, "not in alphabet")

	_, err = NewNanoIDGenerator(0, "ab")
	assert.Error(t, err)
	_, err = NewCUID2Generator(64)
	assert.Error(t, err)
}

func TestParseResultJSONOmitsObjectIDFieldsForOtherKinds(t *testing.T) {
	uuidRes, err := NewUUIDGenerator().Parse("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	b, err := json.Marshal(uuidRes)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &fields))
	for _, key := range []string{"type", "salt", "counter", "hex", "base64"} {
		assert.NotContains(t, fields, key)
	}

	oidRes, err := newTestObjectIDGenerator(t, objectid.Hex).Parse(objectid.Nil.String())
	require.NoError(t, err)
	b, err = json.Marshal(oidRes)
	require.NoError(t, err)

	fields = nil
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.Equal(t, float64(0), fields["type"])
	assert.Equal(t, float64(0), fields["salt"])
	assert.Equal(t, float64(0), fields["counter"])
}
