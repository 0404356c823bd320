package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

func TestObjectIDCoreSharesProcessState(t *testing.T) {
	core := newObjectIDCore(objectid.TimestampTruncate)
	assert.Same(t, objectid.Default().State(), core.State())
	assert.Equal(t, objectid.TimestampTruncate, core.Policy())

	served, err := core.Generate(1)
	require.NoError(t, err)
	reqID, err := objectid.ParseHex(pkglog.NewRequestID())
	require.NoError(t, err)

	assert.Equal(t, served.Salt(), reqID.Salt())
	assert.Equal(t, (served.Counter()+1)&objectid.MaxCounter, reqID.Counter())
}
