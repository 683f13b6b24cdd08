package botan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	v, err := GetVersion()
	require.NoError(t, err)
	t.Logf("linked against %s", v.String)

	assert.Equal(t, 2, v.Major)
	assert.GreaterOrEqual(t, v.Minor, 8)
	assert.GreaterOrEqual(t, v.FFIAPI, uint32(MinimumAPIVersion))
	assert.NotEmpty(t, v.String)

	assert.True(t, SupportsAPI(20180713))
	assert.False(t, SupportsAPI(20180712))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	SetLogger(l)
	defer SetLogger(logrus.StandardLogger())

	// output buffer resizing is logged at debug level
	_, err := negotiateBytes("test op", 1, func(buf []byte) (int, ErrorCode) {
		if len(buf) < 4 {
			return 4, CodeInsufficientBufferSpace
		}
		return 4, CodeSuccess
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "output buffer resized"), buf.String())
	assert.Contains(t, buf.String(), "test op")
}
