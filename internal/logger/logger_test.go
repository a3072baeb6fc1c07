package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(false, false)
	require.NoError(t, err)
	assert.NotNil(t, log)

	jsonLog, err := New(true, true)
	require.NoError(t, err)
	assert.NotNil(t, jsonLog)
	assert.True(t, jsonLog.Core().Enabled(-1)) // debug level enabled
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Equal(t, "abc...", TruncateForLog("abcdefgh", 3))
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "trimmed", TruncateForLog("  trimmed  ", 10))
}
