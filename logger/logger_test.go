package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(false))
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	require.NoError(t, Initialize(true))
	assert.True(t, JSONOutput)
}

func TestNopBeforeInitialize(t *testing.T) {
	// init() installs a nop logger, so logging before Initialize must not panic
	Logger.Infow("pre-init message", "key", "value")
}

func TestMinimalEncoderEntry(t *testing.T) {
	enc := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 3, 14, 13, 4, 35, 0, time.UTC),
		LoggerName: "template.engine",
		Message:    "Template resolved",
	}

	buf, err := enc.EncodeEntry(entry, []zapcore.Field{
		zap.String("session", "9f2c"),
		zap.Int("passes", 2),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "t.engine")
	assert.Contains(t, out, "Template resolved")
	assert.Contains(t, out, "session=")
	assert.Contains(t, out, "9f2c")
	assert.Contains(t, out, "passes=")
	assert.NotContains(t, out, "INFO")
}

func TestMinimalEncoderWarnLevel(t *testing.T) {
	enc := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Now(),
		Message: "pool file missing, using built-ins",
	}

	buf, err := enc.EncodeEntry(entry, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "WARN")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "engine", abbreviateName("engine"))
	assert.Equal(t, "t.engine", abbreviateName("template.engine"))
	assert.Equal(t, "f.csv.reader", abbreviateName("funcs.csv.reader"))
}
