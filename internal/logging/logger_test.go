package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info", zapcore.WarnLevel))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning", zapcore.InfoLevel))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("Error", zapcore.InfoLevel))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud", zapcore.InfoLevel))
}

func TestNew(t *testing.T) {
	t.Setenv(LevelEnv, "")

	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown", zap.Int("files", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "files")

	buf.Reset()
	New(&buf, true).Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNew_LevelEnv(t *testing.T) {
	t.Setenv(LevelEnv, "error")

	var buf bytes.Buffer
	New(&buf, true).Warn("quiet")
	assert.Empty(t, buf.String())
}
