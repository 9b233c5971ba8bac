package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "rank-therapists"})

	log.Warn("day fetch failed", map[string]interface{}{
		"date":  "2025-01-01",
		"error": errors.New("connection refused"),
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "rank-therapists", ctx["taskType"])
		assert.Equal(t, "2025-01-01", ctx["date"])
		assert.Equal(t, "connection refused", ctx["error"])
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	}
}

func TestNew_LevelParsing(t *testing.T) {
	assert.True(t, New("debug", "json").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn", "console").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, New("bogus", "json").Core().Enabled(zapcore.InfoLevel))
	assert.False(t, New("bogus", "json").Core().Enabled(zapcore.DebugLevel))
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.WithError(errors.New("x")).Error("ignored", nil)
}
