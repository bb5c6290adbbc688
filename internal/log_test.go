package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_TraceOnlyAtTraceLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	debug := FromZap(zap.New(core), LogLevelDebug)
	debug.Trace("hidden %d", 1)
	debug.Debug("shown %d", 2)

	trace := FromZap(zap.New(core), LogLevelTrace)
	trace.Trace("step %s", "qq")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "shown 2", entries[0].Message)
		assert.Equal(t, "[TRACE] step qq", entries[1].Message)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := FromZap(zap.New(core), LogLevelInfo).With("run_id", "abc")
	log.Info("done")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "abc", entries[0].ContextMap()["run_id"])
	}
}
