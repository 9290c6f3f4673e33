package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	ctx := WithFields(context.Background(), "case_id", "c-1")
	ctx = WithFields(ctx, "op", "recalculate")

	Warnf(ctx, "missing %s", "topside")
	Info(context.Background(), "plain")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "missing topside", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{"case_id": "c-1", "op": "recalculate"}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	err := Init(Config{Level: "loud", Format: "json"})
	require.NoError(t, err)
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	assert.False(t, global.Load().Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, global.Load().Desugar().Core().Enabled(zapcore.InfoLevel))
}
