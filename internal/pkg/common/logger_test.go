package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = prev })
	return logs
}

func TestLogHelpersKeepFields(t *testing.T) {
	logs := observeLogs(t)

	LogWarn("Skipped catalog row", zap.String("name", "Biryani"), zap.String("raw_ingredients", `c("rice")`))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "Biryani", fields["name"])
	assert.Equal(t, `c("rice")`, fields["raw_ingredients"])
}

func TestLogRecommendation(t *testing.T) {
	logs := observeLogs(t)

	LogRecommendation("req-1", 6, 5, 3*time.Millisecond, true)

	entries := logs.FilterMessage("推薦完成").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(6), fields["filtered_rows"])
	assert.Equal(t, true, fields["found"])
}
