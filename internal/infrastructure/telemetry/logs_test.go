package telemetry_test

import (
	"context"
	"testing"

	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:     false,
		ServiceName: "school-billing-test",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestNewZapOTELCore_DisabledIsNop(t *testing.T) {
	core := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{ServiceName: "school-billing-test"})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	core = telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{LoggerProvider: lp, Level: zapcore.WarnLevel})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestNewZapOTELCore_LevelFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("exporter dials the collector lazily; skipped in short mode")
	}
	ctx := context.Background()
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "school-billing-test",
		Insecure:          true,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = lp.Shutdown(ctx) }()

	core := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    "school-billing-test",
		LoggerProvider: lp,
		Level:          zapcore.WarnLevel,
	})
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))
	assert.False(t, core.With(nil).Enabled(zapcore.InfoLevel))
}
