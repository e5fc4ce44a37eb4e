package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestDBMetrics_RecordQuery(t *testing.T) {
	reader, provider := newTestMeter(t)
	m, err := telemetry.NewDBMetrics(provider.Meter("db"), nil, telemetry.DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 100 * time.Millisecond,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordQuery(ctx, "select", "invoices", 5*time.Millisecond)
	m.RecordQuery(ctx, "SELECT", "payments", 150*time.Millisecond)
	m.RecordQuery(ctx, "", "", 300*time.Millisecond)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumFor(t, metrics["db_query_total"], telemetry.AttrDBOperation.String("SELECT")))
	assert.Equal(t, int64(1), sumFor(t, metrics["db_query_total"], telemetry.AttrDBOperation.String("UNKNOWN")))
	assert.Equal(t, int64(1), sumFor(t, metrics["db_slow_query_total"], telemetry.AttrDBTable.String("payments")))
	assert.Equal(t, int64(1), sumFor(t, metrics["db_slow_query_total"], telemetry.AttrDBTable.String("unknown")))
	assert.Equal(t, int64(0), sumFor(t, metrics["db_slow_query_total"], telemetry.AttrDBTable.String("invoices")))
}

func TestDBMetricsPlugin_CountsGormStatements(t *testing.T) {
	reader, provider := newTestMeter(t)
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := telemetry.NewDBMetrics(provider.Meter("db"), sqlDB, telemetry.DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	defer m.Stop()
	require.NoError(t, db.Use(telemetry.NewDBMetricsPlugin(m)))

	type school struct {
		ID   uint
		Name string
	}
	require.NoError(t, db.AutoMigrate(&school{}))
	require.NoError(t, db.Create(&school{Name: "North High"}).Error)
	var got []school
	require.NoError(t, db.Find(&got).Error)
	require.NoError(t, db.Model(&school{}).Where("id = ?", got[0].ID).Update("name", "North").Error)
	require.NoError(t, db.Delete(&school{}, got[0].ID).Error)

	metrics := collect(t, reader)
	total := metrics["db_query_total"]
	for _, op := range []string{"INSERT", "SELECT", "UPDATE", "DELETE"} {
		assert.GreaterOrEqual(t, sumFor(t, total, telemetry.AttrDBOperation.String(op)), int64(1), op)
	}

	pool, ok := metrics["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, pool.DataPoints, 1)
	assert.Equal(t, int64(1), pool.DataPoints[0].Value)
}

func TestRegisterDBMetrics_Disabled(t *testing.T) {
	db := openSQLite(t)
	m, err := telemetry.RegisterDBMetrics(db, nil, telemetry.DBMetricsConfig{Enabled: true}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Nil(t, m)
}
