package telemetry_test

import (
	"context"
	"testing"

	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReceivablesProvider(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.Exec(`CREATE TABLE invoices (id TEXT PRIMARY KEY, status TEXT NOT NULL, total_amount NUMERIC NOT NULL)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE payments (id TEXT PRIMARY KEY, invoice_id TEXT NOT NULL, amount NUMERIC NOT NULL)`).Error)

	require.NoError(t, db.Exec(`INSERT INTO invoices (id, status, total_amount) VALUES
		('i1', 'pending', 1000.00),
		('i2', 'partial', 300.00),
		('i3', 'paid', 200.00),
		('i4', 'cancelled', 999.00)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO payments (id, invoice_id, amount) VALUES
		('p1', 'i2', 100.10),
		('p2', 'i3', 200.00),
		('p3', 'i4', 50.00)`).Error)

	provider := telemetry.NewGormReceivablesProvider(db)
	ctx := context.Background()

	counts, err := provider.InvoiceCountsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pending": 1, "partial": 1, "paid": 1, "cancelled": 1}, counts)

	balance, err := provider.OutstandingBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1199.9", balance.String())
}

func TestGormReceivablesProvider_Empty(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.Exec(`CREATE TABLE invoices (id TEXT PRIMARY KEY, status TEXT NOT NULL, total_amount NUMERIC NOT NULL)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE payments (id TEXT PRIMARY KEY, invoice_id TEXT NOT NULL, amount NUMERIC NOT NULL)`).Error)

	provider := telemetry.NewGormReceivablesProvider(db)
	counts, err := provider.InvoiceCountsByStatus(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)

	balance, err := provider.OutstandingBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
