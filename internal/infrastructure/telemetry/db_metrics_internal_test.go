package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationName(t *testing.T) {
	tests := []struct {
		op, sql, want string
	}{
		{"create", "", "INSERT"},
		{"query", "", "SELECT"},
		{"update", "", "UPDATE"},
		{"delete", "", "DELETE"},
		{"raw", "  select coalesce(sum(amount), 0) from payments", "SELECT"},
		{"row", "UPDATE invoices SET status = 'paid'", "UPDATE"},
		{"raw", "PRAGMA foreign_keys = ON", "OTHER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, operationName(tt.op, tt.sql), tt.sql)
	}
}
