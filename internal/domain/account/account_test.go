package account

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balance(total, paid string) billing.InvoiceBalance {
	return billing.InvoiceBalance{
		InvoiceID:   uuid.New(),
		TotalAmount: valueobject.MustMoney(total),
		PaidAmount:  valueobject.MustMoney(paid),
	}
}

func TestNewTotals(t *testing.T) {
	totals := NewTotals(valueobject.MustMoney("1000.00"), valueobject.MustMoney("250.50"))
	assert.Equal(t, "749.50", totals.TotalPending.String())
}

func TestDebtAsymmetry(t *testing.T) {
	balances := []billing.InvoiceBalance{
		balance("100.00", "150.00"), // overpaid by 50
		balance("200.00", "0"),
	}

	assert.Equal(t, "200.00", ClampedDebt(balances).String(), "overpayment does not offset other invoices")
	assert.Equal(t, "150.00", NetDebt(balances).String(), "net debt lets balances offset")
}

func TestDebtEmpty(t *testing.T) {
	assert.True(t, ClampedDebt(nil).IsZero())
	assert.True(t, NetDebt(nil).IsZero())
}

func TestStatementJSONRoundTripKeepsDecimals(t *testing.T) {
	inv := billing.Invoice{
		InvoiceNumber: "INV-1",
		TotalAmount:   valueobject.MustMoney("1000.10"),
		IssueDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        billing.InvoiceStatusPartial,
		Payments: []billing.Payment{
			{Amount: valueobject.MustMoney("0.10")},
		},
	}
	in := SchoolStatement{
		SchoolID:      uuid.New(),
		SchoolName:    "North",
		TotalStudents: 2,
		Totals:        NewTotals(valueobject.MustMoney("1000.10"), valueobject.MustMoney("0.10")),
		TotalInvoices: 1,
		Invoices:      NewInvoiceLines([]billing.Invoice{inv}),
		Limit:         10,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_pending":"1000.00"`)
	assert.Contains(t, string(data), `"due_date":"2024-03-01"`)

	var out SchoolStatement
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.TotalPending.Equals(in.TotalPending))
	require.Len(t, out.Invoices, 1)
	assert.Equal(t, "0.10", out.Invoices[0].Payments[0].Amount.String())
}
