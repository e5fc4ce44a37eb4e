package account

import (
	"github.com/mattilda/backend/internal/domain/billing"
	"github.com/mattilda/backend/internal/domain/shared/valueobject"
)

// ClampedDebt sums each invoice's pending amount after clamping it at zero
func ClampedDebt(balances []billing.InvoiceBalance) valueobject.Money {
	debt := valueobject.Zero()
	for _, b := range balances {
		debt = debt.Add(b.Pending().ClampZero())
	}
	return debt
}

// NetDebt is invoiced minus paid without clamping. Transfers between schools are
// gated on this figure.
func NetDebt(balances []billing.InvoiceBalance) valueobject.Money {
	invoiced, paid := valueobject.Zero(), valueobject.Zero()
	for _, b := range balances {
		invoiced = invoiced.Add(b.TotalAmount)
		paid = paid.Add(b.PaidAmount)
	}
	return invoiced.Sub(paid)
}
