package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ReceivablesProvider reports the current state of the books for observable gauges.
// It is queried on each collection cycle, so no background goroutine is needed.
type ReceivablesProvider interface {
	InvoiceCountsByStatus(ctx context.Context) (map[string]int64, error)
	OutstandingBalance(ctx context.Context) (decimal.Decimal, error)
}

// BillingMetrics records payment admission, statement caching and the receivables snapshot.
type BillingMetrics struct {
	logger *zap.Logger

	paymentsAdmitted *Counter
	paymentsRejected *Counter
	paymentAmount    *Histogram
	cacheLookups     *Counter
	invalidations    *Counter

	registration metric.Registration
}

// BillingMetricsConfig holds configuration for billing metrics.
type BillingMetricsConfig struct {
	Meter       metric.Meter
	Logger      *zap.Logger
	Receivables ReceivablesProvider // optional
}

// NewBillingMetrics creates the billing instruments on cfg.Meter
func NewBillingMetrics(cfg BillingMetricsConfig) (*BillingMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BillingMetrics{logger: logger}
	var err error

	if bm.paymentsAdmitted, err = NewCounter(cfg.Meter,
		"billing_payments_admitted_total", "Payments accepted against an invoice", "{payment}"); err != nil {
		return nil, err
	}
	if bm.paymentsRejected, err = NewCounter(cfg.Meter,
		"billing_payments_rejected_total", "Payments refused, by reason", "{payment}"); err != nil {
		return nil, err
	}
	if bm.paymentAmount, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "billing_payment_amount",
		Description: "Distribution of admitted payment amounts",
		Unit:        "{currency}",
		Boundaries:  PaymentAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.cacheLookups, err = NewCounter(cfg.Meter,
		"billing_statement_cache_lookups_total", "Statement cache lookups by scope and result", "{lookup}"); err != nil {
		return nil, err
	}
	if bm.invalidations, err = NewCounter(cfg.Meter,
		"billing_statement_cache_invalidations_total", "Statement namespace invalidations by scope", "{invalidation}"); err != nil {
		return nil, err
	}

	if cfg.Receivables != nil {
		if err := bm.observeReceivables(cfg.Meter, cfg.Receivables); err != nil {
			return nil, err
		}
	}

	return bm, nil
}

func (bm *BillingMetrics) observeReceivables(meter metric.Meter, provider ReceivablesProvider) error {
	invoices, err := meter.Int64ObservableGauge("billing_invoices",
		metric.WithDescription("Invoices by status"),
		metric.WithUnit("{invoice}"))
	if err != nil {
		return err
	}
	outstanding, err := meter.Float64ObservableGauge("billing_outstanding_balance",
		metric.WithDescription("Total invoiced minus total paid across all schools"),
		metric.WithUnit("{currency}"))
	if err != nil {
		return err
	}

	bm.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		counts, err := provider.InvoiceCountsByStatus(ctx)
		if err != nil {
			bm.logger.Warn("Failed to collect invoice counts", zap.Error(err))
		} else {
			for status, n := range counts {
				o.ObserveInt64(invoices, n, metric.WithAttributes(AttrInvoiceStatus.String(status)))
			}
		}

		balance, err := provider.OutstandingBalance(ctx)
		if err != nil {
			bm.logger.Warn("Failed to collect outstanding balance", zap.Error(err))
			return nil
		}
		o.ObserveFloat64(outstanding, balance.InexactFloat64())
		return nil
	}, invoices, outstanding)
	return err
}

// RecordPaymentAdmitted counts an accepted payment and records its amount
func (bm *BillingMetrics) RecordPaymentAdmitted(ctx context.Context, method string, amount decimal.Decimal) {
	if method == "" {
		method = "unspecified"
	}
	attr := AttrPaymentMethod.String(method)
	bm.paymentsAdmitted.Inc(ctx, attr)
	bm.paymentAmount.Record(ctx, amount.InexactFloat64(), attr)
}

// RecordPaymentRejected counts a refused payment
func (bm *BillingMetrics) RecordPaymentRejected(ctx context.Context, reason string) {
	bm.paymentsRejected.Inc(ctx, AttrRejectReason.String(reason))
}

// RecordStatementCache counts a statement cache hit or miss for scope
func (bm *BillingMetrics) RecordStatementCache(ctx context.Context, scope string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	bm.cacheLookups.Inc(ctx, AttrCacheScope.String(scope), AttrCacheResult.String(result))
}

// RecordInvalidation counts a dropped statement namespace
func (bm *BillingMetrics) RecordInvalidation(ctx context.Context, scope string) {
	bm.invalidations.Inc(ctx, AttrCacheScope.String(scope))
}

// Stop unregisters the receivables callback. Safe to call more than once.
func (bm *BillingMetrics) Stop() {
	if bm.registration == nil {
		return
	}
	if err := bm.registration.Unregister(); err != nil {
		bm.logger.Debug("Failed to unregister receivables callback", zap.Error(err))
	}
	bm.registration = nil
}
