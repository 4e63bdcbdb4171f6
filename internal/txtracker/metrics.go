package txtracker

import (
	"context"
	"errors"

	"github.com/gabapcia/silkroad/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	outcomeConfirmed = "confirmed"
	outcomeFailed    = "failed"
)

type metrics struct {
	enqueued     metric.Int64Counter
	submitted    metric.Int64Counter
	settled      metric.Int64Counter
	rejected     metric.Int64Counter
	confirmation metric.Float64Histogram
}

// newMetrics registers the tracker instruments on meter. If registration
// fails the tracker keeps working with no-op instruments.
func newMetrics(meter metric.Meter) *metrics {
	m, err := buildMetrics(meter)
	if err != nil {
		logger.Warn(context.Background(), "falling back to no-op tracker metrics", "error", err)
		m, _ = buildMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	}

	return m
}

func buildMetrics(meter metric.Meter) (*metrics, error) {
	var (
		m    metrics
		errs = make([]error, 5)
	)

	m.enqueued, errs[0] = meter.Int64Counter("txtracker.transactions.enqueued",
		metric.WithDescription("Submissions handed to the tracker."))
	m.submitted, errs[1] = meter.Int64Counter("txtracker.transactions.submitted",
		metric.WithDescription("Submissions that got a transaction hash."))
	m.settled, errs[2] = meter.Int64Counter("txtracker.transactions.settled",
		metric.WithDescription("Transactions whose confirmation wait settled, by outcome."))
	m.rejected, errs[3] = meter.Int64Counter("txtracker.transactions.rejected",
		metric.WithDescription("Submissions rejected before getting a hash."))
	m.confirmation, errs[4] = meter.Float64Histogram("txtracker.confirmation.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time between submission and settlement."))

	return &m, errors.Join(errs...)
}

func (m *metrics) recordSettled(ctx context.Context, tx Transaction) {
	outcome := outcomeConfirmed
	if tx.ConfirmationErr != nil {
		outcome = outcomeFailed
	}

	m.settled.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.confirmation.Record(ctx, tx.SettledAt.Sub(tx.SubmittedAt).Seconds())
}
